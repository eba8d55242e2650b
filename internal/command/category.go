package command

import (
	"strings"
	"unicode"

	"uchet/internal/core"
)

// CategoryAdd is a parsed category addition: the canonical name and its
// aliases, already normalized.
type CategoryAdd struct {
	Name    string
	Aliases []string
}

// ParseCategoryAdd validates "<addcat> <name>: <alias>, <alias>, ...". The
// body is split on the first colon; aliases are the maximal alphabetic runs
// of the right-hand side, lower-cased and in order of appearance.
func ParseCategoryAdd(line string) (CategoryAdd, error) {
	_, body, found := strings.Cut(line, " ")
	if !found {
		return CategoryAdd{}, core.ErrInvalidCategory
	}

	name, aliasPart, found := strings.Cut(body, ":")
	if !found {
		return CategoryAdd{}, core.ErrInvalidCategory
	}
	name = NormalizeCategory(name)
	if name == "" {
		return CategoryAdd{}, core.ErrInvalidCategory
	}

	return CategoryAdd{Name: name, Aliases: aliasRuns(aliasPart)}, nil
}

// ParseCategoryDelete validates "<delcat> <name>" and returns the normalized
// name.
func ParseCategoryDelete(line string) (string, error) {
	_, body, found := strings.Cut(line, " ")
	name := NormalizeCategory(body)
	if !found || name == "" {
		return "", core.ErrInvalidCategory
	}
	return name, nil
}

// NormalizeCategory lower-cases a name and capitalizes its first letter,
// which is the canonical form catalog entries are stored under.
func NormalizeCategory(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	r := []rune(name)
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// aliasRuns extracts the maximal runs of letters from a string, lower-cased.
func aliasRuns(s string) []string {
	var aliases []string
	var current strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		if current.Len() > 0 {
			aliases = append(aliases, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		aliases = append(aliases, current.String())
	}
	return aliases
}
