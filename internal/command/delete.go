package command

import (
	"strconv"
	"strings"

	"uchet/internal/core"
)

// ParseDelete validates "<del> <index>" where index is a positive integer,
// the literal "last", or -1. Anything else is a syntax error.
func ParseDelete(line string) (core.DeleteTarget, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return core.DeleteTarget{}, core.ErrInvalidDelete
	}

	if strings.EqualFold(fields[1], "last") {
		return core.DeleteTarget{Last: true}, nil
	}

	index, err := strconv.Atoi(fields[1])
	if err != nil {
		return core.DeleteTarget{}, core.ErrInvalidDelete
	}
	switch {
	case index == -1:
		return core.DeleteTarget{Last: true}, nil
	case index > 0:
		return core.DeleteTarget{Index: index}, nil
	}
	return core.DeleteTarget{}, core.ErrInvalidDelete
}
