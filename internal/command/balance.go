package command

import (
	"strconv"
	"strings"

	"uchet/internal/core"
)

const (
	BalanceGet     BalanceOp = "get"
	BalanceSet     BalanceOp = "set"
	BalanceConvert BalanceOp = "convert"
)

type (
	BalanceOp string

	// BalanceQuery is a parsed balance command: show the balance, overwrite
	// it, or show it converted to another currency.
	BalanceQuery struct {
		Op       BalanceOp
		Value    int64  // set
		Currency string // convert, lower-cased
	}
)

// ParseBalance validates "<bl>", "<bl> <int>" or "<bl> <currency>". The
// currency must be one of the supported codes.
func ParseBalance(line string, currencies []string) (BalanceQuery, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		return BalanceQuery{Op: BalanceGet}, nil
	case 2:
		arg := strings.ToLower(fields[1])
		if oneOf(arg, currencies) {
			return BalanceQuery{Op: BalanceConvert, Currency: arg}, nil
		}
		if value, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
			return BalanceQuery{Op: BalanceSet, Value: value}, nil
		}
	}
	return BalanceQuery{}, core.ErrInvalidBalanceQuery
}
