package command

import (
	"errors"
	"testing"

	"uchet/internal/core"
)

var testCurrencies = []string{"usd", "eur", "uah"}

func TestParseBalance(t *testing.T) {
	cases := []struct {
		line    string
		want    BalanceQuery
		wantErr bool
	}{
		{line: "bl", want: BalanceQuery{Op: BalanceGet}},
		{line: "bl 5000", want: BalanceQuery{Op: BalanceSet, Value: 5000}},
		{line: "bl -200", want: BalanceQuery{Op: BalanceSet, Value: -200}},
		{line: "bl usd", want: BalanceQuery{Op: BalanceConvert, Currency: "usd"}},
		{line: "bl EUR", want: BalanceQuery{Op: BalanceConvert, Currency: "eur"}},
		{line: "bl gbp", wantErr: true},
		{line: "bl 100 usd", wantErr: true},
		{line: "bl 12.5", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseBalance(tc.line, testCurrencies)
		if tc.wantErr {
			if !errors.Is(err, core.ErrInvalidBalanceQuery) {
				t.Errorf("ParseBalance(%q) error = %v, want ErrInvalidBalanceQuery", tc.line, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseBalance(%q) = %+v, %v; want %+v", tc.line, got, err, tc.want)
		}
	}
}
