package command

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		line string
		want Kind
	}{
		{"250 taxi", KindExpense},
		{"250.50 taxi", KindExpense},
		{"-100 taxi", KindExpense},
		{"+ 250 salary", KindIncome},
		{"bl", KindBalanceQuery},
		{"BALANCE", KindBalanceQuery},
		{"баланс", KindBalanceQuery},
		{"cv usd eur", KindExchangeQuery},
		{"convert 10 usd eur", KindExchangeQuery},
		{"month", KindMonthQuery},
		{"месяц 2025.01", KindMonthQuery},
		{"del 3", KindDelete},
		{"delete last", KindDelete},
		{"categories", KindCategoryShow},
		{"cats", KindCategoryShow},
		{"addcat taxi: taxi, cab", KindCategoryAdd},
		{"delcat taxi", KindCategoryDelete},
		{"bla bla", KindUnrecognized},
		{"", KindUnrecognized},
		{"   ", KindUnrecognized},
		{"+x 100", KindUnrecognized},
	}
	for _, tc := range cases {
		if got := Classify(tc.line); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.line, got, tc.want)
		}
	}
}
