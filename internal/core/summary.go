package core

// TopExpenses is how many of the largest expenses a summary carries at most.
const TopExpenses = 5

// Summary is the aggregated expense statistics for one period.
type Summary struct {
	Period      Period
	Total       int64
	Count       int // highest index present, i.e. a running counter
	Top         []Transaction
	PerCategory map[string]int64
}
