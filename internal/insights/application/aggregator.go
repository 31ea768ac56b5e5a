package application

import (
	"math"
	"sort"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

// AggregatedSpending is the per-request numeric summary consumed by prompt
// construction, fallback computation and anomaly detection. It lives only
// for the duration of one request and is never persisted.
type AggregatedSpending struct {
	TotalIncome      float64
	TotalExpense     float64
	TransactionCount int

	// Per expense category, in first-encountered order.
	CategoryTotals  map[string]float64
	CategoryAmounts map[string][]float64
	categoryOrder   []string

	// Per month ("2006-01"), expense sums total and by category.
	MonthlyTotals     map[string]float64
	MonthlyByCategory map[string]map[string]float64
}

// Aggregate partitions transactions by type and accumulates the summaries.
// It fails with an aggregation error when the collaborator handed over
// malformed data; that error is surfaced, never absorbed by a fallback.
func Aggregate(transactions []domain.Transaction) (*AggregatedSpending, error) {
	agg := &AggregatedSpending{
		CategoryTotals:    make(map[string]float64),
		CategoryAmounts:   make(map[string][]float64),
		MonthlyTotals:     make(map[string]float64),
		MonthlyByCategory: make(map[string]map[string]float64),
	}

	for i := range transactions {
		transaction := &transactions[i]
		if err := transaction.Validate(); err != nil {
			return nil, err
		}
		agg.TransactionCount++

		if transaction.Type == domain.TypeIncome {
			agg.TotalIncome += transaction.Amount
			continue
		}

		category := transaction.Category
		if category == "" {
			category = domain.UncategorizedName
		}
		if _, seen := agg.CategoryTotals[category]; !seen {
			agg.categoryOrder = append(agg.categoryOrder, category)
		}
		agg.TotalExpense += transaction.Amount
		agg.CategoryTotals[category] += transaction.Amount
		agg.CategoryAmounts[category] = append(agg.CategoryAmounts[category], transaction.Amount)

		month := transaction.Date.Format("2006-01")
		agg.MonthlyTotals[month] += transaction.Amount
		if agg.MonthlyByCategory[month] == nil {
			agg.MonthlyByCategory[month] = make(map[string]float64)
		}
		agg.MonthlyByCategory[month][category] += transaction.Amount
	}

	return agg, nil
}

// Categories returns the expense category names in first-encountered order.
func (a *AggregatedSpending) Categories() []string {
	return a.categoryOrder
}

// CategoryShares returns every expense category with its rounded share of
// total spending, ordered by descending amount; ties keep the
// first-encountered order. A zero expense total yields zero percentages.
func (a *AggregatedSpending) CategoryShares() []domain.CategoryShare {
	shares := make([]domain.CategoryShare, 0, len(a.categoryOrder))
	for _, category := range a.categoryOrder {
		shares = append(shares, domain.CategoryShare{
			Category:   category,
			Percentage: a.percentageOf(a.CategoryTotals[category]),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return a.CategoryTotals[shares[i].Category] > a.CategoryTotals[shares[j].Category]
	})
	return shares
}

// TopCategories truncates CategoryShares for display use.
func (a *AggregatedSpending) TopCategories(limit int) []domain.CategoryShare {
	shares := a.CategoryShares()
	if len(shares) > limit {
		shares = shares[:limit]
	}
	return shares
}

func (a *AggregatedSpending) percentageOf(amount float64) int {
	if a.TotalExpense == 0 {
		return 0
	}
	return int(math.Round(amount / a.TotalExpense * 100))
}

// SavingsRate returns (income-expense)/income as a percentage, 0 when there
// is no income.
func (a *AggregatedSpending) SavingsRate() float64 {
	if a.TotalIncome <= 0 {
		return 0
	}
	return (a.TotalIncome - a.TotalExpense) / a.TotalIncome * 100
}

// MeanMonthlyExpense averages the total expense over the observed months,
// 0 when no month carries an expense.
func (a *AggregatedSpending) MeanMonthlyExpense() float64 {
	if len(a.MonthlyTotals) == 0 {
		return 0
	}
	var sum float64
	for _, total := range a.MonthlyTotals {
		sum += total
	}
	return sum / float64(len(a.MonthlyTotals))
}

// Months returns the observed month keys sorted ascending, so prompt text
// built from the monthly groupings is deterministic.
func (a *AggregatedSpending) Months() []string {
	months := make([]string, 0, len(a.MonthlyTotals))
	for month := range a.MonthlyTotals {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}
