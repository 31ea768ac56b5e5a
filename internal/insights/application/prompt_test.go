package application

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

func TestBuildCategorizationPrompt(t *testing.T) {
	categories := []domain.Category{
		{Name: "Food & Dining", Type: domain.TypeExpense},
		{Name: "Salary", Type: domain.TypeIncome},
	}

	prompt := buildCategorizationPrompt("Starbucks coffee", 5.50, "Starbucks", categories)

	assert.Contains(t, prompt, `"Starbucks coffee"`)
	assert.Contains(t, prompt, "$5.50")
	assert.Contains(t, prompt, "Food & Dining (expense), Salary (income)")
	assert.Contains(t, prompt, schemas[KindCategorization].shapeDescription())
	assert.Contains(t, prompt, rawJSONReminder)
}

func TestBuildCategorizationPrompt_DefaultsMerchant(t *testing.T) {
	prompt := buildCategorizationPrompt("Coffee", 5, "", nil)

	assert.Contains(t, prompt, `"Unknown"`)
}

func TestBuildBudgetPredictionPrompt_MonthsInOrder(t *testing.T) {
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	agg, err := Aggregate([]domain.Transaction{
		expenseOn(feb, "Food", 300),
		expenseOn(jan, "Food", 100),
	})
	assert.NoError(t, err)

	prompt := buildBudgetPredictionPrompt(agg)

	assert.Less(t, strings.Index(prompt, "2024-01"), strings.Index(prompt, "2024-02"))
	assert.Contains(t, prompt, schemas[KindBudgetPrediction].shapeDescription())
}

func TestBuildChatPrompt_IncludesTransactionsAndContext(t *testing.T) {
	recent := []domain.Transaction{
		{Description: "Coffee", Amount: 5, Type: domain.TypeExpense, Category: "Food"},
	}

	prompt := buildChatPrompt("How much did I spend?", recent, map[string]interface{}{"currency": "USD"})

	assert.Contains(t, prompt, `"How much did I spend?"`)
	assert.Contains(t, prompt, `"description":"Coffee"`)
	assert.Contains(t, prompt, `"currency":"USD"`)
}

func TestBuildChatPrompt_NilContext(t *testing.T) {
	prompt := buildChatPrompt("Hello", nil, nil)

	assert.Contains(t, prompt, "Context: {}")
}
