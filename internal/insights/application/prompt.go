package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

// Prompt builders are pure functions: the same inputs always render the same
// text. Each embeds the relevant numeric summary, the JSON shape declared in
// schema.go for the kind, and an instruction to skip markdown fencing.

const rawJSONReminder = "Important: Do not use markdown code blocks or any other formatting. Return only the raw JSON."

func buildCategorizationPrompt(description string, amount float64, merchant string, categories []domain.Category) string {
	if merchant == "" {
		merchant = "Unknown"
	}
	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = fmt.Sprintf("%s (%s)", category.Name, category.Type)
	}

	var sb strings.Builder
	sb.WriteString("You are a financial AI assistant. Categorize this transaction and respond with ONLY a valid JSON object, no markdown formatting or extra text.\n\n")
	sb.WriteString("Transaction Details:\n")
	fmt.Fprintf(&sb, "- Description: %q\n", description)
	fmt.Fprintf(&sb, "- Amount: $%.2f\n", amount)
	fmt.Fprintf(&sb, "- Merchant: %q\n\n", merchant)
	fmt.Fprintf(&sb, "Available categories: %s\n\n", strings.Join(names, ", "))
	fmt.Fprintf(&sb, "Return ONLY this JSON structure:\n%s\n\n", schemas[KindCategorization].shapeDescription())
	sb.WriteString(rawJSONReminder)
	return sb.String()
}

func buildSpendingAnalysisPrompt(agg *AggregatedSpending, period string) string {
	topCategories, _ := json.Marshal(agg.TopCategories(5))

	var sb strings.Builder
	sb.WriteString("Analyze this spending data and provide insights.\n\n")
	fmt.Fprintf(&sb, "Total Spending: $%.2f\n", agg.TotalExpense)
	fmt.Fprintf(&sb, "Period: %s\n", period)
	fmt.Fprintf(&sb, "Top Categories: %s\n", topCategories)
	fmt.Fprintf(&sb, "Number of Transactions: %d\n\n", agg.TransactionCount)
	fmt.Fprintf(&sb, "Provide the analysis as ONLY this JSON structure:\n%s\n\n", schemas[KindSpendingAnalysis].shapeDescription())
	sb.WriteString(rawJSONReminder)
	return sb.String()
}

func buildBudgetPredictionPrompt(agg *AggregatedSpending) string {
	var sb strings.Builder
	sb.WriteString("Based on this historical spending data, predict next month's budget.\n\n")
	sb.WriteString("Monthly Data:\n")
	for _, month := range agg.Months() {
		breakdown, _ := json.Marshal(agg.MonthlyByCategory[month])
		fmt.Fprintf(&sb, "- %s: total $%.2f, by category %s\n", month, agg.MonthlyTotals[month], breakdown)
	}
	fmt.Fprintf(&sb, "\nProvide the prediction as ONLY this JSON structure:\n%s\n\n", schemas[KindBudgetPrediction].shapeDescription())
	sb.WriteString(rawJSONReminder)
	return sb.String()
}

func buildHealthScorePrompt(agg *AggregatedSpending) string {
	var sb strings.Builder
	sb.WriteString("Calculate a financial health score (0-100) based on:\n\n")
	fmt.Fprintf(&sb, "Income (3 months): $%.2f\n", agg.TotalIncome)
	fmt.Fprintf(&sb, "Expenses (3 months): $%.2f\n", agg.TotalExpense)
	fmt.Fprintf(&sb, "Savings Rate: %.2f%%\n", agg.SavingsRate())
	fmt.Fprintf(&sb, "Transaction Count: %d\n\n", agg.TransactionCount)
	fmt.Fprintf(&sb, "Provide the response as ONLY this JSON structure:\n%s\n\n", schemas[KindHealthScore].shapeDescription())
	sb.WriteString(rawJSONReminder)
	return sb.String()
}

func buildChatPrompt(message string, recent []domain.Transaction, chatContext map[string]interface{}) string {
	type chatTransaction struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Category    string  `json:"category"`
	}
	summaries := make([]chatTransaction, len(recent))
	for i, transaction := range recent {
		summaries[i] = chatTransaction{
			Description: transaction.Description,
			Amount:      transaction.Amount,
			Type:        transaction.Type,
			Category:    transaction.Category,
		}
	}
	transactionsJSON, _ := json.Marshal(summaries)
	if chatContext == nil {
		chatContext = map[string]interface{}{}
	}
	contextJSON, _ := json.Marshal(chatContext)

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a helpful financial AI assistant. The user asks: %q\n\n", message)
	fmt.Fprintf(&sb, "User's recent transactions: %s\n\n", transactionsJSON)
	fmt.Fprintf(&sb, "Context: %s\n\n", contextJSON)
	fmt.Fprintf(&sb, "Provide a helpful response as ONLY this JSON structure:\n%s\n\n", schemas[KindChat].shapeDescription())
	sb.WriteString(rawJSONReminder)
	return sb.String()
}

func buildRecommendationsPrompt(agg *AggregatedSpending) string {
	breakdown, _ := json.Marshal(agg.CategoryShares())

	var sb strings.Builder
	sb.WriteString("Based on this financial data, provide personalized recommendations.\n\n")
	fmt.Fprintf(&sb, "Total Income: $%.2f\n", agg.TotalIncome)
	fmt.Fprintf(&sb, "Total Expenses: $%.2f\n", agg.TotalExpense)
	fmt.Fprintf(&sb, "Category Breakdown: %s\n", breakdown)
	fmt.Fprintf(&sb, "Savings Rate: %.1f%%\n\n", agg.SavingsRate())
	fmt.Fprintf(&sb, "Generate 3-5 actionable financial recommendations as ONLY this JSON array:\n%s\n\n", schemas[KindRecommendations].shapeDescription())
	sb.WriteString(rawJSONReminder)
	return sb.String()
}
