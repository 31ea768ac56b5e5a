package application

import (
	"fmt"
	"math"
	"strings"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

// Fixed confidences for locally computed results. These are documented
// constants, not AI-calibrated probabilities; keep them out of control flow
// so they can be tuned in one place.
const (
	fallbackCategorizationConfidence = 50
	fallbackAnalysisConfidence       = 100
	fallbackPredictionConfidence     = 60
	fallbackRecommendationConfidence = 100
	fallbackReduceExpensesConfidence = 95
	anomalyConfidence                = 85
	fallbackOtherCategory            = "Other"
)

// categoryKeywords maps lowercase category-name tokens to merchant words
// commonly seen in descriptions, so "Starbucks coffee" still lands in
// "Food & Dining" when the category name itself never appears in the text.
var categoryKeywords = map[string][]string{
	"food":           {"coffee", "cafe", "restaurant", "grocery", "groceries", "pizza", "burger", "starbucks", "mcdonald", "dining", "bakery"},
	"dining":         {"coffee", "cafe", "restaurant", "pizza", "burger", "starbucks", "mcdonald", "bakery"},
	"transportation": {"uber", "lyft", "taxi", "gas", "fuel", "parking", "bus", "train", "metro"},
	"transport":      {"uber", "lyft", "taxi", "gas", "fuel", "parking", "bus", "train", "metro"},
	"entertainment":  {"netflix", "spotify", "cinema", "movie", "game", "concert"},
	"shopping":       {"amazon", "mall", "store", "clothing", "shoes"},
	"utilities":      {"electric", "electricity", "water", "internet", "phone"},
	"health":         {"pharmacy", "doctor", "gym", "hospital", "dental"},
	"travel":         {"flight", "hotel", "airline", "airbnb"},
}

// fallbackCategorization matches the description against the user's
// categories: first a case-insensitive substring match on the category name,
// then the keyword table above. Enumeration order is the category store's
// return order; first match wins, no match lands in "Other".
func fallbackCategorization(description string, categories []domain.Category) *domain.CategorySuggestion {
	lowered := strings.ToLower(description)

	matched := fallbackOtherCategory
matching:
	for _, category := range categories {
		if strings.Contains(lowered, strings.ToLower(category.Name)) {
			matched = category.Name
			break
		}
		for _, token := range strings.Fields(strings.ToLower(category.Name)) {
			for _, keyword := range categoryKeywords[token] {
				if strings.Contains(lowered, keyword) {
					matched = category.Name
					break matching
				}
			}
		}
	}

	return &domain.CategorySuggestion{
		SuggestedCategory: matched,
		Confidence:        fallbackCategorizationConfidence,
		Reasoning:         "AI categorization not available, using keyword matching",
	}
}

func fallbackSpendingAnalysis(agg *AggregatedSpending) *domain.SpendingAnalysis {
	return &domain.SpendingAnalysis{
		MonthlyTrend: "stable",
		Insights: []domain.Insight{{
			Type:        "spending_pattern",
			Title:       "Spending Summary",
			Description: fmt.Sprintf("You spent $%.2f across %d transactions.", agg.TotalExpense, agg.TransactionCount),
			Confidence:  fallbackAnalysisConfidence,
			Actionable:  false,
		}},
		Recommendations: []string{"Continue tracking your expenses", "Review large expenses"},
		TopCategories:   agg.TopCategories(5),
	}
}

func fallbackBudgetPrediction(agg *AggregatedSpending) *domain.BudgetPrediction {
	return &domain.BudgetPrediction{
		NextMonthPrediction: math.Round(agg.MeanMonthlyExpense()),
		CategoryBreakdown:   []domain.CategoryPrediction{},
		Confidence:          fallbackPredictionConfidence,
	}
}

func fallbackHealthScore(agg *AggregatedSpending) *domain.HealthScore {
	savingsRate := agg.SavingsRate()

	score := 50
	if savingsRate > 20 {
		score += 30
	} else if savingsRate > 10 {
		score += 15
	}
	if agg.TransactionCount > 20 {
		score += 10
	}
	if agg.TotalIncome > agg.TotalExpense {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	impact := "negative"
	if savingsRate > 10 {
		impact = "positive"
	}

	return &domain.HealthScore{
		Score: score,
		Factors: []domain.HealthFactor{{
			Name:        "Savings Rate",
			Impact:      impact,
			Description: fmt.Sprintf("%.1f%% savings rate", savingsRate),
		}},
		Improvements: []string{"Increase savings rate", "Track expenses more consistently"},
	}
}

func fallbackChatReply() *domain.ChatReply {
	return &domain.ChatReply{
		Response:      "I'm here to help with your finances! What would you like to know?",
		Suggestions:   []string{"Analyze my spending", "Budget recommendations", "Savings tips"},
		NeedsMoreInfo: false,
	}
}

func fallbackRecommendations(agg *AggregatedSpending) []domain.Insight {
	recommendations := []domain.Insight{{
		Type:        "budget_recommendation",
		Title:       "Track Your Spending",
		Description: "Continue monitoring your expenses to identify patterns",
		Confidence:  fallbackRecommendationConfidence,
		Actionable:  true,
		Action:      "Review your transactions weekly",
	}}

	if agg.TotalExpense > agg.TotalIncome {
		recommendations = append(recommendations, domain.Insight{
			Type:        "budget_recommendation",
			Title:       "Reduce Expenses",
			Description: "Your expenses exceed your income this month",
			Confidence:  fallbackReduceExpensesConfidence,
			Actionable:  true,
			Action:      "Identify areas to cut back spending",
		})
	}
	return recommendations
}
