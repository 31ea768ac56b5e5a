package interfaces

import (
	"context"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

// MockInsightService returns canned payloads for handler tests.
type MockInsightService struct {
	Suggestion  *domain.CategorySuggestion
	Analysis    *domain.SpendingAnalysis
	Prediction  *domain.BudgetPrediction
	Health      *domain.HealthScore
	Reply       *domain.ChatReply
	Anomalies   []domain.Insight
	Recommended []domain.Insight
	Err         error

	LastUserID string
	LastPeriod string
}

func (m *MockInsightService) SuggestCategory(ctx context.Context, userID, description string, amount float64, merchant string) (*domain.CategorySuggestion, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Suggestion, nil
}

func (m *MockInsightService) AnalyzeSpending(ctx context.Context, userID, period string) (*domain.SpendingAnalysis, error) {
	m.LastUserID = userID
	m.LastPeriod = period
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Analysis, nil
}

func (m *MockInsightService) PredictBudget(ctx context.Context, userID string) (*domain.BudgetPrediction, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Prediction, nil
}

func (m *MockInsightService) CalculateHealthScore(ctx context.Context, userID string) (*domain.HealthScore, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Health, nil
}

func (m *MockInsightService) Chat(ctx context.Context, userID, message string, chatContext map[string]interface{}) (*domain.ChatReply, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Reply, nil
}

func (m *MockInsightService) DetectAnomalies(ctx context.Context, userID string) ([]domain.Insight, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Anomalies, nil
}

func (m *MockInsightService) Recommendations(ctx context.Context, userID string) ([]domain.Insight, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Recommended, nil
}

type MockCategoryService struct {
	Categories []domain.Category
	Err        error
}

func (m *MockCategoryService) GetUserCategories(userID string) ([]domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}
