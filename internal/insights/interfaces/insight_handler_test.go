package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

func authenticatedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), "userID", "user-1")
	return req.WithContext(ctx)
}

func TestHandleCategorize_Success(t *testing.T) {
	mockService := &MockInsightService{
		Suggestion: &domain.CategorySuggestion{
			SuggestedCategory: "Food & Dining",
			Confidence:        90,
			Reasoning:         "Coffee purchase",
		},
	}
	handler := NewInsightHandler(mockService, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"description":  "Starbucks coffee",
		"amount":       5.50,
		"merchantInfo": "Starbucks",
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/ai/categorize", body)
	w := httptest.NewRecorder()
	handler.HandleCategorize(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "user-1", mockService.LastUserID)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response["status"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Food & Dining", data["suggestedCategory"])
	assert.Equal(t, float64(90), data["confidence"])
}

func TestHandleCategorize_MissingDescription(t *testing.T) {
	handler := NewInsightHandler(&MockInsightService{}, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{"amount": 5.50})
	req := authenticatedRequest(http.MethodPost, "/api/protected/ai/categorize", body)
	w := httptest.NewRecorder()
	handler.HandleCategorize(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Description is required", response["message"])
}

func TestHandleCategorize_NoUserInContext(t *testing.T) {
	handler := NewInsightHandler(&MockInsightService{}, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{"description": "Coffee"})
	req := httptest.NewRequest(http.MethodPost, "/api/protected/ai/categorize", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCategorize(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHandleAnalyzeSpending_Success(t *testing.T) {
	mockService := &MockInsightService{
		Analysis: &domain.SpendingAnalysis{
			MonthlyTrend:    "stable",
			Insights:        []domain.Insight{},
			Recommendations: []string{"Track your spending"},
			TopCategories: []domain.CategoryShare{
				{Category: "Food", Percentage: 67},
			},
		},
	}
	handler := NewInsightHandler(mockService, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{"period": "month"})
	req := authenticatedRequest(http.MethodPost, "/api/protected/ai/analyze", body)
	w := httptest.NewRecorder()
	handler.HandleAnalyzeSpending(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "month", mockService.LastPeriod)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "stable", data["monthlyTrend"])
}

func TestHandleAnalyzeSpending_InvalidPeriod(t *testing.T) {
	handler := NewInsightHandler(&MockInsightService{}, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{"period": "decade"})
	req := authenticatedRequest(http.MethodPost, "/api/protected/ai/analyze", body)
	w := httptest.NewRecorder()
	handler.HandleAnalyzeSpending(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid period", response["message"])
}

func TestHandlePredictBudget_Success(t *testing.T) {
	mockService := &MockInsightService{
		Prediction: &domain.BudgetPrediction{
			NextMonthPrediction: 200,
			CategoryBreakdown:   []domain.CategoryPrediction{},
			Confidence:          60,
		},
	}
	handler := NewInsightHandler(mockService, respondJSON, respondError)

	req := authenticatedRequest(http.MethodPost, "/api/protected/ai/predict-budget", nil)
	w := httptest.NewRecorder()
	handler.HandlePredictBudget(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(200), data["nextMonthPrediction"])
}

func TestHandleHealthScore_ServiceError(t *testing.T) {
	mockService := &MockInsightService{Err: errors.New("db gone")}
	handler := NewInsightHandler(mockService, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/ai/health-score", nil)
	w := httptest.NewRecorder()
	handler.HandleHealthScore(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Health score calculation failed", response["message"])
}

func TestHandleChat_Success(t *testing.T) {
	mockService := &MockInsightService{
		Reply: &domain.ChatReply{
			Response:      "You spent $150 on food this month.",
			Suggestions:   []string{"Show my top categories"},
			NeedsMoreInfo: false,
		},
	}
	handler := NewInsightHandler(mockService, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"message": "How much did I spend on food?",
		"context": map[string]interface{}{"currency": "USD"},
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/ai/chat", body)
	w := httptest.NewRecorder()
	handler.HandleChat(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "You spent $150 on food this month.", data["response"])
	assert.Equal(t, false, data["needsMoreInfo"])
}

func TestHandleChat_MissingMessage(t *testing.T) {
	handler := NewInsightHandler(&MockInsightService{}, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{"context": map[string]interface{}{}})
	req := authenticatedRequest(http.MethodPost, "/api/protected/ai/chat", body)
	w := httptest.NewRecorder()
	handler.HandleChat(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestHandleAnomalies_Success(t *testing.T) {
	mockService := &MockInsightService{
		Anomalies: []domain.Insight{
			{
				Type:        "anomaly_detection",
				Title:       "Unusual Food Expense",
				Description: "$100.00 is significantly higher than your average $32.50 for Food",
				Confidence:  85,
				Actionable:  true,
				Action:      "Review this expense category",
			},
		},
	}
	handler := NewInsightHandler(mockService, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/ai/anomalies", nil)
	w := httptest.NewRecorder()
	handler.HandleAnomalies(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	data := response["data"].([]interface{})
	assert.Equal(t, 1, len(data))
}

func TestHandleRecommendations_Success(t *testing.T) {
	mockService := &MockInsightService{
		Recommended: []domain.Insight{
			{Type: "recommendation", Title: "Track Your Spending", Confidence: 100},
		},
	}
	handler := NewInsightHandler(mockService, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/ai/recommendations", nil)
	w := httptest.NewRecorder()
	handler.HandleRecommendations(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	data := response["data"].([]interface{})
	assert.Equal(t, 1, len(data))
}
