package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
	insightErrors "github.com/finsight-dev/FinanceInsights/internal/insights/errors"
)

// insightRequestTimeout caps the whole request. A request that outlives it
// is cancelled and surfaces the cancellation; the reasoning client's own
// shorter timeout is what degrades a slow call to the local fallback.
const insightRequestTimeout = 35 * time.Second

type InsightServiceInterface interface {
	SuggestCategory(ctx context.Context, userID, description string, amount float64, merchant string) (*domain.CategorySuggestion, error)
	AnalyzeSpending(ctx context.Context, userID, period string) (*domain.SpendingAnalysis, error)
	PredictBudget(ctx context.Context, userID string) (*domain.BudgetPrediction, error)
	CalculateHealthScore(ctx context.Context, userID string) (*domain.HealthScore, error)
	Chat(ctx context.Context, userID, message string, chatContext map[string]interface{}) (*domain.ChatReply, error)
	DetectAnomalies(ctx context.Context, userID string) ([]domain.Insight, error)
	Recommendations(ctx context.Context, userID string) ([]domain.Insight, error)
}

type InsightHandler struct {
	service      InsightServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewInsightHandler(
	service InsightServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *InsightHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &InsightHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *InsightHandler) HandleCategorize(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req struct {
		Description  string  `json:"description"`
		Amount       float64 `json:"amount"`
		MerchantInfo string  `json:"merchantInfo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Description == "" {
		h.respondError(w, http.StatusBadRequest, "Description is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), insightRequestTimeout)
	defer cancel()
	suggestion, err := h.service.SuggestCategory(ctx, userID, req.Description, req.Amount, req.MerchantInfo)
	if err != nil {
		h.respondServiceError(w, err, "Failed to categorize transaction")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category suggested successfully.",
		"data":    suggestion,
	})
}

func (h *InsightHandler) HandleAnalyzeSpending(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req struct {
		Period string `json:"period"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !domain.IsValidPeriod(req.Period) {
		h.respondError(w, http.StatusBadRequest, "Invalid period")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), insightRequestTimeout)
	defer cancel()
	analysis, err := h.service.AnalyzeSpending(ctx, userID, req.Period)
	if err != nil {
		h.respondServiceError(w, err, "Spending analysis failed")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Spending analyzed successfully.",
		"data":    analysis,
	})
}

func (h *InsightHandler) HandlePredictBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), insightRequestTimeout)
	defer cancel()
	prediction, err := h.service.PredictBudget(ctx, userID)
	if err != nil {
		h.respondServiceError(w, err, "Budget prediction failed")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budget predicted successfully.",
		"data":    prediction,
	})
}

func (h *InsightHandler) HandleHealthScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), insightRequestTimeout)
	defer cancel()
	score, err := h.service.CalculateHealthScore(ctx, userID)
	if err != nil {
		h.respondServiceError(w, err, "Health score calculation failed")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Health score calculated successfully.",
		"data":    score,
	})
}

func (h *InsightHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req struct {
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		h.respondError(w, http.StatusBadRequest, "Message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), insightRequestTimeout)
	defer cancel()
	reply, err := h.service.Chat(ctx, userID, req.Message, req.Context)
	if err != nil {
		h.respondServiceError(w, err, "Chat service unavailable")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Chat reply generated successfully.",
		"data":    reply,
	})
}

func (h *InsightHandler) HandleAnomalies(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	anomalies, err := h.service.DetectAnomalies(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "Anomaly detection failed")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Anomalies detected successfully.",
		"data":    anomalies,
	})
}

func (h *InsightHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), insightRequestTimeout)
	defer cancel()
	recommendations, err := h.service.Recommendations(ctx, userID)
	if err != nil {
		h.respondServiceError(w, err, "Recommendations service unavailable")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Recommendations generated successfully.",
		"data":    recommendations,
	})
}

func (h *InsightHandler) respondServiceError(w http.ResponseWriter, err error, message string) {
	switch {
	case insightErrors.IsAggregationError(err):
		log.Printf("insights: upstream data contract violation: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Invalid transaction data")
	case err == insightErrors.ErrUnauthenticated:
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		log.Printf("insights: request failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, message)
	}
}
