package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
	insightErrors "github.com/finsight-dev/FinanceInsights/internal/insights/errors"
)

// TextGenerator is the boundary to the external reasoning service: submit a
// prompt, receive raw text, or fail. Exactly one attempt per request; the
// fallback path is the only recovery.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// InsightCache stores successful AI payloads keyed per user and kind.
// Implementations decide the TTL. A nil cache disables caching.
type InsightCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

const (
	recentChatTransactions = 10
	predictionMonths       = 6
	healthScoreMonths      = 3
	anomalyMonths          = 3
	recommendationMonths   = 1
)

// InsightService sequences one insight request: aggregate, build the prompt,
// call the generator, extract and validate the response, and fall back to
// the local computation when any of those stages fails. It holds no mutable
// per-request state, so concurrent requests need no locking.
type InsightService struct {
	transactions domain.TransactionRepository
	categories   domain.CategoryRepository
	generator    TextGenerator
	cache        InsightCache
	now          func() time.Time
}

func NewInsightService(transactions domain.TransactionRepository, categories domain.CategoryRepository, generator TextGenerator, cache InsightCache) *InsightService {
	return &InsightService{
		transactions: transactions,
		categories:   categories,
		generator:    generator,
		cache:        cache,
		now:          time.Now,
	}
}

// generateValidated runs the AI path for one request: generate, extract,
// validate against the kind's schema, then decode into out. Any error it
// returns that IsRecoverable is absorbed by the caller's fallback.
func (s *InsightService) generateValidated(ctx context.Context, kind Kind, prompt string, out interface{}) error {
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		// A cancelled request discards the in-flight result instead of
		// serving a fallback for an answer nobody is waiting for.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	candidate, err := ExtractJSON(raw)
	if err != nil {
		return err
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return insightErrors.ErrUnparsableResponse
	}
	if err := validateSchema(parsed, kind); err != nil {
		return err
	}
	// The schema accepted the value, so a decode failure here is still the
	// model's shape disagreeing with ours and must stay recoverable.
	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return insightErrors.NewSchemaMismatchError("decoding validated %s response: %v", kind, err)
	}
	return nil
}

func logFallback(kind Kind, err error) {
	log.Printf("insights: %s AI path failed (%v), serving local fallback", kind, err)
}

func (s *InsightService) SuggestCategory(ctx context.Context, userID, description string, amount float64, merchant string) (*domain.CategorySuggestion, error) {
	if userID == "" {
		return nil, insightErrors.ErrUnauthenticated
	}
	categories, err := s.categories.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	prompt := buildCategorizationPrompt(description, amount, merchant, categories)
	var suggestion domain.CategorySuggestion
	if err := s.generateValidated(ctx, KindCategorization, prompt, &suggestion); err != nil {
		if !insightErrors.IsRecoverable(err) {
			return nil, err
		}
		logFallback(KindCategorization, err)
		return fallbackCategorization(description, categories), nil
	}
	return &suggestion, nil
}

func (s *InsightService) AnalyzeSpending(ctx context.Context, userID, period string) (*domain.SpendingAnalysis, error) {
	if userID == "" {
		return nil, insightErrors.ErrUnauthenticated
	}
	if period == "" {
		period = domain.PeriodMonth
	}
	window := domain.NewAnalysisWindow(period, s.now())
	transactions, err := s.transactions.FindInDateRange(userID, window.StartDate, window.EndDate, "")
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	agg, err := Aggregate(transactions)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("insights:%s:%s:%s", KindSpendingAnalysis, userID, period)
	var analysis domain.SpendingAnalysis
	if s.cacheGet(ctx, cacheKey, &analysis) {
		return &analysis, nil
	}

	prompt := buildSpendingAnalysisPrompt(agg, period)
	if err := s.generateValidated(ctx, KindSpendingAnalysis, prompt, &analysis); err != nil {
		if !insightErrors.IsRecoverable(err) {
			return nil, err
		}
		logFallback(KindSpendingAnalysis, err)
		return fallbackSpendingAnalysis(agg), nil
	}

	// Display fields come from the aggregator no matter which path wrote
	// the narrative.
	analysis.TopCategories = agg.TopCategories(5)
	s.cacheSet(ctx, cacheKey, &analysis)
	return &analysis, nil
}

func (s *InsightService) PredictBudget(ctx context.Context, userID string) (*domain.BudgetPrediction, error) {
	if userID == "" {
		return nil, insightErrors.ErrUnauthenticated
	}
	window := domain.NewMonthsWindow(predictionMonths, s.now())
	transactions, err := s.transactions.FindInDateRange(userID, window.StartDate, window.EndDate, domain.TypeExpense)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	agg, err := Aggregate(transactions)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("insights:%s:%s", KindBudgetPrediction, userID)
	var prediction domain.BudgetPrediction
	if s.cacheGet(ctx, cacheKey, &prediction) {
		return &prediction, nil
	}

	prompt := buildBudgetPredictionPrompt(agg)
	if err := s.generateValidated(ctx, KindBudgetPrediction, prompt, &prediction); err != nil {
		if !insightErrors.IsRecoverable(err) {
			return nil, err
		}
		logFallback(KindBudgetPrediction, err)
		return fallbackBudgetPrediction(agg), nil
	}
	s.cacheSet(ctx, cacheKey, &prediction)
	return &prediction, nil
}

func (s *InsightService) CalculateHealthScore(ctx context.Context, userID string) (*domain.HealthScore, error) {
	if userID == "" {
		return nil, insightErrors.ErrUnauthenticated
	}
	window := domain.NewMonthsWindow(healthScoreMonths, s.now())
	transactions, err := s.transactions.FindInDateRange(userID, window.StartDate, window.EndDate, "")
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	agg, err := Aggregate(transactions)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("insights:%s:%s", KindHealthScore, userID)
	var score domain.HealthScore
	if s.cacheGet(ctx, cacheKey, &score) {
		return &score, nil
	}

	prompt := buildHealthScorePrompt(agg)
	if err := s.generateValidated(ctx, KindHealthScore, prompt, &score); err != nil {
		if !insightErrors.IsRecoverable(err) {
			return nil, err
		}
		logFallback(KindHealthScore, err)
		return fallbackHealthScore(agg), nil
	}
	s.cacheSet(ctx, cacheKey, &score)
	return &score, nil
}

func (s *InsightService) Chat(ctx context.Context, userID, message string, chatContext map[string]interface{}) (*domain.ChatReply, error) {
	if userID == "" {
		return nil, insightErrors.ErrUnauthenticated
	}
	recent, err := s.transactions.FindRecent(userID, recentChatTransactions)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	prompt := buildChatPrompt(message, recent, chatContext)
	var reply domain.ChatReply
	if err := s.generateValidated(ctx, KindChat, prompt, &reply); err != nil {
		if !insightErrors.IsRecoverable(err) {
			return nil, err
		}
		logFallback(KindChat, err)
		return fallbackChatReply(), nil
	}
	return &reply, nil
}

// DetectAnomalies is always computed locally; the reasoning service is never
// consulted for it.
func (s *InsightService) DetectAnomalies(ctx context.Context, userID string) ([]domain.Insight, error) {
	if userID == "" {
		return nil, insightErrors.ErrUnauthenticated
	}
	window := domain.NewMonthsWindow(anomalyMonths, s.now())
	transactions, err := s.transactions.FindInDateRange(userID, window.StartDate, window.EndDate, "")
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	agg, err := Aggregate(transactions)
	if err != nil {
		return nil, err
	}
	return DetectAnomalies(agg), nil
}

func (s *InsightService) Recommendations(ctx context.Context, userID string) ([]domain.Insight, error) {
	if userID == "" {
		return nil, insightErrors.ErrUnauthenticated
	}
	window := domain.NewMonthsWindow(recommendationMonths, s.now())
	transactions, err := s.transactions.FindInDateRange(userID, window.StartDate, window.EndDate, "")
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	agg, err := Aggregate(transactions)
	if err != nil {
		return nil, err
	}

	prompt := buildRecommendationsPrompt(agg)
	var recommendations []domain.Insight
	if err := s.generateValidated(ctx, KindRecommendations, prompt, &recommendations); err != nil {
		if !insightErrors.IsRecoverable(err) {
			return nil, err
		}
		logFallback(KindRecommendations, err)
		return fallbackRecommendations(agg), nil
	}
	return recommendations, nil
}

// AnomalySweep runs the local detector for every user with recent activity
// and logs the flagged categories. Wired to the daily scheduler in main.
func (s *InsightService) AnomalySweep(ctx context.Context) error {
	since := s.now().AddDate(0, -anomalyMonths, 0)
	userIDs, err := s.transactions.FindActiveUserIDs(since)
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}

	for _, userID := range userIDs {
		anomalies, err := s.DetectAnomalies(ctx, userID)
		if err != nil {
			log.Printf("insights: anomaly sweep failed for user %s: %v", userID, err)
			continue
		}
		if len(anomalies) > 0 {
			log.Printf("insights: anomaly sweep flagged %d categories for user %s", len(anomalies), userID)
		}
	}
	return nil
}

func (s *InsightService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	payload, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		log.Printf("insights: dropping corrupt cache entry %s: %v", key, err)
		return false
	}
	return true
}

func (s *InsightService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, payload)
}
