package domain

// Each insight kind has its own fixed result shape. There is no shared
// supertype with optional fields; a result carries exactly the fields of
// its kind.

type CategorySuggestion struct {
	SuggestedCategory string `json:"suggestedCategory"`
	Confidence        int    `json:"confidence"`
	Reasoning         string `json:"reasoning"`
}

// Insight is the shape shared by anomaly flags and recommendations, and by
// the insight entries inside a spending analysis.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
	Actionable  bool   `json:"actionable"`
	Action      string `json:"action,omitempty"`
}

type CategoryShare struct {
	Category   string `json:"category"`
	Percentage int    `json:"percentage"`
}

type SpendingAnalysis struct {
	MonthlyTrend    string          `json:"monthlyTrend"` // increasing, decreasing or stable
	Insights        []Insight       `json:"insights"`
	Recommendations []string        `json:"recommendations"`
	TopCategories   []CategoryShare `json:"topCategories"`
}

type CategoryPrediction struct {
	Category  string  `json:"category"`
	Predicted float64 `json:"predicted"`
}

type BudgetPrediction struct {
	NextMonthPrediction float64              `json:"nextMonthPrediction"`
	CategoryBreakdown   []CategoryPrediction `json:"categoryBreakdown"`
	Confidence          int                  `json:"confidence"`
}

type HealthFactor struct {
	Name        string `json:"name"`
	Impact      string `json:"impact"` // "positive" or "negative"
	Description string `json:"description"`
}

type HealthScore struct {
	Score        int            `json:"score"`
	Factors      []HealthFactor `json:"factors"`
	Improvements []string       `json:"improvements"`
}

type ChatReply struct {
	Response      string   `json:"response"`
	Suggestions   []string `json:"suggestions"`
	NeedsMoreInfo bool     `json:"needsMoreInfo"`
}
