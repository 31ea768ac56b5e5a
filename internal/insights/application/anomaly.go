package application

import (
	"fmt"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

// DetectAnomalies flags expense categories whose largest transaction far
// exceeds their own average: max > 3x mean, with mean > 10 as an absolute
// guard so tiny categories don't produce noise. Always computed locally,
// never AI-backed. An empty window yields an empty list.
func DetectAnomalies(agg *AggregatedSpending) []domain.Insight {
	anomalies := []domain.Insight{}
	for _, category := range agg.Categories() {
		amounts := agg.CategoryAmounts[category]
		if len(amounts) == 0 {
			continue
		}

		var sum, max float64
		for _, amount := range amounts {
			sum += amount
			if amount > max {
				max = amount
			}
		}
		mean := sum / float64(len(amounts))

		if max > mean*3 && mean > 10 {
			anomalies = append(anomalies, domain.Insight{
				Type:        "anomaly_detection",
				Title:       fmt.Sprintf("Unusual %s Expense", category),
				Description: fmt.Sprintf("$%.2f is significantly higher than your average $%.2f for %s", max, mean, category),
				Confidence:  anomalyConfidence,
				Actionable:  true,
				Action:      "Review this expense category",
			})
		}
	}
	return anomalies
}
