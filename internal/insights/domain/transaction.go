package domain

import (
	"time"

	insightErrors "github.com/finsight-dev/FinanceInsights/internal/insights/errors"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	// UncategorizedName is the sentinel category for transactions without a
	// resolved category reference.
	UncategorizedName = "Uncategorized"
)

type TransactionRepository interface {
	FindInDateRange(userID string, startDate, endDate time.Time, transactionType string) ([]Transaction, error)
	FindRecent(userID string, limit int) ([]Transaction, error)
	FindActiveUserIDs(since time.Time) ([]string, error)
}

// Transaction is a read-only input to the insight pipeline. The category
// reference is already resolved to a name by the repository.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"` // "income" or "expense"
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Merchant    string    `json:"merchant,omitempty"`
}

func (t *Transaction) Validate() error {
	if t.Amount < 0 {
		return insightErrors.NewAggregationError("transaction %s has negative amount %.2f", t.ID, t.Amount)
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return insightErrors.NewAggregationError("transaction %s has unknown type %q", t.ID, t.Type)
	}
	return nil
}

func IsValidTransactionType(transactionType string) bool {
	return transactionType == "" || transactionType == TypeIncome || transactionType == TypeExpense
}
