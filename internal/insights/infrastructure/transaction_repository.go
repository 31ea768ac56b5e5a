package infrastructure

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// FindInDateRange returns the user's transactions in [startDate, endDate]
// ordered by date, with the category reference already resolved to its name
// ("Uncategorized" when unset). Pass an empty transactionType for both types.
func (r *TransactionRepository) FindInDateRange(userID string, startDate, endDate time.Time, transactionType string) ([]domain.Transaction, error) {
	if !domain.IsValidTransactionType(transactionType) {
		return nil, fmt.Errorf("unsupported transaction type filter %q", transactionType)
	}
	query := `
		SELECT t.id, t.user_id, t.amount, t.type, t.date,
		       COALESCE(c.name, 'Uncategorized'), t.description, COALESCE(t.merchant, '')
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3
	`
	args := []interface{}{userID, startDate, endDate}
	if transactionType != "" {
		query += " AND t.type = $4"
		args = append(args, transactionType)
	}
	query += " ORDER BY t.date"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// FindRecent returns the user's newest transactions, newest first.
func (r *TransactionRepository) FindRecent(userID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.amount, t.type, t.date,
		       COALESCE(c.name, 'Uncategorized'), t.description, COALESCE(t.merchant, '')
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		ORDER BY t.date DESC
		LIMIT $2
	`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) FindActiveUserIDs(since time.Time) ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT user_id FROM transactions WHERE date >= $1", since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(
			&transaction.ID,
			&transaction.UserID,
			&transaction.Amount,
			&transaction.Type,
			&transaction.Date,
			&transaction.Category,
			&transaction.Description,
			&transaction.Merchant,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}
