package infrastructure

import (
	"time"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

// MockTransactionRepository serves a fixed transaction slice for tests.
type MockTransactionRepository struct {
	Transactions  []domain.Transaction
	ActiveUserIDs []string
	Err           error
}

func (m *MockTransactionRepository) FindInDateRange(userID string, startDate, endDate time.Time, transactionType string) ([]domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var transactions []domain.Transaction
	for _, transaction := range m.Transactions {
		if transactionType != "" && transaction.Type != transactionType {
			continue
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

func (m *MockTransactionRepository) FindRecent(userID string, limit int) ([]domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Transactions) > limit {
		return m.Transactions[:limit], nil
	}
	return m.Transactions, nil
}

func (m *MockTransactionRepository) FindActiveUserIDs(since time.Time) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ActiveUserIDs, nil
}

type MockCategoryRepository struct {
	Categories []domain.Category
	Err        error
}

func (m *MockCategoryRepository) FindByUser(userID string) ([]domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}
