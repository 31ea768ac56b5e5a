package infrastructure

import (
	"database/sql"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindByUser returns the user's categories in insertion order. That order is
// also the enumeration order of the categorization fallback.
func (r *CategoryRepository) FindByUser(userID string) ([]domain.Category, error) {
	query := `
		SELECT id, user_id, name, type, COALESCE(icon, ''), COALESCE(color, '')
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Type, &category.Icon, &category.Color); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
