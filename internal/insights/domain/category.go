package domain

type Category struct {
	ID     string `json:"id"`
	UserID string `json:"-"`
	Name   string `json:"name"`
	Type   string `json:"type"` // "income" or "expense"
	Icon   string `json:"icon,omitempty"`
	Color  string `json:"color,omitempty"`
}

type CategoryRepository interface {
	FindByUser(userID string) ([]Category, error)
}
