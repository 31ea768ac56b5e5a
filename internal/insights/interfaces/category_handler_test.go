package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finsight-dev/FinanceInsights/internal/insights/domain"
)

func TestHandleGetCategories_Success(t *testing.T) {
	mockService := &MockCategoryService{
		Categories: []domain.Category{
			{ID: "c1", UserID: "user-1", Name: "Food & Dining", Type: "expense"},
			{ID: "c2", UserID: "user-1", Name: "Salary", Type: "income"},
		},
	}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/categories", nil)
	w := httptest.NewRecorder()
	handler.HandleGetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response["status"])

	data := response["data"].([]interface{})
	assert.Equal(t, 2, len(data))
}

func TestHandleGetCategories_NoUserInContext(t *testing.T) {
	handler := NewCategoryHandler(&MockCategoryService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/categories", nil)
	w := httptest.NewRecorder()
	handler.HandleGetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHandleGetCategories_ErrorFromService(t *testing.T) {
	mockService := &MockCategoryService{Err: errors.New("db gone")}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/categories", nil)
	w := httptest.NewRecorder()
	handler.HandleGetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Failed to list categories", response["message"])
}
