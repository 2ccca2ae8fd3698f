package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/test_utils"
	"github.com/fintrack/fintrack/internal/utils"
)

func setupHandler(repo Repo) *Handler {
	return NewHandler(NewService(repo, &utils.MockClock{FixedNow: date(2025, time.June, 15)}))
}

func statsRequest(t *testing.T, handler *Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req = req.WithContext(test_utils.TestContext())
	rec := httptest.NewRecorder()
	handler.GetAll(rec, req)
	return rec
}

func TestHandlerGetAll_ReturnsUnifiedDocument(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Categories = []CategoryExpense{
		{CategoryId: 1, CategoryName: "Groceries", Amount: 400},
	}
	handler := setupHandler(repo)

	// when
	rec := statsRequest(t, handler, "/api/statistics?startDate=2025-01-01&endDate=2025-01-31")

	// then
	require.Equal(t, http.StatusOK, rec.Code)
	var dto StatisticsDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Len(t, dto.PeriodSummary, 31)
	require.Len(t, dto.CategoryExpenses.Categories, 1)
	assert.Equal(t, 100.0, dto.CategoryExpenses.Categories[0].Percentage)
}

func TestHandlerGetAll_MissingDatesAreRejected(t *testing.T) {
	handler := setupHandler(NewStubRepo())

	rec := statsRequest(t, handler, "/api/statistics")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerGetAll_StartAfterEndIsRejected(t *testing.T) {
	handler := setupHandler(NewStubRepo())

	rec := statsRequest(t, handler, "/api/statistics?startDate=2025-02-01&endDate=2025-01-01")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid statistics query")
}

func TestHandlerMonthlyEvolution(t *testing.T) {
	// given
	handler := setupHandler(NewStubRepo())
	req := httptest.NewRequest(http.MethodGet, "/api/statistics/evolution?months=3", nil)
	req = req.WithContext(test_utils.TestContext())
	rec := httptest.NewRecorder()

	// when
	handler.MonthlyEvolution(rec, req)

	// then
	require.Equal(t, http.StatusOK, rec.Code)
	var months []MonthDataDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &months))
	require.Len(t, months, 3)
	assert.Equal(t, "2025-06", months[2].Month)
}

func TestHandlerMonthlyEvolution_NonNumericMonths(t *testing.T) {
	handler := setupHandler(NewStubRepo())
	req := httptest.NewRequest(http.MethodGet, "/api/statistics/evolution?months=abc", nil)
	req = req.WithContext(test_utils.TestContext())
	rec := httptest.NewRecorder()

	handler.MonthlyEvolution(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
