package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrack/fintrack/internal/rest"
)

type PeriodSummaryDTO struct {
	Period       string  `json:"period"`
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

type CategoryExpenseDTO struct {
	CategoryId   int     `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Icon         string  `json:"icon,omitempty"`
	Color        string  `json:"color,omitempty"`
	Amount       float64 `json:"amount"`
	Percentage   float64 `json:"percentage"`
}

type CategoryBreakdownDTO struct {
	TotalAmount float64              `json:"totalAmount"`
	Categories  []CategoryExpenseDTO `json:"categories"`
}

type BudgetVsActualDTO struct {
	CategoryId     int     `json:"categoryId,omitempty"`
	CategoryName   string  `json:"categoryName,omitempty"`
	BudgetAmount   float64 `json:"budgetAmount"`
	ActualAmount   float64 `json:"actualAmount"`
	Difference     float64 `json:"difference"`
	PercentageUsed float64 `json:"percentageUsed"`
}

type BudgetEfficiencyDTO struct {
	TotalBudgetAmount     float64 `json:"totalBudgetAmount"`
	TotalSpentAmount      float64 `json:"totalSpentAmount"`
	TotalRemainingAmount  float64 `json:"totalRemainingAmount"`
	AveragePercentageUsed float64 `json:"averagePercentageUsed"`
	TotalBudgets          int     `json:"totalBudgets"`
	BudgetsOnTrack        int     `json:"budgetsOnTrack"`
	BudgetsExceeded       int     `json:"budgetsExceeded"`
}

type BudgetDistributionDTO struct {
	CategoryId   int     `json:"categoryId,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
	BudgetAmount float64 `json:"budgetAmount"`
	Percentage   float64 `json:"percentage"`
}

type MonthlyBudgetTrendDTO struct {
	Month                 string  `json:"month"`
	BudgetCount           int     `json:"budgetCount"`
	TotalBudgetAmount     float64 `json:"totalBudgetAmount"`
	TotalSpentAmount      float64 `json:"totalSpentAmount"`
	AveragePercentageUsed float64 `json:"averagePercentageUsed"`
}

type BudgetStatisticsDTO struct {
	VsActual     []BudgetVsActualDTO     `json:"budgetVsActual"`
	Efficiency   BudgetEfficiencyDTO     `json:"efficiency"`
	Distribution []BudgetDistributionDTO `json:"distribution"`
	MonthlyTrend []MonthlyBudgetTrendDTO `json:"monthlyTrend"`
}

type StatisticsDTO struct {
	PeriodSummary    []PeriodSummaryDTO   `json:"periodSummary"`
	CategoryExpenses CategoryBreakdownDTO `json:"categoryExpenses"`
	BudgetStatistics BudgetStatisticsDTO  `json:"budgetStatistics"`
}

type MonthDataDTO struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

type BudgetStatusDTO struct {
	TotalBudget    float64 `json:"totalBudget"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentageUsed"`
}

type DetailedStatisticsDTO struct {
	TotalIncome          float64             `json:"totalIncome"`
	TotalExpense         float64             `json:"totalExpense"`
	AverageDailyExpense  float64             `json:"averageDailyExpense"`
	AverageMonthlyIncome float64             `json:"averageMonthlyIncome"`
	TopExpenseCategory   *CategoryExpenseDTO `json:"topExpenseCategory,omitempty"`
	BudgetStatus         BudgetStatusDTO     `json:"budgetStatus"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetAll serves the unified statistics document for a date range.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	query, ok := h.queryFromRequest(w, r)
	if !ok {
		return
	}

	statistics, err := h.service.GetAll(r.Context(), query)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(statisticsToDTO(statistics)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) MonthlyEvolution(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	months := 12
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeBadRequest(w, "months must be an integer")
			return
		}
		months = parsed
	}

	evolution, err := h.service.MonthlyEvolution(r.Context(), months)
	if err != nil {
		h.writeError(w, err)
		return
	}
	dtos := make([]MonthDataDTO, 0, len(evolution))
	for _, m := range evolution {
		dtos = append(dtos, MonthDataDTO(m))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Detailed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	query, ok := h.queryFromRequest(w, r)
	if !ok {
		return
	}

	detailed, err := h.service.Detailed(r.Context(), query)
	if err != nil {
		h.writeError(w, err)
		return
	}

	dto := DetailedStatisticsDTO{
		TotalIncome:          detailed.TotalIncome,
		TotalExpense:         detailed.TotalExpense,
		AverageDailyExpense:  detailed.AverageDailyExpense,
		AverageMonthlyIncome: detailed.AverageMonthlyIncome,
		BudgetStatus:         BudgetStatusDTO(detailed.BudgetStatus),
	}
	if detailed.TopExpenseCategory != nil {
		top := categoryExpenseToDTO(*detailed.TopExpenseCategory)
		dto.TopExpenseCategory = &top
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) queryFromRequest(w http.ResponseWriter, r *http.Request) (Query, bool) {
	start, err := time.Parse(time.DateOnly, r.URL.Query().Get("startDate"))
	if err != nil {
		h.writeBadRequest(w, "startDate must be provided as YYYY-MM-DD")
		return Query{}, false
	}
	end, err := time.Parse(time.DateOnly, r.URL.Query().Get("endDate"))
	if err != nil {
		h.writeBadRequest(w, "endDate must be provided as YYYY-MM-DD")
		return Query{}, false
	}
	return Query{Start: start, End: end}, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidRange) {
		h.writeBadRequest(w, err.Error())
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, details string) {
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   "Invalid statistics query",
		Details: details,
	})
}

func statisticsToDTO(statistics Statistics) StatisticsDTO {
	summaries := make([]PeriodSummaryDTO, 0, len(statistics.PeriodSummary))
	for _, s := range statistics.PeriodSummary {
		summaries = append(summaries, PeriodSummaryDTO(s))
	}

	categories := make([]CategoryExpenseDTO, 0, len(statistics.CategoryExpenses.Categories))
	for _, c := range statistics.CategoryExpenses.Categories {
		categories = append(categories, categoryExpenseToDTO(c))
	}

	vsActual := make([]BudgetVsActualDTO, 0, len(statistics.BudgetStatistics.VsActual))
	for _, v := range statistics.BudgetStatistics.VsActual {
		vsActual = append(vsActual, BudgetVsActualDTO(v))
	}

	dist := make([]BudgetDistributionDTO, 0, len(statistics.BudgetStatistics.Distribution))
	for _, d := range statistics.BudgetStatistics.Distribution {
		dist = append(dist, BudgetDistributionDTO(d))
	}

	trend := make([]MonthlyBudgetTrendDTO, 0, len(statistics.BudgetStatistics.MonthlyTrend))
	for _, t := range statistics.BudgetStatistics.MonthlyTrend {
		trend = append(trend, MonthlyBudgetTrendDTO{
			Month:                 t.Month,
			BudgetCount:           t.BudgetCount,
			TotalBudgetAmount:     t.TotalBudget,
			TotalSpentAmount:      t.TotalSpent,
			AveragePercentageUsed: t.AveragePercentageUsed,
		})
	}

	e := statistics.BudgetStatistics.Efficiency
	return StatisticsDTO{
		PeriodSummary: summaries,
		CategoryExpenses: CategoryBreakdownDTO{
			TotalAmount: statistics.CategoryExpenses.TotalAmount,
			Categories:  categories,
		},
		BudgetStatistics: BudgetStatisticsDTO{
			VsActual: vsActual,
			Efficiency: BudgetEfficiencyDTO{
				TotalBudgetAmount:     e.TotalBudget,
				TotalSpentAmount:      e.TotalSpent,
				TotalRemainingAmount:  e.TotalRemaining,
				AveragePercentageUsed: e.AveragePercentageUsed,
				TotalBudgets:          e.TotalBudgets,
				BudgetsOnTrack:        e.BudgetsOnTrack,
				BudgetsExceeded:       e.BudgetsExceeded,
			},
			Distribution: dist,
			MonthlyTrend: trend,
		},
	}
}

func categoryExpenseToDTO(c CategoryExpense) CategoryExpenseDTO {
	return CategoryExpenseDTO(c)
}
