package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	Id           int     `json:"id"`
	CategoryId   int     `json:"categoryId,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
	Amount       float64 `json:"amount"`
	StartDate    string  `json:"startDate,omitempty"`
	EndDate      string  `json:"endDate,omitempty"`
	IsRecurring  bool    `json:"isRecurring"`
}

type ProgressDTO struct {
	BudgetDTO
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentageUsed"`
	Status         string  `json:"status"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget")
	w.Header().Set("Content-Type", "application/json")

	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	budget, err := dtoToBudget(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), budget)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidDateRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(budgetToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Query().Get("withProgress") == "true" {
		progress, err := h.service.GetAllWithProgress(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		dtos := make([]ProgressDTO, 0, len(progress))
		for _, p := range progress {
			dtos = append(dtos, progressToDTO(p))
		}
		if err := json.NewEncoder(w).Encode(dtos); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	budgets, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, budget := range budgets {
		dtos = append(dtos, budgetToDTO(budget))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	budget, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, "Budget not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(budgetToDTO(budget)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	progress, err := h.service.GetProgress(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, "Budget not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(progressToDTO(progress)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Id = id
	budget, err := dtoToBudget(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), budget)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, "Budget not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidDateRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(budgetToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, "Budget not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func budgetToDTO(budget Budget) BudgetDTO {
	dto := BudgetDTO{
		Id:           budget.Id,
		CategoryId:   budget.CategoryId,
		CategoryName: budget.CategoryName,
		Amount:       budget.Amount,
		IsRecurring:  budget.IsRecurring,
	}
	if !budget.StartDate.IsZero() {
		dto.StartDate = budget.StartDate.Format(time.DateOnly)
	}
	if !budget.EndDate.IsZero() {
		dto.EndDate = budget.EndDate.Format(time.DateOnly)
	}
	return dto
}

func progressToDTO(progress Progress) ProgressDTO {
	return ProgressDTO{
		BudgetDTO:      budgetToDTO(progress.Budget),
		Spent:          progress.Spent,
		Remaining:      progress.Remaining,
		PercentageUsed: progress.PercentageUsed,
		Status:         string(progress.Status),
	}
}

func dtoToBudget(dto BudgetDTO) (Budget, error) {
	budget := Budget{
		Id:          dto.Id,
		CategoryId:  dto.CategoryId,
		Amount:      dto.Amount,
		IsRecurring: dto.IsRecurring,
	}
	if dto.StartDate != "" {
		startDate, err := time.Parse(time.DateOnly, dto.StartDate)
		if err != nil {
			return Budget{}, err
		}
		budget.StartDate = startDate
	}
	if dto.EndDate != "" {
		endDate, err := time.Parse(time.DateOnly, dto.EndDate)
		if err != nil {
			return Budget{}, err
		}
		budget.EndDate = endDate
	}
	return budget, nil
}
