package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrack/fintrack/pkg/payment"
	"github.com/fintrack/fintrack/pkg/recurrence"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	Id                int            `json:"id"`
	CategoryId        int            `json:"categoryId"`
	CategoryName      string         `json:"categoryName,omitempty"`
	Amount            float64        `json:"amount"`
	PaymentMethod     string         `json:"paymentMethod"`
	Date              string         `json:"date"`
	Description       string         `json:"description,omitempty"`
	Location          string         `json:"location,omitempty"`
	IsRecurring       bool           `json:"isRecurring"`
	Recurrence        *RecurrenceDTO `json:"recurrence,omitempty"`
	RecurringSourceId int            `json:"generatedFromTemplateId,omitempty"`
}

type RecurrenceDTO struct {
	Frequency  string `json:"frequency"`
	EndDate    string `json:"endDate,omitempty"`
	DaysOfWeek []int  `json:"daysOfWeek,omitempty"`
	DayOfMonth int    `json:"dayOfMonth,omitempty"`
	DayOfYear  int    `json:"dayOfYear,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new expense")
	w.Header().Set("Content-Type", "application/json")

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense, err := dtoToExpense(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), expense)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(expenseToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expenses, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		dtos = append(dtos, expenseToDTO(expense))
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

	expense, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(expenseToDTO(expense)); err != nil {
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

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Id = id
	expense, err := dtoToExpense(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), expense)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(expenseToDTO(updated)); err != nil {
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
		if errors.Is(err, ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPaymentMethod) ||
		errors.Is(err, ErrInvalidRecurrence)
}

func filterFromQuery(r *http.Request) (Filter, error) {
	var filter Filter
	query := r.URL.Query()
	if from := query.Get("startDate"); from != "" {
		parsed, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return Filter{}, err
		}
		filter.From = parsed
	}
	if to := query.Get("endDate"); to != "" {
		parsed, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return Filter{}, err
		}
		filter.To = parsed
	}
	if categoryId := query.Get("categoryId"); categoryId != "" {
		parsed, err := strconv.Atoi(categoryId)
		if err != nil {
			return Filter{}, err
		}
		filter.CategoryId = parsed
	}
	filter.IncludeTemplates = query.Get("includeTemplates") == "true"
	return filter, nil
}

func expenseToDTO(expense Expense) ExpenseDTO {
	dto := ExpenseDTO{
		Id:                expense.Id,
		CategoryId:        expense.CategoryId,
		CategoryName:      expense.CategoryName,
		Amount:            expense.Amount,
		PaymentMethod:     string(expense.Method),
		Date:              expense.Date.Format(time.DateOnly),
		Description:       expense.Description,
		Location:          expense.Location,
		IsRecurring:       expense.IsRecurring,
		RecurringSourceId: expense.RecurringSourceId,
	}
	if !expense.Recurrence.IsZero() {
		recurrenceDTO := RecurrenceDTO{
			Frequency:  string(expense.Recurrence.Frequency),
			DaysOfWeek: expense.Recurrence.DaysOfWeek,
			DayOfMonth: expense.Recurrence.DayOfMonth,
			DayOfYear:  expense.Recurrence.DayOfYear,
		}
		if !expense.Recurrence.EndDate.IsZero() {
			recurrenceDTO.EndDate = expense.Recurrence.EndDate.Format(time.DateOnly)
		}
		dto.Recurrence = &recurrenceDTO
	}
	return dto
}

func dtoToExpense(dto ExpenseDTO) (Expense, error) {
	date, err := time.Parse(time.DateOnly, dto.Date)
	if err != nil {
		return Expense{}, err
	}
	expense := Expense{
		Id:          dto.Id,
		CategoryId:  dto.CategoryId,
		Amount:      dto.Amount,
		Method:      payment.Method(dto.PaymentMethod),
		Date:        date,
		Description: dto.Description,
		Location:    dto.Location,
		IsRecurring: dto.IsRecurring,
	}
	if dto.Recurrence != nil {
		expense.Recurrence = recurrence.Rule{
			Frequency:  recurrence.Frequency(dto.Recurrence.Frequency),
			DaysOfWeek: dto.Recurrence.DaysOfWeek,
			DayOfMonth: dto.Recurrence.DayOfMonth,
			DayOfYear:  dto.Recurrence.DayOfYear,
		}
		if dto.Recurrence.EndDate != "" {
			endDate, err := time.Parse(time.DateOnly, dto.Recurrence.EndDate)
			if err != nil {
				return Expense{}, err
			}
			expense.Recurrence.EndDate = endDate
		}
	}
	return expense, nil
}
