package income

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

type IncomeDTO struct {
	Id                int            `json:"id"`
	Amount            float64        `json:"amount"`
	PaymentMethod     string         `json:"paymentMethod"`
	Date              string         `json:"date"`
	Description       string         `json:"description,omitempty"`
	Source            string         `json:"source,omitempty"`
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
	log.Debug("Creating new income")
	w.Header().Set("Content-Type", "application/json")

	var dto IncomeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	income, err := dtoToIncome(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), income)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(incomeToDTO(created)); err != nil {
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

	incomes, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]IncomeDTO, 0, len(incomes))
	for _, income := range incomes {
		dtos = append(dtos, incomeToDTO(income))
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

	income, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrIncomeNotFound) {
			http.Error(w, "Income not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(incomeToDTO(income)); err != nil {
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

	var dto IncomeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Id = id
	income, err := dtoToIncome(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), income)
	if err != nil {
		if errors.Is(err, ErrIncomeNotFound) {
			http.Error(w, "Income not found", http.StatusNotFound)
			return
		}
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(incomeToDTO(updated)); err != nil {
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
		if errors.Is(err, ErrIncomeNotFound) {
			http.Error(w, "Income not found", http.StatusNotFound)
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
	filter.Source = query.Get("source")
	filter.IncludeTemplates = query.Get("includeTemplates") == "true"
	return filter, nil
}

func incomeToDTO(income Income) IncomeDTO {
	dto := IncomeDTO{
		Id:                income.Id,
		Amount:            income.Amount,
		PaymentMethod:     string(income.Method),
		Date:              income.Date.Format(time.DateOnly),
		Description:       income.Description,
		Source:            income.Source,
		IsRecurring:       income.IsRecurring,
		RecurringSourceId: income.RecurringSourceId,
	}
	if !income.Recurrence.IsZero() {
		recurrenceDTO := RecurrenceDTO{
			Frequency:  string(income.Recurrence.Frequency),
			DaysOfWeek: income.Recurrence.DaysOfWeek,
			DayOfMonth: income.Recurrence.DayOfMonth,
			DayOfYear:  income.Recurrence.DayOfYear,
		}
		if !income.Recurrence.EndDate.IsZero() {
			recurrenceDTO.EndDate = income.Recurrence.EndDate.Format(time.DateOnly)
		}
		dto.Recurrence = &recurrenceDTO
	}
	return dto
}

func dtoToIncome(dto IncomeDTO) (Income, error) {
	date, err := time.Parse(time.DateOnly, dto.Date)
	if err != nil {
		return Income{}, err
	}
	income := Income{
		Id:          dto.Id,
		Amount:      dto.Amount,
		Method:      payment.Method(dto.PaymentMethod),
		Date:        date,
		Description: dto.Description,
		Source:      dto.Source,
		IsRecurring: dto.IsRecurring,
	}
	if dto.Recurrence != nil {
		income.Recurrence = recurrence.Rule{
			Frequency:  recurrence.Frequency(dto.Recurrence.Frequency),
			DaysOfWeek: dto.Recurrence.DaysOfWeek,
			DayOfMonth: dto.Recurrence.DayOfMonth,
			DayOfYear:  dto.Recurrence.DayOfYear,
		}
		if dto.Recurrence.EndDate != "" {
			endDate, err := time.Parse(time.DateOnly, dto.Recurrence.EndDate)
			if err != nil {
				return Income{}, err
			}
			income.Recurrence.EndDate = endDate
		}
	}
	return income, nil
}
