package scheduled_payment

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

type ScheduledPaymentDTO struct {
	Id            int            `json:"id"`
	CategoryId    int            `json:"categoryId,omitempty"`
	CategoryName  string         `json:"categoryName,omitempty"`
	Title         string         `json:"title"`
	Beneficiary   string         `json:"beneficiary,omitempty"`
	Amount        float64        `json:"amount"`
	PaymentMethod string         `json:"paymentMethod"`
	DueDate       string         `json:"dueDate"`
	IsPaid        bool           `json:"isPaid"`
	PaidDate      string         `json:"paidDate,omitempty"`
	IsRecurring   bool           `json:"isRecurring"`
	Recurrence    *RecurrenceDTO `json:"recurrence,omitempty"`
}

type RecurrenceDTO struct {
	Frequency  string `json:"frequency"`
	EndDate    string `json:"endDate,omitempty"`
	DaysOfWeek []int  `json:"daysOfWeek,omitempty"`
	DayOfMonth int    `json:"dayOfMonth,omitempty"`
	DayOfYear  int    `json:"dayOfYear,omitempty"`
}

type MarkPaidDTO struct {
	PaidDate string `json:"paidDate"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new scheduled payment")
	w.Header().Set("Content-Type", "application/json")

	var dto ScheduledPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	scheduledPayment, err := dtoToPayment(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), scheduledPayment)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(paymentToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	unpaidOnly := r.URL.Query().Get("unpaidOnly") == "true"
	payments, err := h.service.GetAll(r.Context(), unpaidOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]ScheduledPaymentDTO, 0, len(payments))
	for _, p := range payments {
		dtos = append(dtos, paymentToDTO(p))
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

	scheduledPayment, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			http.Error(w, "Scheduled payment not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(paymentToDTO(scheduledPayment)); err != nil {
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

	var dto ScheduledPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Id = id
	scheduledPayment, err := dtoToPayment(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), scheduledPayment)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(paymentToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto MarkPaidDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	paidDate, err := time.Parse(time.DateOnly, dto.PaidDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	paid, err := h.service.MarkPaid(r.Context(), id, paidDate)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(paymentToDTO(paid)); err != nil {
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
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		http.Error(w, "Scheduled payment not found", http.StatusNotFound)
	case errors.Is(err, ErrAlreadyPaid):
		http.Error(w, err.Error(), http.StatusConflict)
	case isValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPaymentMethod) ||
		errors.Is(err, ErrEmptyTitle)
}

func paymentToDTO(p ScheduledPayment) ScheduledPaymentDTO {
	dto := ScheduledPaymentDTO{
		Id:            p.Id,
		CategoryId:    p.CategoryId,
		CategoryName:  p.CategoryName,
		Title:         p.Title,
		Beneficiary:   p.Beneficiary,
		Amount:        p.Amount,
		PaymentMethod: string(p.Method),
		DueDate:       p.DueDate.Format(time.DateOnly),
		IsPaid:        p.IsPaid,
		IsRecurring:   p.IsRecurring,
	}
	if !p.PaidDate.IsZero() {
		dto.PaidDate = p.PaidDate.Format(time.DateOnly)
	}
	if !p.Recurrence.IsZero() {
		recurrenceDTO := RecurrenceDTO{
			Frequency:  string(p.Recurrence.Frequency),
			DaysOfWeek: p.Recurrence.DaysOfWeek,
			DayOfMonth: p.Recurrence.DayOfMonth,
			DayOfYear:  p.Recurrence.DayOfYear,
		}
		if !p.Recurrence.EndDate.IsZero() {
			recurrenceDTO.EndDate = p.Recurrence.EndDate.Format(time.DateOnly)
		}
		dto.Recurrence = &recurrenceDTO
	}
	return dto
}

func dtoToPayment(dto ScheduledPaymentDTO) (ScheduledPayment, error) {
	dueDate, err := time.Parse(time.DateOnly, dto.DueDate)
	if err != nil {
		return ScheduledPayment{}, err
	}
	p := ScheduledPayment{
		Id:          dto.Id,
		CategoryId:  dto.CategoryId,
		Title:       dto.Title,
		Beneficiary: dto.Beneficiary,
		Amount:      dto.Amount,
		Method:      payment.Method(dto.PaymentMethod),
		DueDate:     dueDate,
		IsRecurring: dto.IsRecurring,
	}
	if dto.Recurrence != nil {
		p.Recurrence = recurrence.Rule{
			Frequency:  recurrence.Frequency(dto.Recurrence.Frequency),
			DaysOfWeek: dto.Recurrence.DaysOfWeek,
			DayOfMonth: dto.Recurrence.DayOfMonth,
			DayOfYear:  dto.Recurrence.DayOfYear,
		}
		if dto.Recurrence.EndDate != "" {
			endDate, err := time.Parse(time.DateOnly, dto.Recurrence.EndDate)
			if err != nil {
				return ScheduledPayment{}, err
			}
			p.Recurrence.EndDate = endDate
		}
	}
	return p, nil
}
