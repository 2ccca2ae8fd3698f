package scheduled_payment

import (
	"context"
	"time"
)

type StubRepo struct {
	payments []ScheduledPayment
	lastId   int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{}
}

func (r *StubRepo) Store(_ context.Context, userId int, p ScheduledPayment) (int, error) {
	r.lastId++
	p.Id = r.lastId
	p.UserId = userId
	r.payments = append(r.payments, p)
	return p.Id, nil
}

func (r *StubRepo) Get(_ context.Context, userId int, paymentId int) (ScheduledPayment, error) {
	for _, p := range r.payments {
		if p.Id == paymentId && p.UserId == userId {
			return p, nil
		}
	}
	return ScheduledPayment{}, ErrPaymentNotFound
}

func (r *StubRepo) GetAll(_ context.Context, userId int, unpaidOnly bool) ([]ScheduledPayment, error) {
	var result []ScheduledPayment
	for _, p := range r.payments {
		if p.UserId != userId {
			continue
		}
		if unpaidOnly && p.IsPaid {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *StubRepo) Update(_ context.Context, userId int, p ScheduledPayment) (bool, error) {
	for i, existing := range r.payments {
		if existing.Id == p.Id && existing.UserId == userId && !existing.IsPaid {
			p.UserId = userId
			r.payments[i] = p
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, paymentId int) (bool, error) {
	for i, p := range r.payments {
		if p.Id == paymentId && p.UserId == userId && !p.IsPaid {
			r.payments = append(r.payments[:i], r.payments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) MarkPaid(_ context.Context, userId int, paymentId int, paidDate time.Time) (bool, error) {
	for i, p := range r.payments {
		if p.Id == paymentId && p.UserId == userId && !p.IsPaid {
			r.payments[i].IsPaid = true
			r.payments[i].PaidDate = paidDate
			return true, nil
		}
	}
	return false, nil
}
