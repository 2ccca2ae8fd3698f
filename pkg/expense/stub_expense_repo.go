package expense

import (
	"context"
	"time"
)

type StubRepo struct {
	expenses []Expense
	lastId   int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{}
}

func (r *StubRepo) Store(_ context.Context, userId int, expense Expense) (int, error) {
	r.lastId++
	expense.Id = r.lastId
	expense.UserId = userId
	r.expenses = append(r.expenses, expense)
	return expense.Id, nil
}

func (r *StubRepo) Get(_ context.Context, userId int, expenseId int) (Expense, error) {
	for _, e := range r.expenses {
		if e.Id == expenseId && e.UserId == userId {
			return e, nil
		}
	}
	return Expense{}, ErrExpenseNotFound
}

func (r *StubRepo) List(_ context.Context, userId int, filter Filter) ([]Expense, error) {
	var result []Expense
	for _, e := range r.expenses {
		if e.UserId != userId {
			continue
		}
		if e.IsRecurring && !filter.IncludeTemplates {
			continue
		}
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		if filter.CategoryId != 0 && e.CategoryId != filter.CategoryId {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (r *StubRepo) Update(_ context.Context, userId int, expense Expense) (bool, error) {
	for i, e := range r.expenses {
		if e.Id == expense.Id && e.UserId == userId {
			expense.UserId = userId
			r.expenses[i] = expense
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, expenseId int) (bool, error) {
	for i, e := range r.expenses {
		if e.Id == expenseId && e.UserId == userId {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) FindRecurringTemplates(_ context.Context) ([]Expense, error) {
	var result []Expense
	for _, e := range r.expenses {
		if e.IsRecurring {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *StubRepo) OccurrenceExists(_ context.Context, templateId int, dayStart, dayEnd time.Time) (bool, error) {
	for _, e := range r.expenses {
		if !e.IsRecurring && e.RecurringSourceId == templateId &&
			!e.Date.Before(dayStart) && !e.Date.After(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}
