package income

import (
	"context"
	"time"
)

type StubRepo struct {
	incomes []Income
	lastId  int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{}
}

func (r *StubRepo) Store(_ context.Context, userId int, income Income) (int, error) {
	r.lastId++
	income.Id = r.lastId
	income.UserId = userId
	r.incomes = append(r.incomes, income)
	return income.Id, nil
}

func (r *StubRepo) Get(_ context.Context, userId int, incomeId int) (Income, error) {
	for _, i := range r.incomes {
		if i.Id == incomeId && i.UserId == userId {
			return i, nil
		}
	}
	return Income{}, ErrIncomeNotFound
}

func (r *StubRepo) List(_ context.Context, userId int, filter Filter) ([]Income, error) {
	var result []Income
	for _, i := range r.incomes {
		if i.UserId != userId {
			continue
		}
		if i.IsRecurring && !filter.IncludeTemplates {
			continue
		}
		if !filter.From.IsZero() && i.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && i.Date.After(filter.To) {
			continue
		}
		if filter.Source != "" && i.Source != filter.Source {
			continue
		}
		result = append(result, i)
	}
	return result, nil
}

func (r *StubRepo) Update(_ context.Context, userId int, income Income) (bool, error) {
	for idx, i := range r.incomes {
		if i.Id == income.Id && i.UserId == userId {
			income.UserId = userId
			r.incomes[idx] = income
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, incomeId int) (bool, error) {
	for idx, i := range r.incomes {
		if i.Id == incomeId && i.UserId == userId {
			r.incomes = append(r.incomes[:idx], r.incomes[idx+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) FindRecurringTemplates(_ context.Context) ([]Income, error) {
	var result []Income
	for _, i := range r.incomes {
		if i.IsRecurring {
			result = append(result, i)
		}
	}
	return result, nil
}

func (r *StubRepo) OccurrenceExists(_ context.Context, templateId int, dayStart, dayEnd time.Time) (bool, error) {
	for _, i := range r.incomes {
		if !i.IsRecurring && i.RecurringSourceId == templateId &&
			!i.Date.Before(dayStart) && !i.Date.After(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}
