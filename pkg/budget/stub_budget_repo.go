package budget

import (
	"context"
	"time"
)

type StubRepo struct {
	budgets []Budget
	lastId  int
	// Spent maps budget category id to a fixed spent amount returned by
	// SpentAmount. The 0 key covers global budgets.
	Spent map[int]float64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{Spent: make(map[int]float64)}
}

func (r *StubRepo) Store(_ context.Context, userId int, budget Budget) (int, error) {
	r.lastId++
	budget.Id = r.lastId
	budget.UserId = userId
	r.budgets = append(r.budgets, budget)
	return budget.Id, nil
}

func (r *StubRepo) Get(_ context.Context, userId int, budgetId int) (Budget, error) {
	for _, b := range r.budgets {
		if b.Id == budgetId && b.UserId == userId {
			return b, nil
		}
	}
	return Budget{}, ErrBudgetNotFound
}

func (r *StubRepo) GetAll(_ context.Context, userId int) ([]Budget, error) {
	var result []Budget
	for _, b := range r.budgets {
		if b.UserId == userId {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *StubRepo) Update(_ context.Context, userId int, budget Budget) (bool, error) {
	for i, b := range r.budgets {
		if b.Id == budget.Id && b.UserId == userId {
			budget.UserId = userId
			r.budgets[i] = budget
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, budgetId int) (bool, error) {
	for i, b := range r.budgets {
		if b.Id == budgetId && b.UserId == userId {
			r.budgets = append(r.budgets[:i], r.budgets[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) FindRecurringTemplates(_ context.Context) ([]Budget, error) {
	var result []Budget
	for _, b := range r.budgets {
		if b.IsRecurring && b.StartDate.IsZero() {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *StubRepo) InstanceExists(_ context.Context, userId int, categoryId int, firstDay, lastDay time.Time) (bool, error) {
	for _, b := range r.budgets {
		if b.UserId == userId && b.CategoryId == categoryId &&
			b.StartDate.Equal(firstDay) && b.EndDate.Equal(lastDay) {
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) SpentAmount(_ context.Context, _ int, categoryId int, _, _ time.Time) (float64, error) {
	return r.Spent[categoryId], nil
}
