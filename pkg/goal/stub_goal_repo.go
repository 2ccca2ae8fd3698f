package goal

import "context"

type StubRepo struct {
	goals  []Goal
	lastId int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{}
}

func (r *StubRepo) Store(_ context.Context, userId int, goal Goal) (int, error) {
	r.lastId++
	goal.Id = r.lastId
	goal.UserId = userId
	r.goals = append(r.goals, goal)
	return goal.Id, nil
}

func (r *StubRepo) Get(_ context.Context, userId int, goalId int) (Goal, error) {
	for _, g := range r.goals {
		if g.Id == goalId && g.UserId == userId {
			return g, nil
		}
	}
	return Goal{}, ErrGoalNotFound
}

func (r *StubRepo) GetAll(_ context.Context, userId int) ([]Goal, error) {
	var result []Goal
	for _, g := range r.goals {
		if g.UserId == userId {
			result = append(result, g)
		}
	}
	return result, nil
}

func (r *StubRepo) Update(_ context.Context, userId int, goal Goal) (bool, error) {
	for i, g := range r.goals {
		if g.Id == goal.Id && g.UserId == userId {
			goal.UserId = userId
			r.goals[i] = goal
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, goalId int) (bool, error) {
	for i, g := range r.goals {
		if g.Id == goalId && g.UserId == userId {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) AddAmount(_ context.Context, userId int, goalId int, amount float64) (bool, error) {
	for i, g := range r.goals {
		if g.Id == goalId && g.UserId == userId {
			r.goals[i].CurrentAmount += amount
			return true, nil
		}
	}
	return false, nil
}
