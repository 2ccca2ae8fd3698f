package goal

import "time"

type Goal struct {
	Id            int
	UserId        int
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	Deadline      time.Time
	CreatedAt     time.Time
}

// ProgressPercentage reports how much of the target has been saved,
// 0.0 when the target amount is zero.
func (g Goal) ProgressPercentage() float64 {
	if g.TargetAmount <= 0 {
		return 0.0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}
