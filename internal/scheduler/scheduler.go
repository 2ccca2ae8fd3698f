package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fintrack/fintrack/internal/utils"
)

type Interval string

const (
	IntervalDaily Interval = "DAILY"
	// IntervalMonthly jobs fire on the first day of the month.
	IntervalMonthly Interval = "MONTHLY"
)

var (
	ErrUnknownJob   = errors.New("unknown job")
	ErrDuplicateJob = errors.New("job already registered")
)

// JobFunc runs a batch job as of the given time. The time is the scheduled
// trigger time, not necessarily wall-clock now.
type JobFunc func(ctx context.Context, asOf time.Time) error

type Job struct {
	Name     string
	Interval Interval
	Run      JobFunc
}

// Scheduler owns batch job registration and firing. Jobs are gated on the
// configured hour: daily jobs run once per calendar day, monthly jobs once per
// month on day 1. Time is read from the injected clock.
type Scheduler struct {
	clock     utils.Clock
	dailyHour int

	mu      sync.Mutex
	jobs    []Job
	lastRun map[string]time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

func New(clock utils.Clock, dailyHour int) *Scheduler {
	return &Scheduler{
		clock:     clock,
		dailyHour: dailyHour,
		lastRun:   make(map[string]time.Time),
		stop:      make(chan struct{}),
	}
}

func (s *Scheduler) Register(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.jobs {
		if existing.Name == job.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name)
		}
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.jobs))
	for _, job := range s.jobs {
		names = append(names, job.Name)
	}
	return names
}

// RunJob fires a single job immediately with an explicit as-of time. Manual
// runs do not update the last-run bookkeeping, so replaying a past date does
// not suppress the next scheduled run.
func (s *Scheduler) RunJob(ctx context.Context, name string, asOf time.Time) error {
	s.mu.Lock()
	var job *Job
	for i := range s.jobs {
		if s.jobs[i].Name == name {
			job = &s.jobs[i]
			break
		}
	}
	s.mu.Unlock()

	if job == nil {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	log.Infof("Running job %s as of %s", name, asOf.Format(time.DateOnly))
	return job.Run(ctx, asOf)
}

// Start launches the scheduling loop in a goroutine. The loop checks due jobs
// once a minute; Stop or context cancellation ends it.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.RunDue(ctx)
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// RunDue fires every job whose gate is open at the clock's current time.
// Failed runs are logged and stamped so a broken job does not retry every
// minute for the rest of the day.
func (s *Scheduler) RunDue(ctx context.Context) {
	now := s.clock.Now()

	s.mu.Lock()
	jobs := make([]Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, job := range jobs {
		if !s.due(job, now) {
			continue
		}
		if err := job.Run(ctx, now); err != nil {
			log.Errorf("Job %s failed: %v", job.Name, err)
		}
		s.mu.Lock()
		s.lastRun[job.Name] = now
		s.mu.Unlock()
	}
}

func (s *Scheduler) LastRun(name string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastRun[name]
	return last, ok
}

func (s *Scheduler) due(job Job, now time.Time) bool {
	if now.Hour() < s.dailyHour {
		return false
	}
	if job.Interval == IntervalMonthly && now.Day() != 1 {
		return false
	}

	s.mu.Lock()
	last, ran := s.lastRun[job.Name]
	s.mu.Unlock()
	if !ran {
		return true
	}

	switch job.Interval {
	case IntervalMonthly:
		return last.Year() != now.Year() || last.Month() != now.Month()
	default:
		return last.Year() != now.Year() || last.YearDay() != now.YearDay()
	}
}
