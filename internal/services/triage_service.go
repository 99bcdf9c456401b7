package services

import (
	"time"

	"deadlines/internal/clock"
	"deadlines/internal/domain"
	"deadlines/internal/urgency"
)

// triageServiceImpl implements the TriageService interface
type triageServiceImpl struct {
	rule  urgency.Rule
	clock clock.Clock
}

// NewTriageService creates a TriageService counting days with rule
func NewTriageService(rule urgency.Rule, clk clock.Clock) TriageService {
	if clk == nil {
		clk = clock.Real()
	}
	return &triageServiceImpl{rule: rule, clock: clk}
}

func (s *triageServiceImpl) Rule() urgency.Rule {
	return s.rule
}

// Assess classifies task at the clock's current time
func (s *triageServiceImpl) Assess(task *domain.Task) TriagedTask {
	return s.AssessAt(task, s.clock.Now())
}

func (s *triageServiceImpl) AssessAt(task *domain.Task, now time.Time) TriagedTask {
	a := s.rule.Assess(task.DueDate, now)
	return TriagedTask{
		Task:      task,
		Bucket:    a.Bucket,
		Remaining: a.Remaining,
		HasDue:    a.HasDue,
	}
}

// AssessAll classifies every task against a single reading of the clock,
// keeping the input order.
func (s *triageServiceImpl) AssessAll(tasks []*domain.Task) []TriagedTask {
	now := s.clock.Now()
	triaged := make([]TriagedTask, len(tasks))
	for i, task := range tasks {
		triaged[i] = s.AssessAt(task, now)
	}
	return triaged
}

func (s *triageServiceImpl) CountByBucket(triaged []TriagedTask) map[urgency.Bucket]int {
	counts := make(map[urgency.Bucket]int, len(urgency.Buckets()))
	for _, tt := range triaged {
		if tt.Task != nil && tt.Task.IsDone {
			continue
		}
		counts[tt.Bucket]++
	}
	return counts
}
