package checkout

import "time"

type Step string

const (
	StepReceived  Step = "received"
	StepPreparing Step = "preparing"
	StepOnTheWay  Step = "on_the_way"
	StepDelivered Step = "delivered"
)

const DefaultStepInterval = 3 * time.Second

var DefaultSteps = []Step{StepReceived, StepPreparing, StepOnTheWay, StepDelivered}

// ProgressView is the cosmetic status of a submitted order. Active is -1
// once every step has had its interval.
type ProgressView struct {
	Steps      []Step `json:"steps"`
	Active     int    `json:"active"`
	ActiveStep Step   `json:"activeStep,omitempty"`
	Done       bool   `json:"done"`
}

func computeProgress(steps []Step, interval, elapsed time.Duration) ProgressView {
	pv := ProgressView{Steps: append([]Step{}, steps...), Active: -1}
	if elapsed < 0 {
		elapsed = 0
	}
	if interval <= 0 {
		pv.Done = true
		return pv
	}
	idx := int(elapsed / interval)
	if idx >= len(steps) {
		pv.Done = true
		return pv
	}
	pv.Active = idx
	pv.ActiveStep = steps[idx]
	return pv
}
