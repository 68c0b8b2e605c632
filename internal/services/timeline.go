package services

import "bargainbay/internal/domain"

// TimelineSteps is the fixed progression shown for a live order.
var TimelineSteps = []domain.OrderStatus{
	domain.StatusPlaced,
	domain.StatusPacked,
	domain.StatusShipped,
	domain.StatusDelivered,
}

type Step struct {
	Name    domain.OrderStatus `json:"name"`
	Reached bool               `json:"reached"`
}

// Timeline is the projection of an order status. A cancelled order carries no steps.
type Timeline struct {
	Cancelled bool   `json:"cancelled"`
	Current   int    `json:"current"` // -1 when nothing is reached
	Steps     []Step `json:"steps,omitempty"`
}

func stepIndex(status domain.OrderStatus) int {
	for i, s := range TimelineSteps {
		if s == status {
			return i
		}
	}
	return -1
}

// Project maps status onto the 4-step timeline. Unknown statuses degrade to
// index 0 so the first step is still shown as reached.
func Project(status domain.OrderStatus) Timeline {
	if status == domain.StatusCancelled {
		return Timeline{Cancelled: true, Current: -1}
	}
	cur := stepIndex(status)
	if cur < 0 {
		cur = 0
	}
	steps := make([]Step, len(TimelineSteps))
	for i, s := range TimelineSteps {
		steps[i] = Step{Name: s, Reached: i <= cur}
	}
	return Timeline{Current: cur, Steps: steps}
}

// CanCancel reports whether the cancel command may be offered.
func CanCancel(status domain.OrderStatus) bool {
	return status != domain.StatusCancelled
}
