package progress

import "habitkit/internal/models"

// FixedDaysState is the derived state of a habit's fixed-days tracking.
type FixedDaysState struct {
	Target    int  `json:"target"`
	Progress  int  `json:"progress"`
	Remaining int  `json:"remaining"`
	Completed bool `json:"completed"`
}

// FixedDaysStateOf computes the fixed-days view for a habit, or nil when
// fixed-days tracking is not enabled. Completion does not archive the habit;
// callers surface the flag and leave archiving to the user.
func FixedDaysStateOf(h *models.Habit) *FixedDaysState {
	if !h.FixedDaysEnabled {
		return nil
	}
	remaining := h.FixedDaysTarget - h.FixedDaysProgress
	if remaining < 0 {
		remaining = 0
	}
	return &FixedDaysState{
		Target:    h.FixedDaysTarget,
		Progress:  h.FixedDaysProgress,
		Remaining: remaining,
		Completed: h.FixedDaysProgress >= h.FixedDaysTarget,
	}
}
