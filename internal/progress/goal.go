package progress

import "habitkit/internal/models"

// GoalResult is the outcome of evaluating a day's logged total against a
// habit's goal.
type GoalResult struct {
	Met bool `json:"met"`
	// Percentage is normalized to [0, 100]. For min goals it reflects how
	// much of the target was reached; for max goals it reflects how much
	// headroom remains below the limit.
	Percentage float64 `json:"percentage"`
}

// EvaluateGoal determines whether a goal with the given direction and target
// was met by the achieved count, along with a normalized progress percentage.
//
// A target of zero is only meaningful for max goals ("none allowed"): the
// goal is met exactly when nothing was logged. A zero-target min goal is
// trivially met at 100%.
func EvaluateGoal(goalType models.GoalType, target, achieved int) GoalResult {
	switch goalType {
	case models.GoalTypeMax:
		if target == 0 {
			if achieved == 0 {
				return GoalResult{Met: true, Percentage: 100}
			}
			return GoalResult{Met: false, Percentage: 0}
		}
		pct := float64(target-achieved) / float64(target) * 100
		return GoalResult{Met: achieved <= target, Percentage: clampPercent(pct)}
	default: // min
		if target == 0 {
			return GoalResult{Met: true, Percentage: 100}
		}
		pct := float64(achieved) / float64(target) * 100
		return GoalResult{Met: achieved >= target, Percentage: clampPercent(pct)}
	}
}

func clampPercent(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
