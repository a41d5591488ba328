package scheduler

import (
	"fmt"

	"github.com/tracklawn/scheduler/internal/models"
)

// transitions is the instance lifecycle table. scheduled→created happens
// only through conversion; skip and re-activate are the user-driven pair.
// created is terminal here: the Job's own lifecycle belongs to the job
// service. cancelled is reserved for archival cascades and currently has
// no outgoing transitions.
var transitions = map[models.InstanceStatus]map[models.InstanceStatus]bool{
	models.StatusScheduled: {
		models.StatusCreated: true,
		models.StatusSkipped: true,
	},
	models.StatusSkipped: {
		models.StatusScheduled: true,
	},
}

// CanTransition reports whether an instance may move from one status to
// another.
func CanTransition(from, to models.InstanceStatus) bool {
	return transitions[from][to]
}

// checkTransition returns models.ErrInvalidTransition when the move is
// not permitted.
func checkTransition(from, to models.InstanceStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, from, to)
	}
	return nil
}
