// Package activity governs the planned-activity lifecycle and the filtered,
// grouped and counted views built over activity collections.
package activity

import (
	"errors"
	"fmt"
	"time"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

// ErrInvalidTransition is returned for any transition attempted out of a
// terminal state. The activity is left unchanged.
var ErrInvalidTransition = errors.New("invalid activity transition")

// ErrWorkflowExists is returned when a transfer workflow is spawned a second
// time; the first link is never overwritten.
var ErrWorkflowExists = errors.New("transfer workflow already attached")

// CanMarkCompleted reports whether the activity may still be completed.
func CanMarkCompleted(a models.PlannedActivity) bool {
	return !a.EffectiveStatus().Terminal()
}

// CanSpawnWorkflow reports whether a transfer workflow may be spawned: only
// TRANSFER activities without an existing link, and only before the activity
// reaches a terminal state.
func CanSpawnWorkflow(a models.PlannedActivity) bool {
	return a.ActivityType == models.ActivityTransfer &&
		a.TransferWorkflowID == nil &&
		!a.EffectiveStatus().Terminal()
}

// Start moves a pending activity into IN_PROGRESS.
func Start(a models.PlannedActivity, now time.Time) (models.PlannedActivity, error) {
	if a.EffectiveStatus() != models.StatusPending {
		return a, fmt.Errorf("%w: cannot start from %s", ErrInvalidTransition, a.EffectiveStatus())
	}
	a.Status = models.StatusInProgress
	a.UpdatedAt = now.UTC()
	return a, nil
}

// MarkCompleted moves the activity into COMPLETED and stamps the completion
// fields. They are set here exactly once; terminal activities are rejected.
func MarkCompleted(a models.PlannedActivity, now time.Time, by string) (models.PlannedActivity, error) {
	if !CanMarkCompleted(a) {
		return a, fmt.Errorf("%w: cannot complete from %s", ErrInvalidTransition, a.EffectiveStatus())
	}

	completedAt := now.UTC()
	a.Status = models.StatusCompleted
	a.CompletedAt = &completedAt
	a.CompletedBy = by
	a.UpdatedAt = completedAt
	return a, nil
}

// Cancel moves a non-terminal activity into CANCELLED.
func Cancel(a models.PlannedActivity, now time.Time) (models.PlannedActivity, error) {
	if a.EffectiveStatus().Terminal() {
		return a, fmt.Errorf("%w: cannot cancel from %s", ErrInvalidTransition, a.EffectiveStatus())
	}
	a.Status = models.StatusCancelled
	a.UpdatedAt = now.UTC()
	return a, nil
}

// AttachWorkflow links a spawned transfer workflow to the activity. A second
// attach fails rather than silently replacing the first link.
func AttachWorkflow(a models.PlannedActivity, ref models.WorkflowRef, now time.Time) (models.PlannedActivity, error) {
	if a.TransferWorkflowID != nil {
		return a, ErrWorkflowExists
	}
	if !CanSpawnWorkflow(a) {
		return a, fmt.Errorf("%w: workflow spawn requires an open TRANSFER activity", ErrInvalidTransition)
	}

	workflowID := ref.ID
	a.TransferWorkflowID = &workflowID
	a.UpdatedAt = now.UTC()
	return a, nil
}
