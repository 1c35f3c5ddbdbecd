package campaign

import (
	"fmt"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

var transitions = map[models.CampaignStatus][]models.CampaignStatus{
	models.CampaignDraft:  {models.CampaignActive},
	models.CampaignActive: {models.CampaignPaused, models.CampaignEnded},
	models.CampaignPaused: {models.CampaignActive, models.CampaignEnded},
	// ENDED is terminal.
}

// TransitionError reports a lifecycle move that is not allowed. It
// matches models.ErrConflict.
type TransitionError struct {
	From, To models.CampaignStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("campaign cannot move from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return models.ErrConflict }

// Transition checks a status change.
func Transition(from, to models.CampaignStatus) error {
	if !to.Valid() {
		return models.NewValidationError("status", "unknown campaign status %q", to)
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}

// CanTransition is Transition as a predicate.
func CanTransition(from, to models.CampaignStatus) bool {
	return Transition(from, to) == nil
}
