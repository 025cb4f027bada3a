package entities

import "time"

// FeedbackAction is a user reaction recorded against a product.
type FeedbackAction string

const (
	ActionLike    FeedbackAction = "like"
	ActionDislike FeedbackAction = "dislike"

	// ActionClickLink is recorded when a user follows a product's external
	// link. The learning engine currently treats it as a positive signal.
	ActionClickLink FeedbackAction = "click_link"
)

// Positive reports whether the action counts as a positive signal.
func (a FeedbackAction) Positive() bool {
	return a == ActionLike || a == ActionClickLink
}

// Valid reports whether the action is one the ledger accepts.
func (a FeedbackAction) Valid() bool {
	switch a {
	case ActionLike, ActionDislike, ActionClickLink:
		return true
	}
	return false
}

// FeedbackEvent is one immutable entry of the append-only feedback ledger.
type FeedbackEvent struct {
	ID         string         `json:"id" db:"id"`
	ProductURL string         `json:"product_url" db:"product_url"`
	Profile    string         `json:"user_profile" db:"user_profile"`
	Action     FeedbackAction `json:"action" db:"action"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}
