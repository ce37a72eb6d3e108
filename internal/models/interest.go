package models

import (
	"fmt"
	"time"
)

// InterestStatus is the lifecycle state of a buyer's interest.
// pending is the initial state; accepted and rejected are terminal.
type InterestStatus string

const (
	InterestPending  InterestStatus = "pending"
	InterestAccepted InterestStatus = "accepted"
	InterestRejected InterestStatus = "rejected"
)

// Terminal reports whether no further transition is possible.
func (s InterestStatus) Terminal() bool {
	return s == InterestAccepted || s == InterestRejected
}

// CanDecide reports whether an accept/reject decision may still be made.
// Only pending interests are decidable; the decision is made at most once.
func (s InterestStatus) CanDecide() bool {
	return s == InterestPending
}

// Decision is the owner's accept/reject action. Its string form is the
// path segment the marketplace API expects in the status PATCH.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Result returns the status a decision transitions a pending interest to.
func (d Decision) Result() (InterestStatus, error) {
	switch d {
	case DecisionAccept:
		return InterestAccepted, nil
	case DecisionReject:
		return InterestRejected, nil
	}
	return "", fmt.Errorf("unknown decision %q", string(d))
}

// Interest represents one buyer's expressed intent to purchase from one
// listing. At most one exists per (crop, buyer email) pair.
type Interest struct {
	ID         string         `json:"id,omitempty"`
	CropID     string         `json:"cropId"`
	CropName   string         `json:"cropName,omitempty"`
	BuyerName  string         `json:"buyerName"`
	BuyerEmail string         `json:"buyerEmail"`
	BuyerPhoto string         `json:"buyerPhoto,omitempty"`
	Phone      string         `json:"phone"`
	Message    string         `json:"message,omitempty"`
	Status     InterestStatus `json:"status"`
	CreatedAt  time.Time      `json:"createdAt,omitempty"`
}

// NewInterest is the submit payload: buyer contact plus an optional message.
// Status is not part of it; the API always creates interests as pending.
type NewInterest struct {
	BuyerName  string `json:"buyerName"`
	BuyerEmail string `json:"buyerEmail"`
	BuyerPhoto string `json:"buyerPhoto,omitempty"`
	Phone      string `json:"phone"`
	Message    string `json:"message,omitempty"`
}

// InterestAction is the single interest affordance a principal gets on a
// listing. Exactly one of Submit/Manage is ever offered for a given
// (principal, listing) pair; they are mutually exclusive by construction.
type InterestAction string

const (
	// ActionNone: anonymous visitors get no interest affordance.
	ActionNone InterestAction = "none"
	// ActionSubmit: a signed-in non-owner who has not yet expressed interest.
	ActionSubmit InterestAction = "submit"
	// ActionSubmitted: a non-owner who already has an interest on this crop.
	ActionSubmitted InterestAction = "submitted"
	// ActionManage: the listing owner reviews and decides interests.
	ActionManage InterestAction = "manage"
)

// InterestActionFor resolves which affordance a principal gets on a listing.
// Ownership is decided by email match, same as the server-side check.
func InterestActionFor(principalEmail, ownerEmail string, hasSubmitted bool) InterestAction {
	if principalEmail == "" {
		return ActionNone
	}
	if principalEmail == ownerEmail {
		return ActionManage
	}
	if hasSubmitted {
		return ActionSubmitted
	}
	return ActionSubmit
}
