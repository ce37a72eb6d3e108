package services

import (
	"context"
	"fmt"

	"github.com/rubayet2027/KrishiLink-Client/internal/apiclient"
	"github.com/rubayet2027/KrishiLink-Client/internal/models"
)

// IInterestService defines the interest lifecycle operations with the
// local guards applied before anything reaches the marketplace API.
type IInterestService interface {
	ActionFor(ctx context.Context, crop *models.Crop, principalEmail string) (models.InterestAction, error)
	ExpressInterest(ctx context.Context, crop *models.Crop, interest models.NewInterest) (*models.Interest, error)
	ListForCrop(ctx context.Context, crop *models.Crop, requesterEmail string) ([]models.Interest, error)
	MyInterests(ctx context.Context) ([]models.Interest, error)
	Decide(ctx context.Context, cropID, interestID string, decision models.Decision, deciderEmail string) (*models.Interest, error)
}

// interestService implements IInterestService.
type interestService struct {
	crops     apiclient.ICropsAPI
	interests apiclient.IInterestsAPI
}

// NewInterestService creates a new InterestService.
func NewInterestService(crops apiclient.ICropsAPI, interests apiclient.IInterestsAPI) IInterestService {
	return &interestService{crops: crops, interests: interests}
}

// ActionFor resolves the single interest affordance a principal gets on a
// listing. The existence check is only consulted for signed-in non-owners.
func (s *interestService) ActionFor(ctx context.Context, crop *models.Crop, principalEmail string) (models.InterestAction, error) {
	if principalEmail == "" || principalEmail == crop.Owner.Email {
		return models.InterestActionFor(principalEmail, crop.Owner.Email, false), nil
	}
	hasSubmitted, err := s.interests.CheckSubmitted(ctx, crop.ID, principalEmail)
	if err != nil {
		return models.ActionNone, fmt.Errorf("failed to check existing interest: %w", err)
	}
	return models.InterestActionFor(principalEmail, crop.Owner.Email, hasSubmitted), nil
}

// ExpressInterest submits a buyer's interest after the local guards pass:
// the buyer must be signed in, must not own the listing, and must not have
// an interest on it already. A duplicate is refused here, before any create
// call; the authoritative uniqueness check stays with the marketplace API.
func (s *interestService) ExpressInterest(ctx context.Context, crop *models.Crop, interest models.NewInterest) (*models.Interest, error) {
	if interest.BuyerEmail == "" {
		return nil, NewValidationError("sign in to express interest")
	}
	if interest.Phone == "" {
		return nil, NewValidationError("a contact phone number is required")
	}
	if interest.BuyerEmail == crop.Owner.Email {
		return nil, NewValidationError("you cannot express interest in your own listing")
	}

	hasSubmitted, err := s.interests.CheckSubmitted(ctx, crop.ID, interest.BuyerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing interest: %w", err)
	}
	if hasSubmitted {
		return nil, NewValidationError("you have already expressed interest in this crop")
	}

	created, err := s.interests.Submit(ctx, crop.ID, interest)
	if err != nil {
		return nil, fmt.Errorf("failed to submit interest: %w", err)
	}
	return created, nil
}

// ListForCrop returns the interests received on a listing. Only the owner
// may review them; the server enforces this too, but the guard here keeps
// the request from being made at all.
func (s *interestService) ListForCrop(ctx context.Context, crop *models.Crop, requesterEmail string) ([]models.Interest, error) {
	if requesterEmail == "" || requesterEmail != crop.Owner.Email {
		return nil, NewValidationError("only the listing owner may review interests")
	}
	interests, err := s.interests.ListForCrop(ctx, crop.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	return interests, nil
}

// MyInterests returns the interests the caller has submitted.
func (s *interestService) MyInterests(ctx context.Context) ([]models.Interest, error) {
	interests, err := s.interests.MyInterests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list my interests: %w", err)
	}
	return interests, nil
}

// Decide applies the owner's accept/reject decision to a pending interest.
// The transition happens at most once: terminal interests are refused
// locally, and the server applies the same rule authoritatively.
func (s *interestService) Decide(ctx context.Context, cropID, interestID string, decision models.Decision, deciderEmail string) (*models.Interest, error) {
	if _, err := decision.Result(); err != nil {
		return nil, NewValidationError("unknown decision %q", string(decision))
	}

	crop, err := s.crops.Get(ctx, cropID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if deciderEmail == "" || deciderEmail != crop.Owner.Email {
		return nil, NewValidationError("only the listing owner may decide interests")
	}

	// There is no single-interest endpoint; the owner-only listing is the
	// source for the current status.
	interests, err := s.interests.ListForCrop(ctx, cropID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interests: %w", err)
	}
	var current *models.Interest
	for i := range interests {
		if interests[i].ID == interestID {
			current = &interests[i]
			break
		}
	}
	if current == nil {
		return nil, NewValidationError("interest %s not found on this listing", interestID)
	}
	if !current.Status.CanDecide() {
		return nil, NewValidationError("interest is already %s", string(current.Status))
	}

	updated, err := s.interests.UpdateStatus(ctx, cropID, interestID, decision)
	if err != nil {
		return nil, fmt.Errorf("failed to update interest status: %w", err)
	}
	return updated, nil
}
