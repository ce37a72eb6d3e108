package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rubayet2027/KrishiLink-Client/internal/models"
)

// IInterestsAPI defines the interest operations of the marketplace API.
type IInterestsAPI interface {
	Submit(ctx context.Context, cropID string, interest models.NewInterest) (*models.Interest, error)
	ListForCrop(ctx context.Context, cropID string) ([]models.Interest, error)
	MyInterests(ctx context.Context) ([]models.Interest, error)
	CheckSubmitted(ctx context.Context, cropID, email string) (bool, error)
	UpdateStatus(ctx context.Context, cropID, interestID string, decision models.Decision) (*models.Interest, error)
}

// InterestsClient shapes requests for the /interests resource family.
type InterestsClient struct {
	api *Client
}

// NewInterestsClient creates an interests resource client.
func NewInterestsClient(api *Client) IInterestsAPI {
	return &InterestsClient{api: api}
}

// Submit expresses interest in a listing. POST /interests/:cropId
func (c *InterestsClient) Submit(ctx context.Context, cropID string, interest models.NewInterest) (*models.Interest, error) {
	created := &models.Interest{}
	if err := c.api.do(ctx, call{method: http.MethodPost, path: "/interests/" + url.PathEscape(cropID), body: interest}, created); err != nil {
		return nil, err
	}
	return created, nil
}

// ListForCrop fetches interests received on a listing; owner-only,
// enforced server-side. GET /interests/:cropId
func (c *InterestsClient) ListForCrop(ctx context.Context, cropID string) ([]models.Interest, error) {
	var interests []models.Interest
	if err := c.api.do(ctx, call{method: http.MethodGet, path: "/interests/" + url.PathEscape(cropID)}, &interests); err != nil {
		return nil, err
	}
	return interests, nil
}

// MyInterests fetches the interests the caller submitted. GET /interests/my-interests
func (c *InterestsClient) MyInterests(ctx context.Context) ([]models.Interest, error) {
	var interests []models.Interest
	if err := c.api.do(ctx, call{method: http.MethodGet, path: "/interests/my-interests"}, &interests); err != nil {
		return nil, err
	}
	return interests, nil
}

// CheckSubmitted reports whether an interest already exists for the
// (crop, buyer email) pair. GET /interests/check/:cropId/:email
func (c *InterestsClient) CheckSubmitted(ctx context.Context, cropID, email string) (bool, error) {
	var result struct {
		HasSubmitted bool `json:"hasSubmitted"`
	}
	path := "/interests/check/" + url.PathEscape(cropID) + "/" + url.PathEscape(email)
	if err := c.api.do(ctx, call{method: http.MethodGet, path: path}, &result); err != nil {
		return false, err
	}
	return result.HasSubmitted, nil
}

// UpdateStatus transitions an interest's status; owner-only, enforced
// server-side. PATCH /interests/:cropId/:interestId/:status
func (c *InterestsClient) UpdateStatus(ctx context.Context, cropID, interestID string, decision models.Decision) (*models.Interest, error) {
	updated := &models.Interest{}
	path := "/interests/" + url.PathEscape(cropID) + "/" + url.PathEscape(interestID) + "/" + url.PathEscape(string(decision))
	if err := c.api.do(ctx, call{method: http.MethodPatch, path: path}, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
