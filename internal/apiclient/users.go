package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rubayet2027/KrishiLink-Client/internal/models"
)

// IUsersAPI defines the profile operations of the marketplace API.
type IUsersAPI interface {
	Save(ctx context.Context, user models.User) (*models.User, error)
	Get(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, email string, user models.User) (*models.User, error)
}

// UsersClient shapes requests for the /users resource family, which keeps
// the marketplace profile in sync with the identity provider record.
type UsersClient struct {
	api *Client
}

// NewUsersClient creates a users resource client.
func NewUsersClient(api *Client) IUsersAPI {
	return &UsersClient{api: api}
}

// Save creates or updates the caller's profile. POST /users
func (c *UsersClient) Save(ctx context.Context, user models.User) (*models.User, error) {
	saved := &models.User{}
	if err := c.api.do(ctx, call{method: http.MethodPost, path: "/users", body: user}, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// Get fetches a profile by email. GET /users/:email
func (c *UsersClient) Get(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	if err := c.api.do(ctx, call{method: http.MethodGet, path: "/users/" + url.PathEscape(email)}, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update modifies a profile. PUT /users/:email
func (c *UsersClient) Update(ctx context.Context, email string, user models.User) (*models.User, error) {
	updated := &models.User{}
	if err := c.api.do(ctx, call{method: http.MethodPut, path: "/users/" + url.PathEscape(email), body: user}, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
