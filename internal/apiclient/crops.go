package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rubayet2027/KrishiLink-Client/internal/models"
)

// ICropsAPI defines the crop listing operations of the marketplace API.
type ICropsAPI interface {
	List(ctx context.Context, filter models.CropFilter) ([]models.Crop, error)
	Get(ctx context.Context, id string) (*models.Crop, error)
	Create(ctx context.Context, crop models.NewCrop) (*models.Crop, error)
	Update(ctx context.Context, id string, crop models.NewCrop) (*models.Crop, error)
	Delete(ctx context.Context, id string) error
	MyPosts(ctx context.Context) ([]models.Crop, error)
	Categories(ctx context.Context) ([]string, error)
}

// CropsClient shapes requests for the /crops resource family. It carries
// no business logic: one operation, one verb + path + query/body.
type CropsClient struct {
	api *Client
}

// NewCropsClient creates a crops resource client.
func NewCropsClient(api *Client) ICropsAPI {
	return &CropsClient{api: api}
}

// List fetches listings, filterable by search/type/sort. GET /crops
func (c *CropsClient) List(ctx context.Context, filter models.CropFilter) ([]models.Crop, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Type != "" {
		q.Set("type", filter.Type)
	}
	if filter.Sort != "" {
		q.Set("sort", filter.Sort)
	}

	var crops []models.Crop
	if err := c.api.do(ctx, call{method: http.MethodGet, path: "/crops", query: q}, &crops); err != nil {
		return nil, err
	}
	return crops, nil
}

// Get fetches one listing. GET /crops/:id
func (c *CropsClient) Get(ctx context.Context, id string) (*models.Crop, error) {
	crop := &models.Crop{}
	if err := c.api.do(ctx, call{method: http.MethodGet, path: "/crops/" + url.PathEscape(id)}, crop); err != nil {
		return nil, err
	}
	return crop, nil
}

// Create posts a new listing. POST /crops
func (c *CropsClient) Create(ctx context.Context, crop models.NewCrop) (*models.Crop, error) {
	created := &models.Crop{}
	if err := c.api.do(ctx, call{method: http.MethodPost, path: "/crops", body: crop}, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces a listing; owner-only, enforced server-side. PUT /crops/:id
func (c *CropsClient) Update(ctx context.Context, id string, crop models.NewCrop) (*models.Crop, error) {
	updated := &models.Crop{}
	if err := c.api.do(ctx, call{method: http.MethodPut, path: "/crops/" + url.PathEscape(id), body: crop}, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a listing; owner-only, enforced server-side. DELETE /crops/:id
func (c *CropsClient) Delete(ctx context.Context, id string) error {
	return c.api.do(ctx, call{method: http.MethodDelete, path: "/crops/" + url.PathEscape(id)}, nil)
}

// MyPosts fetches the caller's own listings. GET /crops/my-posts
func (c *CropsClient) MyPosts(ctx context.Context) ([]models.Crop, error) {
	var crops []models.Crop
	if err := c.api.do(ctx, call{method: http.MethodGet, path: "/crops/my-posts"}, &crops); err != nil {
		return nil, err
	}
	return crops, nil
}

// Categories fetches the category enumeration. GET /crops/categories
func (c *CropsClient) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.api.do(ctx, call{method: http.MethodGet, path: "/crops/categories"}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
