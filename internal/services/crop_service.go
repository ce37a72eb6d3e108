package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"github.com/rubayet2027/KrishiLink-Client/internal/apiclient"
	"github.com/rubayet2027/KrishiLink-Client/internal/cache"
	"github.com/rubayet2027/KrishiLink-Client/internal/config"
	"github.com/rubayet2027/KrishiLink-Client/internal/models"
)

// ICropService defines the crop listing operations exposed to handlers.
type ICropService interface {
	Browse(ctx context.Context, filter models.CropFilter) ([]models.Crop, error)
	GetCrop(ctx context.Context, id string) (*models.Crop, error)
	Categories(ctx context.Context) ([]string, error)
	CreateCrop(ctx context.Context, crop models.NewCrop) (*models.Crop, error)
	UpdateCrop(ctx context.Context, id string, crop models.NewCrop) (*models.Crop, error)
	DeleteCrop(ctx context.Context, id string) error
	MyPosts(ctx context.Context) ([]models.Crop, error)
}

const (
	cropListKeyPrefix = "crops:list:"
	categoriesKey     = "crops:categories"
)

// cropService implements ICropService. Browse and category reads are
// cached briefly in Redis; the cache is best-effort and never fails a
// request on its own.
type cropService struct {
	crops apiclient.ICropsAPI
	store cache.IStore
	cfg   *config.Config
}

// NewCropService creates a new CropService.
func NewCropService(crops apiclient.ICropsAPI, store cache.IStore, cfg *config.Config) ICropService {
	return &cropService{crops: crops, store: store, cfg: cfg}
}

// browseKey builds the cache key for a filter. Fields are escaped so the
// separator cannot occur inside a field and distinct filters never share
// a key.
func browseKey(filter models.CropFilter) string {
	return fmt.Sprintf("%s%s|%s|%s", cropListKeyPrefix,
		url.QueryEscape(filter.Search), url.QueryEscape(filter.Type), url.QueryEscape(filter.Sort))
}

// Browse lists crops with the given filter, serving repeat queries from
// cache within the configured TTL.
func (s *cropService) Browse(ctx context.Context, filter models.CropFilter) ([]models.Crop, error) {
	key := browseKey(filter)
	if data, err := s.store.Get(ctx, key); err == nil {
		var crops []models.Crop
		if err := json.Unmarshal(data, &crops); err == nil {
			return crops, nil
		}
		// Corrupt entry; fall through to the API and overwrite it.
	}

	crops, err := s.crops.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(crops); err == nil {
		if err := s.store.Set(ctx, key, data, s.cfg.GetCacheTTL); err != nil {
			log.Printf("crop browse cache write failed: %v", err)
		}
	}
	return crops, nil
}

// GetCrop fetches one listing. Never cached: the detail view drives the
// interest affordances and must reflect the current owner and status.
func (s *cropService) GetCrop(ctx context.Context, id string) (*models.Crop, error) {
	return s.crops.Get(ctx, id)
}

// Categories returns the category enumeration, cached like Browse.
func (s *cropService) Categories(ctx context.Context) ([]string, error) {
	if data, err := s.store.Get(ctx, categoriesKey); err == nil {
		var categories []string
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.crops.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(categories); err == nil {
		if err := s.store.Set(ctx, categoriesKey, data, s.cfg.GetCacheTTL); err != nil {
			log.Printf("categories cache write failed: %v", err)
		}
	}
	return categories, nil
}

// CreateCrop creates a listing and invalidates the browse cache.
func (s *cropService) CreateCrop(ctx context.Context, crop models.NewCrop) (*models.Crop, error) {
	created, err := s.crops.Create(ctx, crop)
	if err != nil {
		return nil, err
	}
	s.invalidateBrowse(ctx)
	return created, nil
}

// UpdateCrop updates a listing and invalidates the browse cache.
func (s *cropService) UpdateCrop(ctx context.Context, id string, crop models.NewCrop) (*models.Crop, error) {
	updated, err := s.crops.Update(ctx, id, crop)
	if err != nil {
		return nil, err
	}
	s.invalidateBrowse(ctx)
	return updated, nil
}

// DeleteCrop deletes a listing and invalidates the browse cache.
func (s *cropService) DeleteCrop(ctx context.Context, id string) error {
	if err := s.crops.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateBrowse(ctx)
	return nil
}

// MyPosts returns the caller's own listings, always fresh.
func (s *cropService) MyPosts(ctx context.Context) ([]models.Crop, error) {
	return s.crops.MyPosts(ctx)
}

func (s *cropService) invalidateBrowse(ctx context.Context) {
	if err := s.store.DeletePrefix(ctx, cropListKeyPrefix); err != nil {
		log.Printf("crop browse cache invalidation failed: %v", err)
	}
}
