package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rubayet2027/KrishiLink-Client/internal/models"
)

// --- Mocks ---

// MockCropsAPI
type MockCropsAPI struct {
	mock.Mock
}

func (m *MockCropsAPI) List(ctx context.Context, filter models.CropFilter) ([]models.Crop, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Crop), args.Error(1)
}

func (m *MockCropsAPI) Get(ctx context.Context, id string) (*models.Crop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crop), args.Error(1)
}

func (m *MockCropsAPI) Create(ctx context.Context, crop models.NewCrop) (*models.Crop, error) {
	args := m.Called(ctx, crop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crop), args.Error(1)
}

func (m *MockCropsAPI) Update(ctx context.Context, id string, crop models.NewCrop) (*models.Crop, error) {
	args := m.Called(ctx, id, crop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crop), args.Error(1)
}

func (m *MockCropsAPI) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCropsAPI) MyPosts(ctx context.Context) ([]models.Crop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Crop), args.Error(1)
}

func (m *MockCropsAPI) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockInterestsAPI
type MockInterestsAPI struct {
	mock.Mock
}

func (m *MockInterestsAPI) Submit(ctx context.Context, cropID string, interest models.NewInterest) (*models.Interest, error) {
	args := m.Called(ctx, cropID, interest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

func (m *MockInterestsAPI) ListForCrop(ctx context.Context, cropID string) ([]models.Interest, error) {
	args := m.Called(ctx, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Interest), args.Error(1)
}

func (m *MockInterestsAPI) MyInterests(ctx context.Context) ([]models.Interest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Interest), args.Error(1)
}

func (m *MockInterestsAPI) CheckSubmitted(ctx context.Context, cropID, email string) (bool, error) {
	args := m.Called(ctx, cropID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockInterestsAPI) UpdateStatus(ctx context.Context, cropID, interestID string, decision models.Decision) (*models.Interest, error) {
	args := m.Called(ctx, cropID, interestID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

// MockUsersAPI
type MockUsersAPI struct {
	mock.Mock
}

func (m *MockUsersAPI) Save(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUsersAPI) Get(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUsersAPI) Update(ctx context.Context, email string, user models.User) (*models.User, error) {
	args := m.Called(ctx, email, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockStore
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockStore) DeletePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}
