package handlers_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/rubayet2027/KrishiLink-Client/internal/api/middleware"
	"github.com/rubayet2027/KrishiLink-Client/internal/auth"
	"github.com/rubayet2027/KrishiLink-Client/internal/models"
	"golang.org/x/oauth2"
)

// --- Mocks ---

// MockCropService
type MockCropService struct {
	mock.Mock
}

func (m *MockCropService) Browse(ctx context.Context, filter models.CropFilter) ([]models.Crop, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Crop), args.Error(1)
}

func (m *MockCropService) GetCrop(ctx context.Context, id string) (*models.Crop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crop), args.Error(1)
}

func (m *MockCropService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCropService) CreateCrop(ctx context.Context, crop models.NewCrop) (*models.Crop, error) {
	args := m.Called(ctx, crop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crop), args.Error(1)
}

func (m *MockCropService) UpdateCrop(ctx context.Context, id string, crop models.NewCrop) (*models.Crop, error) {
	args := m.Called(ctx, id, crop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crop), args.Error(1)
}

func (m *MockCropService) DeleteCrop(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCropService) MyPosts(ctx context.Context) ([]models.Crop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Crop), args.Error(1)
}

// MockInterestService
type MockInterestService struct {
	mock.Mock
}

func (m *MockInterestService) ActionFor(ctx context.Context, crop *models.Crop, principalEmail string) (models.InterestAction, error) {
	args := m.Called(ctx, crop, principalEmail)
	return args.Get(0).(models.InterestAction), args.Error(1)
}

func (m *MockInterestService) ExpressInterest(ctx context.Context, crop *models.Crop, interest models.NewInterest) (*models.Interest, error) {
	args := m.Called(ctx, crop, interest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

func (m *MockInterestService) ListForCrop(ctx context.Context, crop *models.Crop, requesterEmail string) ([]models.Interest, error) {
	args := m.Called(ctx, crop, requesterEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Interest), args.Error(1)
}

func (m *MockInterestService) MyInterests(ctx context.Context) ([]models.Interest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Interest), args.Error(1)
}

func (m *MockInterestService) Decide(ctx context.Context, cropID, interestID string, decision models.Decision, deciderEmail string) (*models.Interest, error) {
	args := m.Called(ctx, cropID, interestID, decision, deciderEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) SyncProfile(ctx context.Context, principal *auth.Principal) (*models.User, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, email string, user models.User) (*models.User, error) {
	args := m.Called(ctx, email, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockIdentityClient
type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) SignUp(ctx context.Context, email, password, name string) (*oauth2.Token, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockIdentityClient) PasswordLogin(ctx context.Context, email, password string) (*oauth2.Token, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockIdentityClient) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

// MockSessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, s *auth.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*auth.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// withSession simulates the session middleware having resolved a session.
func withSession(sess *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), sess))
		c.Set(middleware.ContextKeySession, sess)
		c.Set(middleware.ContextKeyEmail, sess.Email)
		c.Next()
	}
}
