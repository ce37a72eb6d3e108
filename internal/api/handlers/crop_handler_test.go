package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rubayet2027/KrishiLink-Client/internal/api/handlers"
	"github.com/rubayet2027/KrishiLink-Client/internal/apiclient"
	"github.com/rubayet2027/KrishiLink-Client/internal/auth"
	"github.com/rubayet2027/KrishiLink-Client/internal/models"
)

func cropFixture() *models.Crop {
	return &models.Crop{
		ID:       "c1",
		Name:     "Tomato",
		Category: "vegetables",
		Owner:    models.CropOwner{Name: "Karim", Email: "farmer@example.com"},
	}
}

func TestCropHandler_Browse_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockCropSvc := new(MockCropService)
	mockInterestSvc := new(MockInterestService)
	handler := handlers.NewCropHandler(mockCropSvc, mockInterestSvc)

	r := gin.New()
	r.GET("/v1/crops", handler.Browse)

	mockCropSvc.On("Browse", mock.Anything, models.CropFilter{Search: "tomato", Type: "vegetables"}).
		Return([]models.Crop{*cropFixture()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/crops?search=tomato&type=vegetables", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var respBody struct {
		Data []models.Crop `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Len(t, respBody.Data, 1)
	assert.Equal(t, "Tomato", respBody.Data[0].Name)
	mockCropSvc.AssertExpectations(t)
}

func TestCropHandler_Get_OwnerSeesManageAffordance(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockCropSvc := new(MockCropService)
	mockInterestSvc := new(MockInterestService)
	handler := handlers.NewCropHandler(mockCropSvc, mockInterestSvc)

	r := gin.New()
	r.Use(withSession(&auth.Session{ID: "s1", Email: "farmer@example.com"}))
	r.GET("/v1/crops/:id", handler.Get)

	crop := cropFixture()
	mockCropSvc.On("GetCrop", mock.Anything, "c1").Return(crop, nil)
	mockInterestSvc.On("ActionFor", mock.Anything, crop, "farmer@example.com").
		Return(models.ActionManage, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/crops/c1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var respBody map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Equal(t, "manage", respBody["interestAction"])
}

func TestCropHandler_Get_AnonymousGetsNoAffordance(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockCropSvc := new(MockCropService)
	mockInterestSvc := new(MockInterestService)
	handler := handlers.NewCropHandler(mockCropSvc, mockInterestSvc)

	r := gin.New()
	r.GET("/v1/crops/:id", handler.Get)

	crop := cropFixture()
	mockCropSvc.On("GetCrop", mock.Anything, "c1").Return(crop, nil)
	mockInterestSvc.On("ActionFor", mock.Anything, crop, "").
		Return(models.ActionNone, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/crops/c1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var respBody map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Equal(t, "none", respBody["interestAction"])
}

func TestCropHandler_Get_NotFoundPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockCropSvc := new(MockCropService)
	mockInterestSvc := new(MockInterestService)
	handler := handlers.NewCropHandler(mockCropSvc, mockInterestSvc)

	r := gin.New()
	r.GET("/v1/crops/:id", handler.Get)

	mockCropSvc.On("GetCrop", mock.Anything, "nope").
		Return(nil, &apiclient.HTTPError{Status: http.StatusNotFound, Body: []byte(`{"message":"Crop not found"}`)})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/crops/nope", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var respBody map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Contains(t, respBody["error"], "Crop not found")
}

func TestCropHandler_Create_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockCropSvc := new(MockCropService)
	mockInterestSvc := new(MockInterestService)
	handler := handlers.NewCropHandler(mockCropSvc, mockInterestSvc)

	r := gin.New()
	r.Use(withSession(&auth.Session{ID: "s1", Email: "farmer@example.com"}))
	r.POST("/v1/crops", handler.Create)

	payload := models.NewCrop{
		Name:         "Tomato",
		Category:     "vegetables",
		Quantity:     50,
		Unit:         "kg",
		PricePerUnit: 40,
		Location:     "Dhaka",
		HarvestDate:  "2026-03-01",
	}
	mockCropSvc.On("CreateCrop", mock.Anything, payload).Return(cropFixture(), nil)

	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/crops", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockCropSvc.AssertExpectations(t)
}

func TestCropHandler_Create_AuthExpiredSignals401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockCropSvc := new(MockCropService)
	mockInterestSvc := new(MockInterestService)
	handler := handlers.NewCropHandler(mockCropSvc, mockInterestSvc)

	r := gin.New()
	r.Use(withSession(&auth.Session{ID: "s1", Email: "farmer@example.com"}))
	r.POST("/v1/crops", handler.Create)

	mockCropSvc.On("CreateCrop", mock.Anything, mock.Anything).Return(nil, apiclient.ErrAuthExpired)

	body, _ := json.Marshal(models.NewCrop{Name: "Tomato"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/crops", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var respBody map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Equal(t, true, respBody["authExpired"])
}

func TestCropHandler_Browse_APIUnreachableIs502(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockCropSvc := new(MockCropService)
	mockInterestSvc := new(MockInterestService)
	handler := handlers.NewCropHandler(mockCropSvc, mockInterestSvc)

	r := gin.New()
	r.GET("/v1/crops", handler.Browse)

	mockCropSvc.On("Browse", mock.Anything, mock.Anything).
		Return(nil, &apiclient.NetworkError{URL: "http://api/crops", Err: assert.AnError})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/crops", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
