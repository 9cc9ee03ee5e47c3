package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fstr/pereval/internal/app/controllers"
	"github.com/fstr/pereval/internal/app/models"
	"github.com/fstr/pereval/internal/app/models/dto"
	"github.com/fstr/pereval/internal/app/routes"
	"github.com/fstr/pereval/internal/pkg/apperrors"
)

type MockPerevalService struct {
	mock.Mock
}

func (m *MockPerevalService) Submit(ctx context.Context, req *dto.SubmitPerevalRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPerevalService) GetByID(ctx context.Context, id int64) (*models.Pereval, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pereval), args.Error(1)
}

func (m *MockPerevalService) GetByEmail(ctx context.Context, email string) ([]*models.Pereval, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Pereval), args.Error(1)
}

func (m *MockPerevalService) Update(ctx context.Context, id int64, req *dto.UpdatePerevalRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func newTestRouter(svc *MockPerevalService, pingErr error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewPerevalController(svc),
		controllers.NewHealthController(stubPinger{err: pingErr}),
	)
	return router
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string { return &s }

func samplePereval() *models.Pereval {
	return &models.Pereval{
		ID:      42,
		Title:   "Pkhiya",
		AddTime: time.Date(2023, 9, 22, 13, 18, 13, 0, time.UTC),
		Status:  models.StatusNew,
		User: &models.User{
			Email: "user@example.com",
			Phone: "+79001234567",
			Fam:   "Ivanov",
			Name:  "Ivan",
			Otc:   "Ivanovich",
		},
		Coords: models.Coords{Latitude: 45.3842, Longitude: 7.1525, Height: 1200},
		Level:  models.Level{Winter: strPtr("1A")},
		Images: []models.PerevalImage{
			{ID: 1, Title: "Saddle", Img: []byte{0xde, 0xad}},
		},
	}
}

func TestSubmitData_Success(t *testing.T) {
	svc := new(MockPerevalService)
	svc.On("Submit", mock.Anything, mock.Anything).Return(int64(42), nil)
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodPost, "/pereval/submitData",
		`{"title":"Pkhiya","add_time":"2023-09-22T13:18:13"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Pass added successfully", resp.Message)
	assert.Equal(t, int64(42), resp.ID)
}

func TestSubmitData_InvalidJSON(t *testing.T) {
	svc := new(MockPerevalService)
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodPost, "/pereval/submitData", `{"title":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "Invalid JSON data", resp.Message)
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestSubmitData_ValidationErrorCarriesFieldDetails(t *testing.T) {
	svc := new(MockPerevalService)
	svc.On("Submit", mock.Anything, mock.Anything).Return(int64(0),
		apperrors.NewValidationError("required fields are missing",
			map[string]interface{}{"title": "field is required"}))
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodPost, "/pereval/submitData", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	assert.Equal(t, "required fields are missing", body["message"])

	details, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "field is required", details["title"])
}

func TestGetByID_Success(t *testing.T) {
	svc := new(MockPerevalService)
	svc.On("GetByID", mock.Anything, int64(42)).Return(samplePereval(), nil)
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodGet, "/pereval/submitData/42", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusOK), body["status"])
	assert.Equal(t, "Data retrieved successfully", body["message"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), data["id"])
	assert.Equal(t, "Pkhiya", data["title"])
	assert.Equal(t, "2023-09-22T13:18:13", data["add_time"])
	assert.Equal(t, "new", data["status"])

	images, ok := data["images"].([]interface{})
	require.True(t, ok)
	require.Len(t, images, 1)
	img := images[0].(map[string]interface{})
	assert.Equal(t, "dead", img["data"])
}

func TestGetByID_NotFound(t *testing.T) {
	svc := new(MockPerevalService)
	svc.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrPerevalNotFound)
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodGet, "/pereval/submitData/99", "")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
	assert.Equal(t, "Pass not found", body["message"])
	assert.Nil(t, body["data"])
}

func TestGetByID_NonNumericID(t *testing.T) {
	svc := new(MockPerevalService)
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodGet, "/pereval/submitData/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Pass ID must be a valid number", resp.Message)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSearchByEmail_Found(t *testing.T) {
	svc := new(MockPerevalService)
	svc.On("GetByEmail", mock.Anything, "user@example.com").
		Return([]*models.Pereval{samplePereval()}, nil)
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodGet,
		"/pereval/submitData?user__email=user%40example.com", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Found 1 passes", body["message"])

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestSearchByEmail_EmptyResultStaysSuccessful(t *testing.T) {
	svc := new(MockPerevalService)
	svc.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return([]*models.Pereval{}, nil)
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodGet,
		"/pereval/submitData?user__email=nobody%40example.com", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Found 0 passes", body["message"])

	data, ok := body["data"].([]interface{})
	require.True(t, ok, "data must serialize as an array, not null")
	assert.Empty(t, data)
}

func TestSearchByEmail_MissingParameter(t *testing.T) {
	svc := new(MockPerevalService)
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodGet, "/pereval/submitData", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user__email query parameter is required", resp.Message)
	svc.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestUpdate_Success(t *testing.T) {
	svc := new(MockPerevalService)
	svc.On("Update", mock.Anything, int64(42), mock.Anything).Return(nil)
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodPatch, "/pereval/submitData/42",
		`{"title":"renamed"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.UpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.State)
	assert.Equal(t, "Record updated successfully", resp.Message)
}

func TestUpdate_FailuresAnswerStateZero(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "record not found",
			err:         apperrors.ErrPerevalNotFound,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Pass not found",
		},
		{
			name:        "empty patch",
			err:         apperrors.ErrNothingToUpdate,
			wantCode:    http.StatusBadRequest,
			wantMessage: "No fields to update",
		},
		{
			name:        "status gate",
			err:         apperrors.NewRejectedError("record status is \"accepted\", only new records can be updated"),
			wantCode:    http.StatusBadRequest,
			wantMessage: "Update not allowed: record status is \"accepted\", only new records can be updated",
		},
		{
			name:        "validation failure",
			err:         apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid field values"),
			wantCode:    http.StatusBadRequest,
			wantMessage: "invalid field values",
		},
		{
			name:        "unexpected error",
			err:         errors.New("connection reset"),
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPerevalService)
			svc.On("Update", mock.Anything, int64(42), mock.Anything).Return(tt.err)
			router := newTestRouter(svc, nil)

			w := performRequest(router, http.MethodPatch, "/pereval/submitData/42",
				`{"title":"renamed"}`)

			assert.Equal(t, tt.wantCode, w.Code)

			var resp dto.UpdateResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, 0, resp.State)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestUpdate_InvalidJSON(t *testing.T) {
	svc := new(MockPerevalService)
	router := newTestRouter(svc, nil)

	w := performRequest(router, http.MethodPatch, "/pereval/submitData/42", `not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.UpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.State)
	assert.Equal(t, "Invalid JSON data", resp.Message)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealthCheck(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		router := newTestRouter(new(MockPerevalService), nil)

		w := performRequest(router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Status)
		assert.Equal(t, "connected", resp.Database)
	})

	t.Run("database unreachable", func(t *testing.T) {
		router := newTestRouter(new(MockPerevalService), errors.New("dial tcp: refused"))

		w := performRequest(router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp dto.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Degraded", resp.Status)
		assert.Equal(t, "disconnected", resp.Database)
	})
}
