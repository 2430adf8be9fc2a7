package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codebind/internal/middleware"
	"codebind/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCodeService is a mock implementation of CodeService.
type MockCodeService struct {
	mock.Mock
}

func (m *MockCodeService) Validate(ctx context.Context, req *model.ValidateRequest) *model.ValidateResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(*model.ValidateResponse)
}

func (m *MockCodeService) Bind(ctx context.Context, req *model.BindRequest) (*model.BindResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BindResponse), args.Error(1)
}

func (m *MockCodeService) DeleteBinding(ctx context.Context, req *model.DeleteBindingRequest) (*model.DeleteBindingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeleteBindingResponse), args.Error(1)
}

func strPtr(s string) *string {
	return &s
}

func TestCodeHandler_Validate(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name         string
		body         string
		expectedReq  *model.ValidateRequest
		mockReturn   *model.ValidateResponse
		expectedBody string
	}{
		{
			name:         "Available code",
			body:         `{"code":"ab-12"}`,
			expectedReq:  &model.ValidateRequest{Code: "ab-12"},
			mockReturn:   &model.ValidateResponse{Status: model.StatusCorrect},
			expectedBody: `{"status":"correct"}`,
		},
		{
			name:         "Bound code",
			body:         `{"code":"AB 12"}`,
			expectedReq:  &model.ValidateRequest{Code: "AB 12"},
			mockReturn:   &model.ValidateResponse{Status: model.StatusCorrect, Game: strPtr("Chess")},
			expectedBody: `{"status":"correct","game":"Chess"}`,
		},
		{
			name:         "Numeric code",
			body:         `{"code":1234}`,
			expectedReq:  &model.ValidateRequest{Code: "1234"},
			mockReturn:   &model.ValidateResponse{Status: model.StatusWrong},
			expectedBody: `{"status":"wrong"}`,
		},
		{
			name:         "Non-JSON body",
			body:         `code=AB12`,
			expectedReq:  &model.ValidateRequest{},
			mockReturn:   &model.ValidateResponse{Status: model.StatusWrong},
			expectedBody: `{"status":"wrong"}`,
		},
		{
			name:         "Empty body",
			body:         ``,
			expectedReq:  &model.ValidateRequest{},
			mockReturn:   &model.ValidateResponse{Status: model.StatusWrong},
			expectedBody: `{"status":"wrong"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCodeService)
			mockService.On("Validate", mock.Anything, tt.expectedReq).Return(tt.mockReturn)

			handler := NewCodeHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Validate(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestCodeHandler_Bind(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		body           string
		expectedReq    *model.BindRequest
		mockReturn     *model.BindResponse
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			body:           `{"code":"ab-12","game":"Chess"}`,
			expectedReq:    &model.BindRequest{Code: "ab-12", Game: "Chess"},
			mockReturn:     &model.BindResponse{OK: true, Code: "AB12", Game: "Chess", Locked: true},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ok":true,"code":"AB12","game":"Chess","locked":true}`,
		},
		{
			name:           "Missing game",
			body:           `{"code":"AB12"}`,
			expectedReq:    &model.BindRequest{Code: "AB12"},
			mockError:      model.ErrMissingCodeOrGame,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"missing_code_or_game"}`,
		},
		{
			name:           "Invalid code",
			body:           `{"code":"ZZ99","game":"Chess"}`,
			expectedReq:    &model.BindRequest{Code: "ZZ99", Game: "Chess"},
			mockError:      model.ErrInvalidCode,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"invalid_code"}`,
		},
		{
			name:           "Save failure",
			body:           `{"code":"AB12","game":"Chess"}`,
			expectedReq:    &model.BindRequest{Code: "AB12", Game: "Chess"},
			mockError:      fmt.Errorf("%w: %w", model.ErrSaveFailed, errors.New("read-only file system")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"ok":false,"error":"save_failed"}`,
		},
		{
			name:           "Unexpected error",
			body:           `{"code":"AB12","game":"Chess"}`,
			expectedReq:    &model.BindRequest{Code: "AB12", Game: "Chess"},
			mockError:      errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"ok":false,"error":"internal_error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCodeService)
			if tt.mockError != nil {
				mockService.On("Bind", mock.Anything, tt.expectedReq).Return(nil, tt.mockError)
			} else {
				mockService.On("Bind", mock.Anything, tt.expectedReq).Return(tt.mockReturn, nil)
			}

			handler := NewCodeHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/api/bind", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Bind(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestCodeHandler_DeleteBinding(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		body           string
		mockReturn     *model.DeleteBindingResponse
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			body:           `{"code":"AB12"}`,
			mockReturn:     &model.DeleteBindingResponse{OK: true, Code: "AB12", Message: model.DeleteBindingMessage},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ok":true,"code":"AB12","message":"Binding deleted successfully"}`,
		},
		{
			name:           "Missing code",
			body:           `{}`,
			mockError:      model.ErrMissingCode,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"missing_code"}`,
		},
		{
			name:           "Binding not found",
			body:           `{"code":"ZZ99"}`,
			mockError:      model.ErrBindingNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"ok":false,"error":"binding_not_found"}`,
		},
		{
			name:           "Save failure",
			body:           `{"code":"AB12"}`,
			mockError:      fmt.Errorf("%w: %w", model.ErrSaveFailed, errors.New("disk full")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"ok":false,"error":"save_failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCodeService)
			if tt.mockError != nil {
				mockService.On("DeleteBinding", mock.Anything, mock.Anything).Return(nil, tt.mockError)
			} else {
				mockService.On("DeleteBinding", mock.Anything, mock.Anything).Return(tt.mockReturn, nil)
			}

			handler := NewCodeHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/api/delete-binding", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.DeleteBinding(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestCodeHandler_FailureCarriesCorrelationID(t *testing.T) {
	mockService := new(MockCodeService)
	mockService.On("Bind", mock.Anything, mock.Anything).Return(nil, model.ErrInvalidCode)

	handler := middleware.RequestID(http.HandlerFunc(NewCodeHandler(mockService, zerolog.Nop()).Bind))

	req := httptest.NewRequest(http.MethodPost, "/api/bind", strings.NewReader(`{"code":"ZZ99","game":"Chess"}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	id := w.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"invalid_code","correlationId":"`+id+`"}`, w.Body.String())
}
