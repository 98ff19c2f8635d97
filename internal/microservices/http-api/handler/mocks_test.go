package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazzangee/internal/microservices/http-api/dto"
	"bazzangee/internal/microservices/http-api/models"
	"bazzangee/internal/microservices/http-api/service"
	"bazzangee/internal/session"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReviewService mocks the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, req dto.CreateReviewRequest, imageURL string, user session.SessionUser) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, req, imageURL, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, req dto.UpdateReviewRequest, imageURL string, user session.SessionUser) (*dto.OrderFoodResponse, error) {
	args := m.Called(ctx, req, imageURL, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OrderFoodResponse), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, orderFoodID int64, user session.SessionUser) (*dto.OrderFoodResponse, string, error) {
	args := m.Called(ctx, orderFoodID, user)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*dto.OrderFoodResponse), args.String(1), args.Error(2)
}

func (m *MockReviewService) GetReviewOne(ctx context.Context, orderFoodID int64) (*dto.OrderFoodResponse, error) {
	args := m.Called(ctx, orderFoodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OrderFoodResponse), args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, orderFoodID int64, user session.SessionUser) (*models.Review, error) {
	args := m.Called(ctx, orderFoodID, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) List(ctx context.Context, page service.PageRequest) (*dto.PaginatedReviewResponse, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedReviewResponse), args.Error(1)
}

func (m *MockReviewService) ListByCategory(ctx context.Context, page service.PageRequest, categoryID int64) (*dto.PaginatedReviewResponse, error) {
	args := m.Called(ctx, page, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedReviewResponse), args.Error(1)
}

func (m *MockReviewService) ListByUser(ctx context.Context, page service.PageRequest, userID string) (*dto.PaginatedReviewResponse, error) {
	args := m.Called(ctx, page, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedReviewResponse), args.Error(1)
}

func (m *MockReviewService) ListByUserAndCategory(ctx context.Context, page service.PageRequest, userID string, categoryID int64) (*dto.PaginatedReviewResponse, error) {
	args := m.Called(ctx, page, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedReviewResponse), args.Error(1)
}

func (m *MockReviewService) ToggleGood(ctx context.Context, reviewID int64, user session.SessionUser) (*dto.GoodResponse, error) {
	args := m.Called(ctx, reviewID, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GoodResponse), args.Error(1)
}

// MockUploader mocks storage.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, file *multipart.FileHeader, dirName, savedURL string, orderFoodID *int64) (string, error) {
	args := m.Called(ctx, file, dirName, savedURL, orderFoodID)
	return args.String(0), args.Error(1)
}

func (m *MockUploader) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	args := m.Called(ctx, username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockSessionStore mocks session.Store
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, user session.SessionUser) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*session.SessionUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.SessionUser), args.Error(1)
}

func (m *MockSessionStore) Touch(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// multipartRequest builds a multipart POST; fileSize < 0 means no file part.
func multipartRequest(t *testing.T, target string, fields map[string]string, fileField, filename string, fileSize int) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileSize >= 0 {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte{0xAB}, fileSize))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryResponse), args.Error(1)
}
