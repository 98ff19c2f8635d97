package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bazzangee/internal/metrics"
	"bazzangee/internal/microservices/http-api/dto"
	"bazzangee/internal/microservices/http-api/models"
	"bazzangee/internal/microservices/http-api/repository"
	"bazzangee/internal/session"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound    = errors.New("review not found")
	ErrOrderFoodNotFound = errors.New("order food not found")
	ErrNotReviewOwner    = errors.New("review belongs to another user")
	ErrAlreadyReviewed   = errors.New("order food already has a review")
)

type ReviewService interface {
	Create(ctx context.Context, req dto.CreateReviewRequest, imageURL string, user session.SessionUser) (*dto.ReviewResponse, error)
	Update(ctx context.Context, req dto.UpdateReviewRequest, imageURL string, user session.SessionUser) (*dto.OrderFoodResponse, error)
	// Delete returns the image URL the removed review pointed at, empty when none.
	Delete(ctx context.Context, orderFoodID int64, user session.SessionUser) (*dto.OrderFoodResponse, string, error)
	GetReviewOne(ctx context.Context, orderFoodID int64) (*dto.OrderFoodResponse, error)
	// GetReview returns the user's stored review of an order food. Update
	// reads it first to keep or replace the current image.
	GetReview(ctx context.Context, orderFoodID int64, user session.SessionUser) (*models.Review, error)
	List(ctx context.Context, page PageRequest) (*dto.PaginatedReviewResponse, error)
	ListByCategory(ctx context.Context, page PageRequest, categoryID int64) (*dto.PaginatedReviewResponse, error)
	ListByUser(ctx context.Context, page PageRequest, userID string) (*dto.PaginatedReviewResponse, error)
	ListByUserAndCategory(ctx context.Context, page PageRequest, userID string, categoryID int64) (*dto.PaginatedReviewResponse, error)
	ToggleGood(ctx context.Context, reviewID int64, user session.SessionUser) (*dto.GoodResponse, error)
}

type reviewService struct {
	reviewRepo    repository.ReviewRepository
	orderFoodRepo repository.OrderFoodRepository
	logger        *slog.Logger
	now           func() time.Time
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	orderFoodRepo repository.OrderFoodRepository,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:    reviewRepo,
		orderFoodRepo: orderFoodRepo,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *reviewService) Create(ctx context.Context, req dto.CreateReviewRequest, imageURL string, user session.SessionUser) (resp *dto.ReviewResponse, err error) {
	defer func() { metrics.RecordReviewOperation("create", err == nil) }()

	orderFood, err := s.findOrderFood(ctx, req.OrderFoodID)
	if err != nil {
		return nil, err
	}
	if orderFood.UserID != user.ID {
		return nil, ErrNotReviewOwner
	}
	if orderFood.Review != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		UserID:      user.ID,
		OrderFoodID: orderFood.ID,
		Contents:    req.Contents,
		ImageURL:    optionalURL(imageURL),
		StarPoint:   req.StarPoint,
		WrittenTime: s.now(),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// a concurrent create won the order_food_id unique constraint
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	review.User = models.User{ID: user.ID, Username: user.Username}
	review.OrderFood = orderFood
	s.logger.Info("review_created", "review_id", review.ID, "order_food_id", orderFood.ID, "user_id", user.ID)
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, req dto.UpdateReviewRequest, imageURL string, user session.SessionUser) (resp *dto.OrderFoodResponse, err error) {
	defer func() { metrics.RecordReviewOperation("update", err == nil) }()

	review, err := s.GetReview(ctx, req.OrderFoodID, user)
	if err != nil {
		return nil, err
	}

	review.Contents = req.Contents
	review.StarPoint = req.StarPoint
	review.ImageURL = optionalURL(imageURL)
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.logger.Info("review_updated", "review_id", review.ID, "order_food_id", req.OrderFoodID, "user_id", user.ID)
	return s.GetReviewOne(ctx, req.OrderFoodID)
}

func (s *reviewService) Delete(ctx context.Context, orderFoodID int64, user session.SessionUser) (resp *dto.OrderFoodResponse, removedImage string, err error) {
	defer func() { metrics.RecordReviewOperation("delete", err == nil) }()

	review, err := s.GetReview(ctx, orderFoodID, user)
	if err != nil {
		return nil, "", err
	}

	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrReviewNotFound
		}
		return nil, "", fmt.Errorf("failed to delete review: %w", err)
	}
	if review.ImageURL != nil {
		removedImage = *review.ImageURL
	}

	s.logger.Info("review_deleted", "review_id", review.ID, "order_food_id", orderFoodID, "user_id", user.ID)
	resp, err = s.GetReviewOne(ctx, orderFoodID)
	if err != nil {
		return nil, "", err
	}
	return resp, removedImage, nil
}

func (s *reviewService) GetReviewOne(ctx context.Context, orderFoodID int64) (*dto.OrderFoodResponse, error) {
	orderFood, err := s.findOrderFood(ctx, orderFoodID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToOrderFoodResponse(orderFood), nil
}

func (s *reviewService) GetReview(ctx context.Context, orderFoodID int64, user session.SessionUser) (*models.Review, error) {
	review, err := s.reviewRepo.FindByOrderFood(ctx, orderFoodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review.UserID != user.ID {
		return nil, ErrNotReviewOwner
	}
	return review, nil
}

func (s *reviewService) List(ctx context.Context, page PageRequest) (*dto.PaginatedReviewResponse, error) {
	return s.list(ctx, page, repository.ReviewQuery{})
}

func (s *reviewService) ListByCategory(ctx context.Context, page PageRequest, categoryID int64) (*dto.PaginatedReviewResponse, error) {
	return s.list(ctx, page, repository.ReviewQuery{CategoryID: categoryID})
}

func (s *reviewService) ListByUser(ctx context.Context, page PageRequest, userID string) (*dto.PaginatedReviewResponse, error) {
	return s.list(ctx, page, repository.ReviewQuery{UserID: userID})
}

func (s *reviewService) ListByUserAndCategory(ctx context.Context, page PageRequest, userID string, categoryID int64) (*dto.PaginatedReviewResponse, error) {
	return s.list(ctx, page, repository.ReviewQuery{UserID: userID, CategoryID: categoryID})
}

func (s *reviewService) list(ctx context.Context, page PageRequest, query repository.ReviewQuery) (*dto.PaginatedReviewResponse, error) {
	query.OrderBy = page.Sort.OrderBy()
	query.Limit = page.Size
	query.Offset = page.Offset()

	reviews, total, err := s.reviewRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	data := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		data = append(data, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPaginatedReviewResponse(data, total, page.Page, page.Size), nil
}

func (s *reviewService) ToggleGood(ctx context.Context, reviewID int64, user session.SessionUser) (resp *dto.GoodResponse, err error) {
	defer func() { metrics.RecordReviewOperation("good", err == nil) }()

	good, count, err := s.reviewRepo.ToggleGood(ctx, reviewID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to toggle good: %w", err)
	}
	return &dto.GoodResponse{ReviewID: reviewID, Good: good, GoodsCount: count}, nil
}

func (s *reviewService) findOrderFood(ctx context.Context, orderFoodID int64) (*models.OrderFood, error) {
	orderFood, err := s.orderFoodRepo.FindByID(ctx, orderFoodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderFoodNotFound
		}
		return nil, fmt.Errorf("failed to load order food: %w", err)
	}
	return orderFood, nil
}

func optionalURL(url string) *string {
	if url == "" {
		return nil
	}
	return &url
}
