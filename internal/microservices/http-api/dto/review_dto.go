package dto

import (
	"mime/multipart"
	"time"

	"bazzangee/internal/microservices/http-api/models"
)

// CreateReviewRequest is the multipart form posted to create a review.
// Contents length is checked separately so the error message stays stable.
type CreateReviewRequest struct {
	OrderFoodID   int64                 `form:"orderFoodId" binding:"required,gt=0"`
	Contents      string                `form:"contents"`
	StarPoint     float64               `form:"starPoint" binding:"gte=0.5,lte=5"`
	SavedImageURL string                `form:"savedImageUrl"`
	Image         *multipart.FileHeader `form:"image"`
}

// UpdateReviewRequest arrives as JSON; a multipart form may also carry a new image.
type UpdateReviewRequest struct {
	OrderFoodID   int64                 `json:"orderFoodId" form:"orderFoodId" binding:"required,gt=0"`
	Contents      string                `json:"contents" form:"contents"`
	StarPoint     float64               `json:"starPoint" form:"starPoint" binding:"gte=0.5,lte=5"`
	SavedImageURL string                `json:"savedImageUrl" form:"savedImageUrl"`
	Image         *multipart.FileHeader `json:"-" form:"image"`
}

// ReviewResponse is a review as shown in listings.
type ReviewResponse struct {
	ID          int64     `json:"id"`
	OrderFoodID int64     `json:"orderFoodId"`
	Author      string    `json:"author"`
	Contents    string    `json:"contents"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	StarPoint   float64   `json:"starPoint"`
	WrittenTime time.Time `json:"writtenTime"`
	GoodsCount  int64     `json:"goodsCount"`
	FoodName    string    `json:"foodName,omitempty"`
	Category    string    `json:"category,omitempty"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO.
// User and OrderFood.Food.Category are used when preloaded.
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:          review.ID,
		OrderFoodID: review.OrderFoodID,
		Author:      review.User.Username,
		Contents:    review.Contents,
		StarPoint:   review.StarPoint,
		WrittenTime: review.WrittenTime,
		GoodsCount:  review.GoodsCount,
	}
	if review.ImageURL != nil {
		resp.ImageURL = *review.ImageURL
	}
	if review.OrderFood != nil {
		resp.FoodName = review.OrderFood.Food.Name
		resp.Category = review.OrderFood.Food.Category.Name
	}
	return resp
}

// OrderFoodResponse is the order line a review hangs off, returned by the
// single-review, update and delete endpoints.
type OrderFoodResponse struct {
	ID         int64           `json:"id"`
	FoodID     int64           `json:"foodId"`
	FoodName   string          `json:"foodName"`
	CategoryID int64           `json:"categoryId"`
	Category   string          `json:"category"`
	Quantity   int             `json:"quantity"`
	OrderedAt  time.Time       `json:"orderedAt"`
	Review     *ReviewResponse `json:"review,omitempty"`
}

func FromModelToOrderFoodResponse(orderFood *models.OrderFood) *OrderFoodResponse {
	resp := &OrderFoodResponse{
		ID:         orderFood.ID,
		FoodID:     orderFood.FoodID,
		FoodName:   orderFood.Food.Name,
		CategoryID: orderFood.Food.CategoryID,
		Category:   orderFood.Food.Category.Name,
		Quantity:   orderFood.Quantity,
		OrderedAt:  orderFood.OrderedAt,
	}
	if orderFood.Review != nil {
		resp.Review = FromModelToReviewResponse(orderFood.Review)
		resp.Review.FoodName = resp.FoodName
		resp.Review.Category = resp.Category
	}
	return resp
}

// UploadResponse is returned by the standalone image upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// GoodResponse reports the state after toggling a good.
type GoodResponse struct {
	ReviewID   int64 `json:"reviewId"`
	Good       bool  `json:"good"`
	GoodsCount int64 `json:"goodsCount"`
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []ReviewResponse `json:"data"`
	Page       int              `json:"page"`
	Size       int              `json:"size"`
	Total      int64            `json:"total"`
	TotalPages int64            `json:"totalPages"`
}

// NewPaginatedReviewResponse creates a paginated review response
func NewPaginatedReviewResponse(data []ReviewResponse, total int64, page, size int) *PaginatedReviewResponse {
	totalPages := int64(0)
	if size > 0 {
		totalPages = (total + int64(size) - 1) / int64(size)
	}
	if data == nil {
		data = []ReviewResponse{}
	}
	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}
