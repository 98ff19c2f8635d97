package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bazzangee/internal/microservices/http-api/dto"
	"bazzangee/internal/microservices/http-api/render"
	"bazzangee/internal/microservices/http-api/service"
	"bazzangee/internal/session"
	"bazzangee/internal/storage"
	"bazzangee/internal/validation"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	uploader      storage.Uploader
	logger        *slog.Logger
	now           func() time.Time
}

func NewReviewHandler(reviewService service.ReviewService, uploader storage.Uploader, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		uploader:      uploader,
		logger:        logger,
		now:           time.Now,
	}
}

// RegisterRoutes registers review routes under /api/reviews.
// Handlers that need a login check the session themselves.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	{
		reviews.POST("", h.Create)
		reviews.DELETE("/:orderFoodId", h.Delete)
		reviews.GET("/:orderId", h.GetUpdateForm)
		reviews.POST("/update", h.Update)
		reviews.POST("/upload", h.UploadImage)

		reviews.GET("", h.List)
		reviews.GET("/categories", h.ListByCategory)
		reviews.GET("/user", h.ListForUser)
		reviews.GET("/user/categories", h.ListForUserByCategory)

		reviews.POST("/:reviewId/goods", h.ToggleGood)
	}
}

// Create writes a review for one of the user's order foods
// POST /api/reviews (multipart form)
func (h *ReviewHandler) Create(c *gin.Context) {
	user, err := session.UserFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validation.ValidateText(req.Contents); err != nil {
		respondError(c, err)
		return
	}
	if req.Image != nil {
		if err := validation.ValidateImage(req.Image); err != nil {
			respondError(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	dir := storage.DirName(storage.ReviewImagePrefix, h.now())
	url, err := h.uploader.Upload(ctx, req.Image, dir, req.SavedImageURL, &req.OrderFoodID)
	if err != nil {
		h.logger.Error("upload_failed", "order_food_id", req.OrderFoodID, "error", err)
		respondError(c, err)
		return
	}

	review, err := h.reviewService.Create(ctx, req, url, *user)
	if err != nil {
		if req.Image != nil {
			h.discardUpload(ctx, url)
		}
		respondError(c, err)
		return
	}

	render.JSON(c, http.StatusOK, review)
}

// Update edits the user's review. A new image replaces the stored one,
// otherwise savedImageUrl (or the stored URL when omitted) is kept.
// POST /api/reviews/update
func (h *ReviewHandler) Update(c *gin.Context) {
	user, err := session.UserFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validation.ValidateText(req.Contents); err != nil {
		respondError(c, err)
		return
	}
	if req.Image != nil {
		if err := validation.ValidateImage(req.Image); err != nil {
			respondError(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	current, err := h.reviewService.GetReview(ctx, req.OrderFoodID, *user)
	if err != nil {
		respondError(c, err)
		return
	}
	saved := req.SavedImageURL
	if saved == "" && current.ImageURL != nil {
		saved = *current.ImageURL
	}

	dir := storage.DirName(storage.ImagePrefix, h.now())
	url, err := h.uploader.Upload(ctx, req.Image, dir, saved, &req.OrderFoodID)
	if err != nil {
		h.logger.Error("upload_failed", "order_food_id", req.OrderFoodID, "error", err)
		respondError(c, err)
		return
	}

	orderFood, err := h.reviewService.Update(ctx, req, url, *user)
	if err != nil {
		if req.Image != nil {
			h.discardUpload(ctx, url)
		}
		respondError(c, err)
		return
	}
	if current.ImageURL != nil && *current.ImageURL != url {
		h.discardOwnedImage(ctx, *current.ImageURL, req.OrderFoodID)
	}

	render.JSON(c, http.StatusOK, orderFood)
}

// Delete removes the user's review of an order food
// DELETE /api/reviews/:orderFoodId
func (h *ReviewHandler) Delete(c *gin.Context) {
	user, err := session.UserFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orderFoodID, err := strconv.ParseInt(c.Param("orderFoodId"), 10, 64)
	if err != nil {
		render.Error(c, http.StatusBadRequest, "invalid order food id")
		return
	}

	ctx := c.Request.Context()
	orderFood, removedImage, err := h.reviewService.Delete(ctx, orderFoodID, *user)
	if err != nil {
		respondError(c, err)
		return
	}
	if removedImage != "" {
		h.discardOwnedImage(ctx, removedImage, orderFoodID)
	}

	render.JSON(c, http.StatusOK, orderFood)
}

// GetUpdateForm returns an order food with its review
// GET /api/reviews/:orderId
func (h *ReviewHandler) GetUpdateForm(c *gin.Context) {
	orderFoodID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		render.Error(c, http.StatusBadRequest, "invalid order id")
		return
	}

	orderFood, err := h.reviewService.GetReviewOne(c.Request.Context(), orderFoodID)
	if err != nil {
		respondError(c, err)
		return
	}
	render.JSON(c, http.StatusOK, orderFood)
}

// UploadImage stores an image ahead of the review that will use it
// POST /api/reviews/upload (multipart field "data")
func (h *ReviewHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("data")
	if err != nil {
		respondError(c, validation.ErrFileMissing)
		return
	}
	if err := validation.ValidateImage(file); err != nil {
		respondError(c, err)
		return
	}

	dir := storage.DirName(storage.ImagePrefix, h.now())
	url, err := h.uploader.Upload(c.Request.Context(), file, dir, "", nil)
	if err != nil {
		h.logger.Error("upload_failed", "filename", file.Filename, "error", err)
		respondError(c, err)
		return
	}

	render.JSON(c, http.StatusOK, dto.UploadResponse{URL: url})
}

// List returns all reviews, sorted by filterId
// GET /api/reviews?page=&size=&filterId=
func (h *ReviewHandler) List(c *gin.Context) {
	page, ok := pageRequest(c, service.ParseSortOrder)
	if !ok {
		return
	}

	resp, err := h.reviewService.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	render.JSON(c, http.StatusOK, resp)
}

// ListByCategory
// GET /api/reviews/categories?categoryId=
func (h *ReviewHandler) ListByCategory(c *gin.Context) {
	page, ok := pageRequest(c, service.ParseSortOrder)
	if !ok {
		return
	}
	categoryID, ok := categoryParam(c)
	if !ok {
		return
	}

	resp, err := h.reviewService.ListByCategory(c.Request.Context(), page, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	render.JSON(c, http.StatusOK, resp)
}

// ListForUser returns the session user's reviews
// GET /api/reviews/user
func (h *ReviewHandler) ListForUser(c *gin.Context) {
	user, err := session.UserFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, ok := pageRequest(c, service.ParseUserSortOrder)
	if !ok {
		return
	}

	resp, err := h.reviewService.ListByUser(c.Request.Context(), page, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	render.JSON(c, http.StatusOK, resp)
}

// ListForUserByCategory
// GET /api/reviews/user/categories?categoryId=
func (h *ReviewHandler) ListForUserByCategory(c *gin.Context) {
	user, err := session.UserFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, ok := pageRequest(c, service.ParseUserSortOrder)
	if !ok {
		return
	}
	categoryID, ok := categoryParam(c)
	if !ok {
		return
	}

	resp, err := h.reviewService.ListByUserAndCategory(c.Request.Context(), page, user.ID, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	render.JSON(c, http.StatusOK, resp)
}

// ToggleGood adds or removes the user's good on a review
// POST /api/reviews/:reviewId/goods
func (h *ReviewHandler) ToggleGood(c *gin.Context) {
	user, err := session.UserFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	reviewID, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil {
		render.Error(c, http.StatusBadRequest, "invalid review id")
		return
	}

	resp, err := h.reviewService.ToggleGood(c.Request.Context(), reviewID, *user)
	if err != nil {
		respondError(c, err)
		return
	}
	render.JSON(c, http.StatusOK, resp)
}

// discardUpload deletes an object that no stored review points at.
// Failures are logged and left for manual cleanup.
func (h *ReviewHandler) discardUpload(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := h.uploader.Delete(context.WithoutCancel(ctx), url); err != nil {
		h.logger.Warn("orphaned_upload", "url", url, "error", err)
		return
	}
	h.logger.Info("upload_discarded", "url", url)
}

// discardOwnedImage deletes an image a review no longer uses, but only when
// it was uploaded for that order food. savedImageUrl is client supplied, so
// a review may point at an object someone else owns.
func (h *ReviewHandler) discardOwnedImage(ctx context.Context, url string, orderFoodID int64) {
	if !storage.BelongsToOrderFood(url, orderFoodID) {
		h.logger.Debug("image_kept", "url", url, "order_food_id", orderFoodID)
		return
	}
	h.discardUpload(ctx, url)
}

func pageRequest(c *gin.Context, parseSort func(int64) service.SortOrder) (service.PageRequest, bool) {
	page, err := intQuery(c, "page", service.DefaultPage)
	if err != nil {
		render.Error(c, http.StatusBadRequest, "invalid page")
		return service.PageRequest{}, false
	}
	size, err := intQuery(c, "size", service.DefaultPageSize)
	if err != nil {
		render.Error(c, http.StatusBadRequest, "invalid size")
		return service.PageRequest{}, false
	}
	filterID, err := strconv.ParseInt(c.DefaultQuery("filterId", "0"), 10, 64)
	if err != nil {
		render.Error(c, http.StatusBadRequest, "invalid filterId")
		return service.PageRequest{}, false
	}
	return service.NewPageRequest(page, size, parseSort(filterID)), true
}

func categoryParam(c *gin.Context) (int64, bool) {
	categoryID, err := strconv.ParseInt(c.Query("categoryId"), 10, 64)
	if err != nil || categoryID < 1 {
		render.Error(c, http.StatusBadRequest, "invalid categoryId")
		return 0, false
	}
	return categoryID, true
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
