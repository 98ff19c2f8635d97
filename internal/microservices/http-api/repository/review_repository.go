package repository

import (
	"context"
	"errors"

	"bazzangee/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewQuery narrows and orders a review listing. Zero values mean "no filter".
type ReviewQuery struct {
	UserID     string
	CategoryID int64
	OrderBy    string
	Limit      int
	Offset     int
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, reviewID int64) error
	FindByID(ctx context.Context, id int64) (*models.Review, error)
	FindByOrderFood(ctx context.Context, orderFoodID int64) (*models.Review, error)
	List(ctx context.Context, query ReviewQuery) ([]models.Review, int64, error)
	ToggleGood(ctx context.Context, reviewID int64, userID string) (bool, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts the review row only; associations are never upserted.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
}

// Update writes the editable columns of an existing review
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	result := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"contents":   review.Contents,
			"star_point": review.StarPoint,
			"image_url":  review.ImageURL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a review together with its goods.
func (r *reviewRepository) Delete(ctx context.Context, reviewID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).Delete(&models.ReviewGood{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Review{}, reviewID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByOrderFood(ctx context.Context, orderFoodID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("order_food_id = ?", orderFoodID).
		Preload("User").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (q ReviewQuery) scope(db *gorm.DB) *gorm.DB {
	db = db.Model(&models.Review{})
	if q.CategoryID > 0 {
		db = db.Joins("JOIN order_foods ON order_foods.id = reviews.order_food_id").
			Joins("JOIN foods ON foods.id = order_foods.food_id").
			Where("foods.category_id = ?", q.CategoryID)
	}
	if q.UserID != "" {
		db = db.Where("reviews.user_id = ?", q.UserID)
	}
	return db
}

// List returns one page of reviews and the total number matching the query.
func (r *reviewRepository) List(ctx context.Context, query ReviewQuery) ([]models.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Scopes(query.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 || int64(query.Offset) >= total {
		return []models.Review{}, total, nil
	}

	var reviews []models.Review
	db := r.db.WithContext(ctx).Scopes(query.scope).
		Select("reviews.*").
		Preload("User").
		Preload("OrderFood.Food.Category")
	if query.OrderBy != "" {
		db = db.Order(query.OrderBy)
	}
	err := db.Limit(query.Limit).Offset(query.Offset).Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ToggleGood adds the user's good to a review, or removes it when already present.
// It reports whether the good now exists and the review's updated goods count.
func (r *reviewRepository) ToggleGood(ctx context.Context, reviewID int64, userID string) (bool, int64, error) {
	var (
		good  bool
		count int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		// lock the review row so concurrent toggles serialise on the counter
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "goods_count").
			First(&review, "id = ?", reviewID).Error; err != nil {
			return err
		}

		var existing models.ReviewGood
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			count = review.GoodsCount - 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.ReviewGood{ReviewID: reviewID, UserID: userID}).Error; err != nil {
				return err
			}
			good = true
			count = review.GoodsCount + 1
		default:
			return err
		}

		if count < 0 {
			count = 0
		}
		return tx.Model(&models.Review{}).Where("id = ?", reviewID).Update("goods_count", count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return good, count, nil
}
