package repository

import (
	"context"

	"bazzangee/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type OrderFoodRepository interface {
	FindByID(ctx context.Context, id int64) (*models.OrderFood, error)
}

type orderFoodRepository struct {
	db *gorm.DB
}

func NewOrderFoodRepository(db *gorm.DB) OrderFoodRepository {
	return &orderFoodRepository{db: db}
}

// FindByID loads an order food with its food, category and review (if any).
func (r *orderFoodRepository) FindByID(ctx context.Context, id int64) (*models.OrderFood, error) {
	var orderFood models.OrderFood
	err := r.db.WithContext(ctx).
		Preload("Food.Category").
		Preload("Review.User").
		First(&orderFood, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &orderFood, nil
}
