package models

import "time"

// OrderFood is one line of a delivered order; a review is attached to it.
type OrderFood struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;index"`
	FoodID    int64     `json:"foodId" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	OrderedAt time.Time `json:"orderedAt" gorm:"autoCreateTime"`

	// Associations
	User   User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Food   Food    `json:"food" gorm:"foreignKey:FoodID"`
	Review *Review `json:"review,omitempty" gorm:"foreignKey:OrderFoodID"`
}

func (OrderFood) TableName() string {
	return "order_foods"
}
