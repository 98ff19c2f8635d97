package models

import "time"

type Review struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"userId" gorm:"type:uuid;not null;index"`
	OrderFoodID int64     `json:"orderFoodId" gorm:"not null;uniqueIndex"`
	Contents    string    `json:"contents" gorm:"type:varchar(200);not null"`
	ImageURL    *string   `json:"imageUrl,omitempty" gorm:"column:image_url"`
	StarPoint   float64   `json:"starPoint" gorm:"not null;check:star_point >= 0 AND star_point <= 5"`
	WrittenTime time.Time `json:"writtenTime" gorm:"not null"`
	GoodsCount  int64     `json:"goodsCount" gorm:"not null;default:0"`

	// Associations
	User      User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	OrderFood *OrderFood `json:"-" gorm:"foreignKey:OrderFoodID"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewGood is one user's "good" (like) on a review; GoodsCount mirrors
// the number of rows per review.
type ReviewGood struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID  int64     `json:"reviewId" gorm:"not null;uniqueIndex:uq_review_goods_review_user"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:uq_review_goods_review_user"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (ReviewGood) TableName() string {
	return "review_goods"
}
