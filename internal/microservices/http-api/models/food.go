package models

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}

type Food struct {
	ID         int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string   `json:"name" gorm:"not null"`
	Price      int64    `json:"price" gorm:"not null;default:0"`
	CategoryID int64    `json:"categoryId" gorm:"not null;index"`
	Category   Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Food) TableName() string {
	return "foods"
}
