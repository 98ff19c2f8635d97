package repository

import (
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

func (s *repositorySuite) TestOrderFoodFindByID_WithoutReview() {
	repo := NewOrderFoodRepository(s.db)
	s.mock.MatchExpectationsInOrder(false)

	s.mock.ExpectQuery(`SELECT \* FROM "order_foods" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "food_id", "quantity"}).AddRow(5, "u-1", 8, 2))
	s.mock.ExpectQuery(`SELECT \* FROM "foods"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id"}).AddRow(8, "Jjamppong", 3))
	s.mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "중식"))
	s.mock.ExpectQuery(`SELECT \* FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	orderFood, err := repo.FindByID(s.ctx, 5)
	s.Require().NoError(err)
	s.Equal("u-1", orderFood.UserID)
	s.Equal("Jjamppong", orderFood.Food.Name)
	s.Equal("중식", orderFood.Food.Category.Name)
	s.Nil(orderFood.Review)
}

func (s *repositorySuite) TestOrderFoodFindByID_NotFound() {
	repo := NewOrderFoodRepository(s.db)

	s.mock.ExpectQuery(`SELECT \* FROM "order_foods"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(s.ctx, 99)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}
