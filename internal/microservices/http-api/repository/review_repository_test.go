package repository

import (
	"time"

	"bazzangee/internal/microservices/http-api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func (s *repositorySuite) TestReviewCreate() {
	repo := NewReviewRepository(s.db)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	s.mock.ExpectCommit()

	review := &models.Review{
		UserID:      "11111111-1111-1111-1111-111111111111",
		OrderFoodID: 3,
		Contents:    "good",
		StarPoint:   4,
		WrittenTime: time.Now(),
	}
	s.Require().NoError(repo.Create(s.ctx, review))
	s.Equal(int64(7), review.ID)
}

func (s *repositorySuite) TestReviewCreate_DuplicateOrderFood() {
	repo := NewReviewRepository(s.db)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "reviews_order_food_id_key"})
	s.mock.ExpectRollback()

	err := repo.Create(s.ctx, &models.Review{
		UserID:      "11111111-1111-1111-1111-111111111111",
		OrderFoodID: 3,
		Contents:    "again",
		StarPoint:   4,
		WrittenTime: time.Now(),
	})
	s.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (s *repositorySuite) TestReviewUpdate_NotFound() {
	repo := NewReviewRepository(s.db)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "reviews" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := repo.Update(s.ctx, &models.Review{ID: 9, Contents: "x", StarPoint: 1})
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *repositorySuite) TestReviewDelete_RemovesGoodsFirst() {
	repo := NewReviewRepository(s.db)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "review_goods" WHERE review_id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	s.mock.ExpectExec(`DELETE FROM "reviews" WHERE "reviews"."id" = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	s.NoError(repo.Delete(s.ctx, 4))
}

func (s *repositorySuite) TestReviewDelete_MissingRollsBack() {
	repo := NewReviewRepository(s.db)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "review_goods"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectExec(`DELETE FROM "reviews"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectRollback()

	s.ErrorIs(repo.Delete(s.ctx, 4), gorm.ErrRecordNotFound)
}

func (s *repositorySuite) TestReviewFindByOrderFood_NotFound() {
	repo := NewReviewRepository(s.db)

	s.mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE order_food_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	review, err := repo.FindByOrderFood(s.ctx, 42)
	s.Nil(review)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *repositorySuite) TestReviewList_EmptySkipsSelect() {
	repo := NewReviewRepository(s.db)

	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	reviews, total, err := repo.List(s.ctx, ReviewQuery{Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(0), total)
	s.Empty(reviews)
}

func (s *repositorySuite) TestReviewList_ByCategory() {
	repo := NewReviewRepository(s.db)
	s.mock.MatchExpectationsInOrder(false)

	written := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	userID := "22222222-2222-2222-2222-222222222222"

	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews" JOIN order_foods .* JOIN foods .* WHERE foods.category_id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	s.mock.ExpectQuery(`SELECT reviews\.\* FROM "reviews" JOIN order_foods .* ORDER BY reviews.star_point DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "order_food_id", "contents", "star_point", "written_time", "goods_count"}).
			AddRow(1, userID, 5, "tasty", 4.5, written, 2))
	s.mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(userID, "jiwon"))
	s.mock.ExpectQuery(`SELECT \* FROM "order_foods"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "food_id"}).AddRow(5, userID, 8))
	s.mock.ExpectQuery(`SELECT \* FROM "foods"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id"}).AddRow(8, "Jjajangmyeon", 3))
	s.mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "중식"))

	reviews, total, err := repo.List(s.ctx, ReviewQuery{
		CategoryID: 3,
		OrderBy:    "reviews.star_point DESC, reviews.written_time DESC",
		Limit:      10,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(reviews, 1)
	s.Equal("jiwon", reviews[0].User.Username)
	s.Require().NotNil(reviews[0].OrderFood)
	s.Equal("중식", reviews[0].OrderFood.Food.Category.Name)
}

func (s *repositorySuite) TestToggleGood_Adds() {
	repo := NewReviewRepository(s.db)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT "id","goods_count" FROM "reviews" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "goods_count"}).AddRow(5, 2))
	s.mock.ExpectQuery(`SELECT \* FROM "review_goods"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.mock.ExpectQuery(`INSERT INTO "review_goods"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectExec(`UPDATE "reviews" SET "goods_count"=\$1`).
		WithArgs(int64(3), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	good, count, err := repo.ToggleGood(s.ctx, 5, "u-1")
	s.Require().NoError(err)
	s.True(good)
	s.Equal(int64(3), count)
}

func (s *repositorySuite) TestToggleGood_Removes() {
	repo := NewReviewRepository(s.db)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT "id","goods_count" FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "goods_count"}).AddRow(5, 1))
	s.mock.ExpectQuery(`SELECT \* FROM "review_goods"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "review_id", "user_id"}).AddRow(9, 5, "u-1"))
	s.mock.ExpectExec(`DELETE FROM "review_goods"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(`UPDATE "reviews" SET "goods_count"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	good, count, err := repo.ToggleGood(s.ctx, 5, "u-1")
	s.Require().NoError(err)
	s.False(good)
	s.Equal(int64(0), count)
}

func (s *repositorySuite) TestToggleGood_UnknownReview() {
	repo := NewReviewRepository(s.db)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT "id","goods_count" FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "goods_count"}))
	s.mock.ExpectRollback()

	_, _, err := repo.ToggleGood(s.ctx, 5, "u-1")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}
