package repository

import (
	"errors"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

func (s *repositorySuite) TestCategoryList() {
	repo := NewCategoryRepository(s.db)

	s.mock.ExpectQuery(`SELECT \* FROM "categories" ORDER BY id asc`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "한식").
			AddRow(2, "중식"))

	list, err := repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("중식", list[1].Name)
}

func (s *repositorySuite) TestCategoryList_Error() {
	repo := NewCategoryRepository(s.db)

	s.mock.ExpectQuery(`SELECT \* FROM "categories"`).WillReturnError(errors.New("boom"))

	_, err := repo.List(s.ctx)
	s.ErrorContains(err, "get categories")
}

func (s *repositorySuite) TestCategoryFindByID_NotFound() {
	repo := NewCategoryRepository(s.db)

	s.mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repo.FindByID(s.ctx, 42)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}
