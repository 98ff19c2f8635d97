package repository

import (
	"bazzangee/internal/microservices/http-api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func (s *repositorySuite) TestUserCreate_AssignsUUID() {
	repo := NewUserRepository(s.db)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	user := &models.User{Username: "jiwon", Email: "jiwon@example.com", Password: "hash"}
	s.Require().NoError(repo.Create(s.ctx, user))
	s.Len(user.ID, 36)
}

func (s *repositorySuite) TestUserCreate_DuplicateUsername() {
	repo := NewUserRepository(s.db)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	s.mock.ExpectRollback()

	err := repo.Create(s.ctx, &models.User{Username: "jiwon", Email: "jiwon@example.com", Password: "hash"})
	s.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (s *repositorySuite) TestUserFindByUsername() {
	repo := NewUserRepository(s.db)

	s.mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash"}).
			AddRow("u-1", "jiwon", "jiwon@example.com", "hash"))

	user, err := repo.FindByUsername(s.ctx, "jiwon")
	s.Require().NoError(err)
	s.Equal("u-1", user.ID)
	s.Equal("hash", user.Password)
}

func (s *repositorySuite) TestUserFindByEmail_NotFound() {
	repo := NewUserRepository(s.db)

	s.mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.FindByEmail(s.ctx, "nobody@example.com")
	s.Nil(user)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}
