package service

import (
	"context"
	"errors"

	"bazzangee/internal/microservices/http-api/dto"
	"bazzangee/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryService exposes the food categories reviews can be filtered by.
type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, id int64) (*dto.CategoryResponse, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, dto.CategoryFromModel(c))
	}
	return resp, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	category, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	resp := dto.CategoryFromModel(*category)
	return &resp, nil
}
