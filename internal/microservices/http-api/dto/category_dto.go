package dto

import "bazzangee/internal/microservices/http-api/models"

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{
		ID:   c.ID,
		Name: c.Name,
	}
}
