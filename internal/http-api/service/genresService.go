package service

import (
	"context"

	"bookhive/internal/http-api/apperr"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"
)

type GenreService interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) GetAll(ctx context.Context) ([]models.Genre, error) {
	genres, err := s.genreRepo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Unexpected("could not list genres", err)
	}
	return genres, nil
}
