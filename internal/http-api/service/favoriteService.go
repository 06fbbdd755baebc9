package service

import (
	"context"
	"errors"

	"bookhive/internal/http-api/apperr"
	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

// FavoriteService toggles the user/book favorite relation. Symmetric to the
// like toggle, but the book side keeps no counter.
type FavoriteService interface {
	Toggle(ctx context.Context, userID string, bookID int64) (*dto.ToggleFavoriteResponse, error)
	List(ctx context.Context, userID string) ([]dto.BookResponse, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	bookRepo     repository.BookRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, bookRepo repository.BookRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		bookRepo:     bookRepo,
	}
}

func (s *favoriteService) Toggle(ctx context.Context, userID string, bookID int64) (*dto.ToggleFavoriteResponse, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("book not found")
		}
		return nil, apperr.Unexpected("could not load book", err)
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, bookID)
	if err != nil {
		return nil, apperr.Unexpected("could not check favorite state", err)
	}

	if exists {
		if err := s.favoriteRepo.Remove(ctx, userID, bookID); err != nil {
			return nil, apperr.Unexpected("could not remove favorite", err)
		}
	} else {
		if err := s.favoriteRepo.Add(ctx, userID, bookID); err != nil {
			return nil, apperr.Unexpected("could not add favorite", err)
		}
	}

	return &dto.ToggleFavoriteResponse{Favorited: !exists}, nil
}

func (s *favoriteService) List(ctx context.Context, userID string) ([]dto.BookResponse, error) {
	favorites, err := s.favoriteRepo.List(ctx, userID)
	if err != nil {
		return nil, apperr.Unexpected("could not list favorites", err)
	}

	books := make([]dto.BookResponse, 0, len(favorites))
	for i := range favorites {
		if favorites[i].Book == nil {
			continue
		}
		books = append(books, dto.FromModelToBookResponse(favorites[i].Book))
	}
	return books, nil
}
