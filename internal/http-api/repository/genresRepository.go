package repository

import (
	"context"
	"fmt"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	FindOrCreateByNames(ctx context.Context, names []string) ([]models.Genre, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

// FindOrCreateByNames resolves genre names to rows, creating any that are new.
// Duplicate names in the input collapse to one row.
func (r *genreRepository) FindOrCreateByNames(ctx context.Context, names []string) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var g models.Genre
		if err := r.db.WithContext(ctx).
			Where(models.Genre{Name: name}).
			FirstOrCreate(&g).Error; err != nil {
			return nil, fmt.Errorf("find or create genre %q: %w", name, err)
		}
		genres = append(genres, g)
	}

	return genres, nil
}
