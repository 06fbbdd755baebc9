package repository

import (
	"context"
	"fmt"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID string, bookID int64) error
	Remove(ctx context.Context, userID string, bookID int64) error
	List(ctx context.Context, userID string) ([]models.Favorite, error)
	Exists(ctx context.Context, userID string, bookID int64) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID string, bookID int64) error {
	favorite := &models.Favorite{
		UserID: userID,
		BookID: bookID,
	}

	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID string, bookID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.Favorite{})

	if result.Error != nil {
		return fmt.Errorf("remove favorite: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("book not in favorites")
	}

	return nil
}

func (r *favoriteRepository) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite

	if err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Book.Genres").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return favorites, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID string, bookID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
