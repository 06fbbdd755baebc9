package repository

import (
	"context"
	"fmt"
	"strings"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, id int64, b *models.Book) error
	DeleteCascade(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, page, pageSize int) ([]models.Book, int64, error)
	ReplaceGenres(ctx context.Context, bookID int64, genres []models.Genre) error
	UpdateAggregate(ctx context.Context, bookID int64, avg float64, count int64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	// Count total records
	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).Preload("Genres").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM populates b.ID and b.CreatedAt
	return nil
}

func (r *bookRepository) Update(ctx context.Context, id int64, b *models.Book) error {
	// ensure ID set for Save
	b.ID = id
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// DeleteCascade removes a book and everything hanging off it in one
// transaction: comment likes, comments, review likes, reviews, favorites and
// genre links. Every user's favorite list stops referencing the book.
func (r *bookRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"comment_id IN (SELECT id FROM comments WHERE review_id IN (SELECT id FROM reviews WHERE book_id = ?))", id,
		).Delete(&models.CommentLike{}).Error; err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		if err := tx.Where(
			"review_id IN (SELECT id FROM reviews WHERE book_id = ?)", id,
		).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where(
			"review_id IN (SELECT id FROM reviews WHERE book_id = ?)", id,
		).Delete(&models.ReviewLike{}).Error; err != nil {
			return fmt.Errorf("delete review likes: %w", err)
		}
		if err := tx.Where("book_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		if err := tx.Where("book_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		if err := tx.Exec("DELETE FROM book_genres WHERE book_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete genre links: %w", err)
		}

		result := tx.Delete(&models.Book{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete book: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Search performs case-insensitive partial match on title and author, with
// the same pagination contract as GetAll. Splits query into tokens and
// requires each token to appear in at least one of the fields.
func (r *bookRepository) Search(ctx context.Context, query string, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	tokens := strings.Fields(query)

	// if empty tokens, return empty list
	if len(tokens) == 0 {
		return list, 0, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*2)
	for _, t := range tokens {
		p := "%" + t + "%"
		clauses = append(clauses, "(title ILIKE ? OR COALESCE(author,'') ILIKE ?)")
		args = append(args, p, p)
	}
	where := strings.Join(clauses, " AND ")

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Book{}).Where(where, args...).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count search results: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Where(where, args...).
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("search books by title/author: %w", err)
	}
	return list, total, nil
}

func (r *bookRepository) ReplaceGenres(ctx context.Context, bookID int64, genres []models.Genre) error {
	tx := r.db.WithContext(ctx).Begin()
	var b models.Book
	if err := tx.First(&b, bookID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("book not found: %w", err)
	}
	if err := tx.Model(&b).Association("Genres").Replace(&genres); err != nil {
		tx.Rollback()
		return fmt.Errorf("replace genres: %w", err)
	}
	return tx.Commit().Error
}

// UpdateAggregate writes the recomputed rating aggregate. Both fields are set
// together so a book never carries a count without the matching mean.
func (r *bookRepository) UpdateAggregate(ctx context.Context, bookID int64, avg float64, count int64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", bookID).
		Updates(map[string]interface{}{
			"average_rating": avg,
			"total_reviews":  count,
		}).Error; err != nil {
		return fmt.Errorf("update book aggregate: %w", err)
	}
	return nil
}
