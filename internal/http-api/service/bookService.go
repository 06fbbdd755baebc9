package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"bookhive/internal/cache"
	"bookhive/internal/http-api/apperr"
	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/repository"
	"bookhive/internal/storage"

	"gorm.io/gorm"
)

type BookService interface {
	List(ctx context.Context, query string, page, pageSize int) (*dto.PaginatedBookResponse, error)
	Get(ctx context.Context, id int64) (*dto.BookResponse, error)
	Create(ctx context.Context, input dto.CreateBookDTO, coverName string, cover io.Reader) (*dto.BookResponse, error)
	Update(ctx context.Context, id int64, input dto.UpdateBookDTO, coverName string, cover io.Reader) (*dto.BookResponse, error)
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	bookRepo   repository.BookRepository
	genreRepo  repository.GenreRepository
	coverStore storage.CoverStore
	bookCache  *cache.BookCache
	logger     *slog.Logger
}

func NewBookService(
	bookRepo repository.BookRepository,
	genreRepo repository.GenreRepository,
	coverStore storage.CoverStore,
	bookCache *cache.BookCache,
	logger *slog.Logger,
) BookService {
	return &bookService{
		bookRepo:   bookRepo,
		genreRepo:  genreRepo,
		coverStore: coverStore,
		bookCache:  bookCache,
		logger:     logger,
	}
}

// List returns books, either the full paginated catalog or a title/author
// search when query is non-empty.
func (s *bookService) List(ctx context.Context, query string, page, pageSize int) (*dto.PaginatedBookResponse, error) {
	if query != "" {
		books, total, err := s.bookRepo.Search(ctx, query, page, pageSize)
		if err != nil {
			return nil, apperr.Unexpected("could not search books", err)
		}
		responses := make([]dto.BookResponse, 0, len(books))
		for i := range books {
			responses = append(responses, dto.FromModelToBookResponse(&books[i]))
		}
		return dto.NewPaginatedBookResponse(responses, int(total), page, pageSize), nil
	}

	books, total, err := s.bookRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, apperr.Unexpected("could not list books", err)
	}

	responses := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, dto.FromModelToBookResponse(&books[i]))
	}

	return dto.NewPaginatedBookResponse(responses, int(total), page, pageSize), nil
}

// Get returns a single book, read through the Redis cache.
func (s *bookService) Get(ctx context.Context, id int64) (*dto.BookResponse, error) {
	var cached dto.BookResponse
	if err := s.bookCache.GetBook(ctx, id, &cached); err == nil {
		return &cached, nil
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("book not found")
		}
		return nil, apperr.Unexpected("could not load book", err)
	}

	response := dto.FromModelToBookResponse(book)
	if err := s.bookCache.SetBook(ctx, id, response); err != nil {
		s.logger.Warn("book cache set failed", "book_id", id, "error", err)
	}
	return &response, nil
}

// Create stores the cover image first and only then persists the book, so an
// upload failure aborts the whole operation.
func (s *bookService) Create(ctx context.Context, input dto.CreateBookDTO, coverName string, cover io.Reader) (*dto.BookResponse, error) {
	book := input.ToModel()

	if cover != nil {
		coverURL, err := s.coverStore.Save(coverName, cover)
		if err != nil {
			return nil, apperr.Unexpected("cover upload failed", err)
		}
		book.CoverURL = &coverURL
	}

	genres, err := s.genreRepo.FindOrCreateByNames(ctx, input.Genres)
	if err != nil {
		return nil, apperr.Unexpected("could not resolve genres", err)
	}
	book.Genres = genres

	if err := s.bookRepo.Create(ctx, &book); err != nil {
		return nil, apperr.Unexpected("could not create book", err)
	}

	response := dto.FromModelToBookResponse(&book)
	return &response, nil
}

// Update applies partial changes. A new cover, when provided, is stored
// before the row is touched, matching the create ordering; the old cover is
// removed only once the row update succeeds, so the persisted row never
// references a deleted file.
func (s *bookService) Update(ctx context.Context, id int64, input dto.UpdateBookDTO, coverName string, cover io.Reader) (*dto.BookResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("book not found")
		}
		return nil, apperr.Unexpected("could not load book", err)
	}

	input.ApplyTo(book)

	if input.Genres != nil {
		genres, err := s.genreRepo.FindOrCreateByNames(ctx, *input.Genres)
		if err != nil {
			return nil, apperr.Unexpected("could not resolve genres", err)
		}
		if err := s.bookRepo.ReplaceGenres(ctx, id, genres); err != nil {
			return nil, apperr.Unexpected("could not update genres", err)
		}
		book.Genres = genres
	}

	var staleCover string
	if cover != nil {
		coverURL, err := s.coverStore.Save(coverName, cover)
		if err != nil {
			return nil, apperr.Unexpected("cover upload failed", err)
		}
		if book.CoverURL != nil {
			staleCover = *book.CoverURL
		}
		book.CoverURL = &coverURL
	}

	if err := s.bookRepo.Update(ctx, id, book); err != nil {
		if cover != nil {
			if rmErr := s.coverStore.Remove(*book.CoverURL); rmErr != nil {
				s.logger.Warn("orphaned cover not removed", "book_id", id, "error", rmErr)
			}
		}
		return nil, apperr.Unexpected("could not update book", err)
	}

	if staleCover != "" {
		if err := s.coverStore.Remove(staleCover); err != nil {
			s.logger.Warn("stale cover not removed", "book_id", id, "error", err)
		}
	}

	if err := s.bookCache.InvalidateBook(ctx, id); err != nil {
		s.logger.Warn("book cache invalidation failed", "book_id", id, "error", err)
	}

	response := dto.FromModelToBookResponse(book)
	return &response, nil
}

// Delete removes the book and cascades to its reviews, their comment forests
// and every user's favorites.
func (s *bookService) Delete(ctx context.Context, id int64) error {
	if err := s.bookRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("book not found")
		}
		return apperr.Unexpected("could not delete book", err)
	}

	if err := s.bookCache.InvalidateBook(ctx, id); err != nil {
		s.logger.Warn("book cache invalidation failed", "book_id", id, "error", err)
	}
	return nil
}
