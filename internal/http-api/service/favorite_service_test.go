package service

import (
	"context"
	"testing"

	"bookhive/internal/http-api/apperr"
	"bookhive/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newFavoriteServiceForTest() (FavoriteService, *MockFavoriteRepository, *MockBookRepository) {
	favoriteRepo := new(MockFavoriteRepository)
	bookRepo := new(MockBookRepository)
	svc := NewFavoriteService(favoriteRepo, bookRepo)
	return svc, favoriteRepo, bookRepo
}

func TestToggleFavorite_Add(t *testing.T) {
	svc, favoriteRepo, bookRepo := newFavoriteServiceForTest()

	bookRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1}, nil)
	favoriteRepo.On("Exists", mock.Anything, "user-1", int64(1)).Return(false, nil)
	favoriteRepo.On("Add", mock.Anything, "user-1", int64(1)).Return(nil)

	resp, err := svc.Toggle(context.Background(), "user-1", 1)
	assert.NoError(t, err)
	assert.True(t, resp.Favorited)
	favoriteRepo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleFavorite_Remove(t *testing.T) {
	svc, favoriteRepo, bookRepo := newFavoriteServiceForTest()

	bookRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1}, nil)
	favoriteRepo.On("Exists", mock.Anything, "user-1", int64(1)).Return(true, nil)
	favoriteRepo.On("Remove", mock.Anything, "user-1", int64(1)).Return(nil)

	resp, err := svc.Toggle(context.Background(), "user-1", 1)
	assert.NoError(t, err)
	assert.False(t, resp.Favorited)
	favoriteRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleFavorite_BookMissing(t *testing.T) {
	svc, favoriteRepo, bookRepo := newFavoriteServiceForTest()

	bookRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Toggle(context.Background(), "user-1", 99)
	assert.ErrorIs(t, err, apperr.NotFound(""))
	favoriteRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestListFavorites(t *testing.T) {
	svc, favoriteRepo, _ := newFavoriteServiceForTest()

	favorites := []models.Favorite{
		{ID: 1, UserID: "user-1", BookID: 1, Book: &models.Book{ID: 1, Title: "Dune"}},
		{ID: 2, UserID: "user-1", BookID: 2, Book: &models.Book{ID: 2, Title: "Hyperion"}},
	}
	favoriteRepo.On("List", mock.Anything, "user-1").Return(favorites, nil)

	books, err := svc.List(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
}
