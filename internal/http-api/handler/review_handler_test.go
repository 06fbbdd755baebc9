package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookhive/internal/http-api/apperr"
	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakeAuth stands in for the JWT middleware in authorized-path tests.
func fakeAuth(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func TestReviewList_Public(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockLikeService := new(MockLikeService)
	h := NewReviewHandler(mockReviewService, mockLikeService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/api/books"), fakeAuth("", ""))

	resp := dto.NewPaginatedReviewResponse([]dto.ReviewResponse{
		{ID: 10, BookID: 1, Rating: 5, Likes: 3, UserName: "Alice"},
	}, 1, 1, 20)
	mockReviewService.On("GetBookReviews", mock.Anything, int64(1), 1, 20).Return(resp, nil)

	req, _ := http.NewRequest("GET", "/api/books/1/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body dto.PaginatedReviewResponse
	json.Unmarshal(w.Body.Bytes(), &body)
	assert.Len(t, body.Data, 1)
	assert.Equal(t, int64(3), body.Data[0].Likes)
}

func TestReviewCreate_Unauthenticated(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockReviewService := new(MockReviewService)
	mockLikeService := new(MockLikeService)
	h := NewReviewHandler(mockReviewService, mockLikeService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/api/books"), middleware.AuthMiddleware(mockAuthService))

	body, _ := json.Marshal(dto.CreateReviewDTO{Content: "great", Rating: 5})
	req, _ := http.NewRequest("POST", "/api/books/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockReviewService.AssertNotCalled(t, "CreateReview")
}

func TestReviewCreate_Success(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockLikeService := new(MockLikeService)
	h := NewReviewHandler(mockReviewService, mockLikeService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/api/books"), fakeAuth("user-1", "user"))

	created := &dto.ReviewResponse{ID: 10, BookID: 1, UserID: "user-1", Content: "great", Rating: 5}
	mockReviewService.On("CreateReview", mock.Anything, int64(1), "user-1", "great", 5).Return(created, nil)

	body, _ := json.Marshal(dto.CreateReviewDTO{Content: "great", Rating: 5})
	req, _ := http.NewRequest("POST", "/api/books/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.ReviewResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, int64(10), resp.ID)
	mockReviewService.AssertExpectations(t)
}

func TestReviewCreate_Duplicate(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockLikeService := new(MockLikeService)
	h := NewReviewHandler(mockReviewService, mockLikeService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/api/books"), fakeAuth("user-1", "user"))

	mockReviewService.On("CreateReview", mock.Anything, int64(1), "user-1", "again", 4).
		Return(nil, apperr.Conflict("already reviewed"))

	body, _ := json.Marshal(dto.CreateReviewDTO{Content: "again", Rating: 4})
	req, _ := http.NewRequest("POST", "/api/books/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "already reviewed", response["message"])
}

func TestReviewCreate_RatingOutOfRange(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockLikeService := new(MockLikeService)
	h := NewReviewHandler(mockReviewService, mockLikeService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/api/books"), fakeAuth("user-1", "user"))

	body, _ := json.Marshal(dto.CreateReviewDTO{Content: "meh", Rating: 6})
	req, _ := http.NewRequest("POST", "/api/books/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockReviewService.AssertNotCalled(t, "CreateReview")
}

func TestReviewDelete_Forbidden(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockLikeService := new(MockLikeService)
	h := NewReviewHandler(mockReviewService, mockLikeService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/api/books"), fakeAuth("user-2", "user"))

	mockReviewService.On("DeleteReview", mock.Anything, int64(10), "user-2", "user").
		Return(apperr.Authorization("only the author or an admin may delete this review"))

	req, _ := http.NewRequest("DELETE", "/api/books/1/reviews/10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewDelete_Admin(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockLikeService := new(MockLikeService)
	h := NewReviewHandler(mockReviewService, mockLikeService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/api/books"), fakeAuth("admin-1", "admin"))

	mockReviewService.On("DeleteReview", mock.Anything, int64(10), "admin-1", "admin").Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/books/1/reviews/10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestReviewToggleLike(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockLikeService := new(MockLikeService)
	h := NewReviewHandler(mockReviewService, mockLikeService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/api/books"), fakeAuth("user-1", "user"))

	mockLikeService.On("ToggleReviewLike", mock.Anything, int64(10), "user-1").
		Return(&dto.LikeToggleResponse{Liked: true, Likes: 4}, nil)

	req, _ := http.NewRequest("POST", "/api/books/1/reviews/10/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.LikeToggleResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.Liked)
	assert.Equal(t, int64(4), resp.Likes)
}
