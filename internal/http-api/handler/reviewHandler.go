package handler

import (
	"net/http"
	"strconv"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	likeService   service.LikeService
}

func NewReviewHandler(reviewService service.ReviewService, likeService service.LikeService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		likeService:   likeService,
	}
}

// RegisterRoutes registers review routes nested under the books group.
// Reading is public; writing requires authentication.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	reviews := rg.Group("/:book_id/reviews")
	{
		reviews.GET("", h.List)

		reviews.POST("", authRequired, h.Create)
		reviews.PUT("/:review_id", authRequired, h.Update)
		reviews.DELETE("/:review_id", authRequired, h.Delete)
		reviews.POST("/:review_id/like", authRequired, h.ToggleLike)
	}
}

// List retrieves a book's reviews with pagination.
// GET /api/books/:book_id/reviews?page=1&page_size=20
func (h *ReviewHandler) List(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid book id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	resp, err := h.reviewService.GetBookReviews(c.Request.Context(), bookID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create posts the caller's review of a book. One review per user per book.
// POST /api/books/:book_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid book id"})
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, _ := currentUser(c)
	review, err := h.reviewService.CreateReview(c.Request.Context(), bookID, userID, req.Content, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update edits the caller's own review.
// PUT /api/books/:book_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review id"})
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, _ := currentUser(c)
	review, err := h.reviewService.UpdateReview(c.Request.Context(), reviewID, userID, req.Content, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete removes a review; allowed for the author or an admin.
// DELETE /api/books/:book_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review id"})
		return
	}

	userID, role := currentUser(c)
	if err := h.reviewService.DeleteReview(c.Request.Context(), reviewID, userID, role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleLike flips the caller's like on a review.
// POST /api/books/:book_id/reviews/:review_id/like
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review id"})
		return
	}

	userID, _ := currentUser(c)
	resp, err := h.likeService.ToggleReviewLike(c.Request.Context(), reviewID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
