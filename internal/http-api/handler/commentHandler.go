package handler

import (
	"net/http"
	"strconv"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
	likeService    service.LikeService
}

func NewCommentHandler(commentService service.CommentService, likeService service.LikeService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		likeService:    likeService,
	}
}

// RegisterRoutes registers comment routes nested under the books group.
// Reading is public; writing requires authentication.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	comments := rg.Group("/:book_id/reviews/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id/replies", h.Replies)

		comments.POST("", authRequired, h.Create)
		comments.DELETE("/:comment_id", authRequired, h.Delete)
		comments.POST("/:comment_id/like", authRequired, h.ToggleLike)
	}
}

// List retrieves a review's top-level comments.
// GET /api/books/:book_id/reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review id"})
		return
	}

	comments, err := h.commentService.GetReviewComments(c.Request.Context(), reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": comments})
}

// Replies retrieves a comment's direct replies.
// GET /api/books/:book_id/reviews/:review_id/comments/:comment_id/replies
func (h *CommentHandler) Replies(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid comment id"})
		return
	}

	replies, err := h.commentService.GetReplies(c.Request.Context(), commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": replies})
}

// Create posts a comment on a review, top-level or as a reply when parent_id
// is set.
// POST /api/books/:book_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review id"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, _ := currentUser(c)
	comment, err := h.commentService.CreateComment(c.Request.Context(), reviewID, userID, req.Content, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Delete removes a comment and all replies under it; allowed for the author
// or an admin.
// DELETE /api/books/:book_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid comment id"})
		return
	}

	userID, role := currentUser(c)
	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, userID, role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleLike flips the caller's like on a comment.
// POST /api/books/:book_id/reviews/:review_id/comments/:comment_id/like
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid comment id"})
		return
	}

	userID, _ := currentUser(c)
	resp, err := h.likeService.ToggleCommentLike(c.Request.Context(), commentID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
