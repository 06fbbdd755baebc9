package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/middleware"
	"bookhive/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	svc           service.BookService
	uploadMaxSize int64
}

func NewBookHandler(svc service.BookService, uploadMaxSize int64) *BookHandler {
	return &BookHandler{svc: svc, uploadMaxSize: uploadMaxSize}
}

// RegisterRoutes registers catalog routes. Reads are public; writes require
// an authenticated admin.
func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:book_id", h.Get)

	rg.POST("", authRequired, middleware.RequireAdmin(), h.Create)
	rg.PUT("/:book_id", authRequired, middleware.RequireAdmin(), h.Update)
	rg.DELETE("/:book_id", authRequired, middleware.RequireAdmin(), h.Delete)
}

// List returns the catalog, paginated, or a search when ?q= is present.
// GET /api/books?q=&page=1&page_size=20
func (h *BookHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page := 1
	pageSize := 20

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}

	query := strings.TrimSpace(c.Query("q"))

	resp, err := h.svc.List(ctx, query, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns a single book with its genres and rating aggregate.
// GET /api/books/:book_id
func (h *BookHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid book id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create adds a book to the catalog. The body is multipart form data; the
// cover image, when present, arrives in the "cover" part.
// POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	var in dto.CreateBookDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	coverName, cover, closeCover, ok := h.openCover(c)
	if !ok {
		return
	}
	defer closeCover()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	book, err := h.svc.Create(ctx, in, coverName, cover)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// Update applies partial changes to a book, optionally replacing the cover.
// PUT /api/books/:book_id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid book id"})
		return
	}

	var in dto.UpdateBookDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	coverName, cover, closeCover, ok := h.openCover(c)
	if !ok {
		return
	}
	defer closeCover()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	book, err := h.svc.Update(ctx, id, in, coverName, cover)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete removes a book and everything hanging off it.
// DELETE /api/books/:book_id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid book id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// openCover extracts the optional cover file part. Returns ok=false after
// writing the error response itself.
func (h *BookHandler) openCover(c *gin.Context) (name string, r io.Reader, closeFn func(), ok bool) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		// no cover part at all is fine
		return "", nil, func() {}, true
	}

	if fileHeader.Size > h.uploadMaxSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cover image too large"})
		return "", nil, nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "could not read cover image"})
		return "", nil, nil, false
	}

	return fileHeader.Filename, f, func() { f.Close() }, true
}
