package handler

import (
	"net/http"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/middleware"
	"bookhive/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService     service.UserService
	favoriteService service.FavoriteService
}

func NewUserHandler(userService service.UserService, favoriteService service.FavoriteService) *UserHandler {
	return &UserHandler{
		userService:     userService,
		favoriteService: favoriteService,
	}
}

// RegisterRoutes registers user routes; all require authentication, listing
// accounts additionally requires admin.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("/me", authRequired, h.Me)
	rg.GET("", authRequired, middleware.RequireAdmin(), h.List)

	rg.GET("/favourites", authRequired, h.ListFavourites)
	rg.PUT("/favourites", authRequired, h.ToggleFavourite)
}

// Me returns the caller's profile with their favorite and liked id sets.
// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := currentUser(c)

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// List returns all accounts.
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

// ListFavourites returns the caller's favorite books.
// GET /api/users/favourites
func (h *UserHandler) ListFavourites(c *gin.Context) {
	userID, _ := currentUser(c)

	books, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": books})
}

// ToggleFavourite flips a book in or out of the caller's favorites.
// PUT /api/users/favourites
func (h *UserHandler) ToggleFavourite(c *gin.Context) {
	var req dto.ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, _ := currentUser(c)
	resp, err := h.favoriteService.Toggle(c.Request.Context(), userID, req.BookID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
