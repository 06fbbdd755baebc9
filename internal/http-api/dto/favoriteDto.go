package dto

// ToggleFavoriteRequest for PUT /api/users/favourites
type ToggleFavoriteRequest struct {
	BookID int64 `json:"book_id" binding:"required"`
}

// ToggleFavoriteResponse reports the outcome of a favorite toggle.
type ToggleFavoriteResponse struct {
	Favorited bool `json:"favorited"`
}
