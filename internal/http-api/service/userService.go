package service

import (
	"context"
	"errors"

	"bookhive/internal/http-api/apperr"
	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
}

type userService struct {
	userRepo     repository.UserRepository
	favoriteRepo repository.FavoriteRepository
	likeRepo     repository.LikeRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	favoriteRepo repository.FavoriteRepository,
	likeRepo repository.LikeRepository,
) UserService {
	return &userService{
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
		likeRepo:     likeRepo,
	}
}

// GetProfile returns the caller's profile along with their favorite and liked
// id sets, so like/favorite state renders without scanning other entities.
func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Unexpected("could not load user", err)
	}

	favorites, err := s.favoriteRepo.List(ctx, userID)
	if err != nil {
		return nil, apperr.Unexpected("could not list favorites", err)
	}
	favoriteIDs := make([]int64, 0, len(favorites))
	for i := range favorites {
		favoriteIDs = append(favoriteIDs, favorites[i].BookID)
	}

	likedReviews, err := s.likeRepo.ListLikedReviewIDs(ctx, userID)
	if err != nil {
		return nil, apperr.Unexpected("could not list liked reviews", err)
	}

	likedComments, err := s.likeRepo.ListLikedCommentIDs(ctx, userID)
	if err != nil {
		return nil, apperr.Unexpected("could not list liked comments", err)
	}

	return &dto.ProfileResponse{
		UserResponse:    dto.FromModelToUserResponse(user),
		FavoriteBookIDs: favoriteIDs,
		LikedReviewIDs:  likedReviews,
		LikedCommentIDs: likedComments,
	}, nil
}

// ListUsers returns all accounts; admin only, enforced at the route.
func (s *userService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, apperr.Unexpected("could not list users", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.FromModelToUserResponse(&users[i]))
	}
	return responses, nil
}
