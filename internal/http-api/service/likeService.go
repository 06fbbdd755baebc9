package service

import (
	"context"
	"errors"

	"bookhive/internal/http-api/apperr"
	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

// LikeService toggles like membership for reviews and comments. The like
// relation lives in one row per (user, target), so add and remove are atomic
// and the toggle is an involution: like then unlike restores the prior state
// on both sides.
type LikeService interface {
	ToggleReviewLike(ctx context.Context, reviewID int64, userID string) (*dto.LikeToggleResponse, error)
	ToggleCommentLike(ctx context.Context, commentID int64, userID string) (*dto.LikeToggleResponse, error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	reviewRepo  repository.ReviewRepository
	commentRepo repository.CommentRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	reviewRepo repository.ReviewRepository,
	commentRepo repository.CommentRepository,
) LikeService {
	return &likeService{
		likeRepo:    likeRepo,
		reviewRepo:  reviewRepo,
		commentRepo: commentRepo,
	}
}

func (s *likeService) ToggleReviewLike(ctx context.Context, reviewID int64, userID string) (*dto.LikeToggleResponse, error) {
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, apperr.Unexpected("could not load review", err)
	}

	liked, err := s.likeRepo.ReviewLikeExists(ctx, userID, reviewID)
	if err != nil {
		return nil, apperr.Unexpected("could not check like state", err)
	}

	if liked {
		if err := s.likeRepo.RemoveReviewLike(ctx, userID, reviewID); err != nil {
			return nil, apperr.Unexpected("could not unlike review", err)
		}
	} else {
		if err := s.likeRepo.AddReviewLike(ctx, userID, reviewID); err != nil {
			return nil, apperr.Unexpected("could not like review", err)
		}
	}

	count, err := s.likeRepo.CountReviewLikes(ctx, reviewID)
	if err != nil {
		return nil, apperr.Unexpected("could not count likes", err)
	}

	return &dto.LikeToggleResponse{Liked: !liked, Likes: count}, nil
}

func (s *likeService) ToggleCommentLike(ctx context.Context, commentID int64, userID string) (*dto.LikeToggleResponse, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, apperr.Unexpected("could not load comment", err)
	}

	liked, err := s.likeRepo.CommentLikeExists(ctx, userID, commentID)
	if err != nil {
		return nil, apperr.Unexpected("could not check like state", err)
	}

	if liked {
		if err := s.likeRepo.RemoveCommentLike(ctx, userID, commentID); err != nil {
			return nil, apperr.Unexpected("could not unlike comment", err)
		}
	} else {
		if err := s.likeRepo.AddCommentLike(ctx, userID, commentID); err != nil {
			return nil, apperr.Unexpected("could not like comment", err)
		}
	}

	count, err := s.likeRepo.CountCommentLikes(ctx, commentID)
	if err != nil {
		return nil, apperr.Unexpected("could not count likes", err)
	}

	return &dto.LikeToggleResponse{Liked: !liked, Likes: count}, nil
}
