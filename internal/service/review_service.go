package service

import (
	"context"
	"fmt"
	"time"

	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/repository"
	"github.com/menu-interativo/back-end/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo repository.ReviewRepository
	logger     zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		logger:     logger.With().Str("service", "review").Logger(),
	}
}

func (s *reviewService) Create(ctx context.Context, req *model.CreateReviewRequest) (uuid.UUID, error) {
	if err := validation.Struct(req); err != nil {
		return uuid.Nil, err
	}

	review := &model.Review{
		ID:        uuid.New(),
		Rating:    req.Rating,
		Category:  req.Category,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Debug().Str("review_id", review.ID.String()).Str("category", req.Category).Msg("review created")
	return review.ID, nil
}

func (s *reviewService) Statistics(ctx context.Context) (*model.ReviewReport, error) {
	reviews, err := s.reviewRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return summarizeReviews(reviews), nil
}

// summarizeReviews computes percentages over all reviews and per-category
// counts in the order categories first appear.
func summarizeReviews(reviews []model.Review) *model.ReviewReport {
	report := &model.ReviewReport{Categories: []model.CategoryReviews{}}

	index := make(map[string]int)
	liked, disliked := 0, 0
	for _, r := range reviews {
		i, ok := index[r.Category]
		if !ok {
			i = len(report.Categories)
			index[r.Category] = i
			report.Categories = append(report.Categories, model.CategoryReviews{Name: r.Category})
		}

		if r.Rating == model.RatingLiked {
			liked++
			report.Categories[i].LikedCount++
		} else {
			report.Categories[i].DislikedCount++
		}
		if r.Rating == model.RatingDisliked {
			disliked++
		}
	}

	if total := len(reviews); total > 0 {
		report.LikedPercentage = float64(liked) / float64(total) * 100
		report.DislikedPercentage = float64(disliked) / float64(total) * 100
	}
	return report
}
