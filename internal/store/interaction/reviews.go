// internal/store/interaction/reviews.go
package interaction

import (
	"math"
	"strings"

	"uniautomarket/internal/common/metrics"
	"uniautomarket/internal/models"

	apperrors "uniautomarket/internal/common/errors"
)

// ReviewSpec is the payload for a new review.
type ReviewSpec struct {
	BusinessID string
	Rating     int
	Comment    string
}

// CreateReview requires a logged-in client; business owners and admins
// do not rate businesses. Ratings are whole stars from 1 to 5.
func (s *Store) CreateReview(spec ReviewSpec) (models.Review, error) {
	if strings.TrimSpace(spec.BusinessID) == "" {
		return models.Review{}, apperrors.NewInvalidInputError("businessId is required")
	}
	if spec.Rating < 1 || spec.Rating > 5 {
		return models.Review{}, apperrors.NewInvalidInputError("rating must be between 1 and 5")
	}

	actor, ok := s.session.CurrentActor()
	if !ok || actor.Role != models.RoleClient {
		return models.Review{}, apperrors.NewForbiddenError("create review")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := models.Review{
		ID:         s.newID(),
		BusinessID: spec.BusinessID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Rating:     spec.Rating,
		Comment:    spec.Comment,
		CreatedAt:  s.now().UTC(),
	}
	s.reviews = append(s.reviews, r)
	metrics.InteractionEvents.WithLabelValues("review_created").Inc()

	if owner, found := s.session.ActorForBusiness(spec.BusinessID); found {
		s.pushNotification(owner.ID, models.NotifyReview,
			"Nueva reseña", actor.Name+" ha dejado una reseña en tu negocio")
	}
	return r, nil
}

// ReplyReview attaches the business answer to a review. Replying again
// overwrites the previous answer.
func (s *Store) ReplyReview(id, text string) (models.Review, error) {
	if strings.TrimSpace(text) == "" {
		return models.Review{}, apperrors.NewInvalidInputError("reply text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reviews {
		if s.reviews[i].ID != id {
			continue
		}
		if !s.session.CanEditBusiness(s.reviews[i].BusinessID) {
			return models.Review{}, apperrors.NewForbiddenError("reply review")
		}
		s.reviews[i].BusinessReply = text
		s.reviews[i].RepliedAt = s.now().UTC()
		metrics.InteractionEvents.WithLabelValues("review_replied").Inc()

		s.pushNotification(s.reviews[i].AuthorID, models.NotifyReview,
			"Respuesta a tu reseña", "El negocio ha respondido tu reseña")
		return s.reviews[i], nil
	}
	return models.Review{}, apperrors.NewNotFoundError("review", id)
}

// ReviewsForBusiness lists every review of a business, oldest first.
func (s *Store) ReviewsForBusiness(businessID string) []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Review
	for _, r := range s.reviews {
		if r.BusinessID == businessID {
			out = append(out, r)
		}
	}
	return out
}

// AverageRating is the mean of all ratings rounded to one decimal, or 0
// when the business has no reviews.
func (s *Store) AverageRating(businessID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, count := 0, 0
	for _, r := range s.reviews {
		if r.BusinessID == businessID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}
