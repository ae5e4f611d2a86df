package reviews

import (
	"context"

	"github.com/google/uuid"
	"github.com/lankago/tour-marketplace/pkg/logger"
	"github.com/lankago/tour-marketplace/pkg/models"
	"go.uber.org/zap"
)

// Aggregator is the sole writer of the derived rating and total_reviews
// columns on guide and vehicle profiles.
type Aggregator struct {
	repo RepositoryInterface
}

// NewAggregator creates a new rating aggregator
func NewAggregator(repo RepositoryInterface) *Aggregator {
	return &Aggregator{repo: repo}
}

// Recompute rewrites the target's aggregate from its public reviews: mean
// rating rounded to one decimal, and the review count. An empty listing
// resets the target to 0/0. Review mutations recompute inside their own
// transaction; this standalone entry repairs a target out of band.
func (a *Aggregator) Recompute(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID) (*RatingAggregate, error) {
	agg, err := a.repo.RecomputeTargetRating(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Debug("recomputed target rating",
		zap.String("target_type", string(targetType)),
		zap.String("target_id", targetID.String()),
		zap.Float64("average", agg.Average),
		zap.Int("count", agg.Count),
	)
	return agg, nil
}

// Statistics is the aggregator's read path: average, count, star
// distribution, and recommendation rate computed live over the target's
// public reviews rather than read from the denormalized columns, so
// paginated views never see a stale snapshot.
func (a *Aggregator) Statistics(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID) (*ReviewStatistics, error) {
	return a.repo.GetTargetStatistics(ctx, targetType, targetID)
}
