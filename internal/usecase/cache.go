package usecase

import (
	"context"

	"cinema-reservation/pkg/cache"

	"go.uber.org/zap"
)

// movieSessionsNamespace scopes the cached screening listings. Anything
// that changes a listing row (show time, titles, hall capacity, sold
// tickets) must bump it.
const movieSessionsNamespace = "movie_sessions"

func invalidateSessionList(ctx context.Context, c cache.Cache, log *zap.Logger) {
	if err := c.Invalidate(ctx, movieSessionsNamespace); err != nil {
		log.Warn("Failed to invalidate movie session cache", zap.Error(err))
	}
}
