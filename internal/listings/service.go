package listings

import (
	"context"
	"time"

	"listings-search/internal/common/logger"
	"listings-search/internal/common/metrics"
	"listings-search/internal/common/observability"
	"listings-search/internal/search"
)

// Service wires the compiler, the result cache and the repository into one
// search call.
type Service struct {
	compiler *search.Compiler
	repo     *Repository
	cache    *Cache
	obs      *observability.Observability
	log      logger.Logger
}

func NewService(compiler *search.Compiler, repo *Repository, cache *Cache, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{compiler: compiler, repo: repo, cache: cache, obs: obs, log: log}
}

// Search compiles the request, serves from cache when possible and falls
// through to PostgreSQL otherwise.
func (s *Service) Search(ctx context.Context, req *search.SearchRequest, actor search.ActorContext) (*SearchResult, error) {
	start := time.Now()

	compileStart := time.Now()
	cq := s.compiler.BuildListingsQuery(req, actor)
	metrics.SearchCompileDuration.Observe(time.Since(compileStart).Seconds())

	key := s.cache.Key(cq, actor)
	if cached, ok := s.cache.Get(ctx, key); ok {
		s.record(ctx, start, "cache_hit")
		return cached, nil
	}

	result, err := s.repo.Search(ctx, cq)
	if err != nil {
		s.record(ctx, start, "error")
		return nil, err
	}

	s.cache.Set(ctx, key, result)
	s.record(ctx, start, "success")

	s.log.Debug("search executed", map[string]interface{}{
		"role":    string(actor.Role),
		"total":   result.TotalCount,
		"page":    result.Page,
		"context": req.Context,
	})
	return result, nil
}

func (s *Service) record(ctx context.Context, start time.Time, status string) {
	if s.obs == nil {
		return
	}
	s.obs.RecordSearchProcessed(ctx, status)
	s.obs.RecordSearchDuration(ctx, time.Since(start), status)
}
