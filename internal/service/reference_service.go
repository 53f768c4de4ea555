package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/athlete-load-api/internal/models"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
)

type referenceRepository interface {
	ListAthletes(ctx context.Context, filter models.AthleteFilter) ([]models.Athlete, error)
	GetAthlete(ctx context.Context, id string) (*models.Athlete, error)
	ListCompetitions(ctx context.Context) ([]models.Competition, error)
	ListCatalog(ctx context.Context, name string) ([]models.CatalogEntry, error)
}

// ReferenceService serves roster, competition and catalog data through the
// reference cache.
type ReferenceService struct {
	repo   referenceRepository
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewReferenceService constructs the service. ttl defaults to one hour.
func NewReferenceService(repo referenceRepository, cache *CacheService, ttl time.Duration, logger *zap.Logger) *ReferenceService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Athletes lists active athletes filtered by squad and position.
func (s *ReferenceService) Athletes(ctx context.Context, filter models.AthleteFilter) ([]models.Athlete, error) {
	key := ReferenceKey("athletes", filter.Squad, filter.Position)
	var athletes []models.Athlete
	if s.cache.Get(ctx, key, &athletes) {
		return athletes, nil
	}
	athletes, err := s.repo.ListAthletes(ctx, filter)
	if err != nil {
		return nil, err
	}
	if athletes == nil {
		athletes = []models.Athlete{}
	}
	s.cache.Set(ctx, key, athletes, s.ttl)
	return athletes, nil
}

// Athlete returns a single athlete or a NOT_FOUND error.
func (s *ReferenceService) Athlete(ctx context.Context, id string) (*models.Athlete, error) {
	athlete, err := s.repo.GetAthlete(ctx, id)
	if err != nil {
		return nil, err
	}
	if athlete == nil {
		return nil, appErrors.NotFound("athlete " + id + " not found")
	}
	return athlete, nil
}

// Competitions lists every competition.
func (s *ReferenceService) Competitions(ctx context.Context) ([]models.Competition, error) {
	key := ReferenceKey("competitions")
	var competitions []models.Competition
	if s.cache.Get(ctx, key, &competitions) {
		return competitions, nil
	}
	competitions, err := s.repo.ListCompetitions(ctx)
	if err != nil {
		return nil, err
	}
	if competitions == nil {
		competitions = []models.Competition{}
	}
	s.cache.Set(ctx, key, competitions, s.ttl)
	return competitions, nil
}

// Catalog returns the entries of a named catalog.
func (s *ReferenceService) Catalog(ctx context.Context, name string) ([]models.CatalogEntry, error) {
	if !models.ValidCatalog(name) {
		return nil, appErrors.NotFound("catalog " + name + " not found")
	}
	key := ReferenceKey("catalog", name)
	var entries []models.CatalogEntry
	if s.cache.Get(ctx, key, &entries) {
		return entries, nil
	}
	entries, err := s.repo.ListCatalog(ctx, name)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.CatalogEntry{}
	}
	s.cache.Set(ctx, key, entries, s.ttl)
	return entries, nil
}

// CatalogEntryName resolves an entry id to its name, returning "" when the
// id is unknown.
func (s *ReferenceService) CatalogEntryName(ctx context.Context, catalog string, id int64) (string, error) {
	entries, err := s.Catalog(ctx, catalog)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.ID == id {
			return e.Name, nil
		}
	}
	return "", nil
}

// AthleteIDs resolves a squad/position filter to athlete ids. ok is false
// when the filter is empty and every athlete should match.
func (s *ReferenceService) AthleteIDs(ctx context.Context, filter models.AthleteFilter) (ids []string, ok bool, err error) {
	if strings.TrimSpace(filter.Squad) == "" && strings.TrimSpace(filter.Position) == "" {
		return nil, false, nil
	}
	athletes, err := s.Athletes(ctx, filter)
	if err != nil {
		return nil, true, err
	}
	ids = make([]string, 0, len(athletes))
	for _, a := range athletes {
		ids = append(ids, a.ID)
	}
	return ids, true, nil
}

// degraded reports whether err is a store outage that a read should absorb.
func degraded(err error) bool {
	return errors.Is(err, appErrors.ErrStoreUnavailable)
}
