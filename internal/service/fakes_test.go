package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/athlete-load-api/internal/models"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
)

var fixedNow = time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func coachClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-coach", Username: "coach", Role: models.RoleCoach}
}

func developerClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-dev", Username: "dev", Role: models.RoleDeveloper}
}

func unavailable() error {
	return appErrors.Wrap(fmt.Errorf("dial tcp: connection refused"), appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
}

// fakeWellnessStore keeps records in memory keyed by natural key.
type fakeWellnessStore struct {
	mu      sync.Mutex
	rows    map[string]models.WellnessRecord
	seq     int
	err     error
	filters []models.WellnessFilter
}

func newFakeWellnessStore() *fakeWellnessStore {
	return &fakeWellnessStore{rows: make(map[string]models.WellnessRecord)}
}

func (f *fakeWellnessStore) put(rec models.WellnessRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec.ID == "" {
		f.seq++
		rec.ID = fmt.Sprintf("rec-%d", f.seq)
	}
	f.rows[rec.Key().String()] = rec
}

func (f *fakeWellnessStore) FindByKey(ctx context.Context, key models.WellnessKey) (*models.WellnessRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.rows[key.String()]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeWellnessStore) UpsertCheckIn(ctx context.Context, rec *models.WellnessRecord) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	existing, ok := f.rows[rec.Key().String()]
	if ok {
		rec.ID = existing.ID
	} else {
		f.seq++
		rec.ID = fmt.Sprintf("rec-%d", f.seq)
	}
	f.rows[rec.Key().String()] = *rec
	return !ok, nil
}

func (f *fakeWellnessStore) ApplyCheckOut(ctx context.Context, key models.WellnessKey, fields models.CheckOutFields) (*models.WellnessRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.rows[key.String()]
	if !ok {
		return nil, nil
	}
	minutes, rpe, load := fields.SessionMinutes, fields.RPE, fields.TrainingLoad
	rec.Phase = models.PhaseCheckOut
	rec.SessionMinutes = &minutes
	rec.RPE = &rpe
	rec.TrainingLoad = &load
	rec.RecordedBy = fields.RecordedBy
	rec.RecordedAt = fields.RecordedAt
	f.rows[key.String()] = rec
	return &rec, nil
}

func (f *fakeWellnessStore) DeleteMany(ctx context.Context, namespace models.Namespace, ids []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for k, rec := range f.rows {
		if rec.Namespace == namespace && containsString(ids, rec.ID) {
			delete(f.rows, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeWellnessStore) matching(filter models.WellnessFilter) []models.WellnessRecord {
	out := []models.WellnessRecord{}
	for _, rec := range f.rows {
		if rec.Namespace != filter.Namespace {
			continue
		}
		if len(filter.AthleteIDs) > 0 && !containsString(filter.AthleteIDs, rec.AthleteID) {
			continue
		}
		if filter.Shift != nil && rec.Shift != *filter.Shift {
			continue
		}
		if filter.Phase != nil && rec.Phase != *filter.Phase {
			continue
		}
		if filter.From != nil && rec.SessionDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rec.SessionDate.After(*filter.To) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SessionDate.Equal(out[j].SessionDate) {
			return out[i].SessionDate.Before(out[j].SessionDate)
		}
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out
}

func (f *fakeWellnessStore) List(ctx context.Context, filter models.WellnessFilter) ([]models.WellnessRecord, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, 0, f.err
	}
	rows := f.matching(filter)
	total := len(rows)
	start := (filter.Page - 1) * filter.PageSize
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return rows[start:end], total, nil
}

func (f *fakeWellnessStore) Series(ctx context.Context, filter models.WellnessFilter) ([]models.WellnessRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return f.matching(filter), nil
}

// fakeRoster serves athletes and the stimulus catalog.
type fakeRoster struct {
	athletes map[string]models.Athlete
	stimulus map[int64]string
	err      error
	inserted []models.Athlete
}

func newFakeRoster(athletes ...models.Athlete) *fakeRoster {
	r := &fakeRoster{
		athletes: make(map[string]models.Athlete),
		stimulus: map[int64]string{1: "Extensivo", 6: "Readaptación"},
	}
	for _, a := range athletes {
		r.athletes[a.ID] = a
	}
	return r
}

func (r *fakeRoster) Athlete(ctx context.Context, id string) (*models.Athlete, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.athletes[id]
	if !ok {
		return nil, appErrors.NotFound("athlete " + id + " not found")
	}
	return &a, nil
}

func (r *fakeRoster) Athletes(ctx context.Context, filter models.AthleteFilter) ([]models.Athlete, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Athlete{}
	for _, a := range r.athletes {
		if filter.Squad != "" && a.Squad != filter.Squad {
			continue
		}
		if filter.Position != "" && a.Position != filter.Position {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRoster) ListAthletes(ctx context.Context, filter models.AthleteFilter) ([]models.Athlete, error) {
	return r.Athletes(ctx, filter)
}

func (r *fakeRoster) InsertAthletes(ctx context.Context, athletes []models.Athlete) error {
	if r.err != nil {
		return r.err
	}
	for _, a := range athletes {
		r.athletes[a.ID] = a
	}
	r.inserted = append(r.inserted, athletes...)
	return nil
}

func (r *fakeRoster) AthleteIDs(ctx context.Context, filter models.AthleteFilter) ([]string, bool, error) {
	if filter.Squad == "" && filter.Position == "" {
		return nil, false, nil
	}
	athletes, err := r.Athletes(ctx, filter)
	if err != nil {
		return nil, true, err
	}
	ids := make([]string, 0, len(athletes))
	for _, a := range athletes {
		ids = append(ids, a.ID)
	}
	return ids, true, nil
}

func (r *fakeRoster) CatalogEntryName(ctx context.Context, catalog string, id int64) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.stimulus[id], nil
}

// memoryCache is an in-process CacheRepository.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]interface{})}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *[]models.Athlete:
		*d = v.([]models.Athlete)
	case *[]models.Competition:
		*d = v.([]models.Competition)
	case *[]models.CatalogEntry:
		*d = v.([]models.CatalogEntry)
	default:
		return fmt.Errorf("memory cache: unsupported destination %T", dest)
	}
	return nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	return nil
}

var (
	lucia = models.Athlete{ID: "ath-1", FirstName: "Lucia", LastName: "Ramos", Squad: "U19", Position: "DEF", Sex: models.SexFemale, Active: true}
	marco = models.Athlete{ID: "ath-2", FirstName: "Marco", LastName: "Vidal", Squad: "U19", Position: "DEL", Sex: models.SexMale, Active: true}
	pablo = models.Athlete{ID: "ath-3", FirstName: "Pablo", LastName: "Soto", Squad: "FIRST", Position: "MC", Sex: models.SexMale, Active: true}
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }
