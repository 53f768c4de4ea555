package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/noah-isme/athlete-load-api/internal/dto"
	"github.com/noah-isme/athlete-load-api/internal/models"
	"github.com/noah-isme/athlete-load-api/internal/workload"
)

const seedSquad = "DEV"

var (
	seedPositions = []string{"POR", "DEF", "DEF", "MC", "MC", "DEL"}
	seedBodyZones = []string{"Hombro", "Espalda", "Zona lumbar", "Aductor", "Isquiotibial", "Cuádriceps", "Rodilla", "Gemelo", "Tobillo"}
	seedShifts    = []string{"Shift 1", "Shift 2"}
)

type athleteSeeder interface {
	ListAthletes(ctx context.Context, filter models.AthleteFilter) ([]models.Athlete, error)
	InsertAthletes(ctx context.Context, athletes []models.Athlete) error
}

type wellnessSubmitter interface {
	SubmitCheckIn(ctx context.Context, req dto.CheckInRequest, claims *models.JWTClaims) (*dto.SubmissionResult, error)
	SubmitCheckOut(ctx context.Context, req dto.CheckOutRequest, claims *models.JWTClaims) (*dto.SubmissionResult, error)
}

// SeedOptions controls synthetic data generation.
type SeedOptions struct {
	Days     int
	Athletes int
	Seed     int64
	End      time.Time
	// OnDay, when set, runs before each generated day. Callers use it to move
	// the workflow clock so recorded_at follows the session dates.
	OnDay func(day time.Time)
}

// SeedResult counts what a seed run wrote.
type SeedResult struct {
	Athletes  int
	CheckIns  int
	CheckOuts int
}

// SeedService fills the developer namespace with plausible wellness history
// by driving the regular check-in/check-out workflow.
type SeedService struct {
	roster   athleteSeeder
	workflow wellnessSubmitter
	logger   *zap.Logger
}

// NewSeedService constructs a SeedService.
func NewSeedService(roster athleteSeeder, workflow wellnessSubmitter, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{roster: roster, workflow: workflow, logger: logger}
}

// Seed writes opts.Days of history ending on opts.End. When opts.Athletes is
// positive that many synthetic athletes are added to the DEV squad first;
// otherwise the existing roster is used.
func (s *SeedService) Seed(ctx context.Context, opts SeedOptions) (*SeedResult, error) {
	if opts.Days <= 0 {
		opts.Days = 28
	}
	if opts.End.IsZero() {
		opts.End = time.Now()
	}
	faker := gofakeit.New(opts.Seed)
	claims := &models.JWTClaims{UserID: "seed", Username: "seed", Role: models.RoleDeveloper}

	athletes, err := s.athletes(ctx, faker, opts.Athletes)
	if err != nil {
		return nil, err
	}
	result := &SeedResult{Athletes: len(athletes)}
	if len(athletes) == 0 {
		s.logger.Warn("seed skipped, roster is empty")
		return result, nil
	}

	end := workload.Day(opts.End)
	for offset := opts.Days - 1; offset >= 0; offset-- {
		day := end.AddDate(0, 0, -offset)
		if opts.OnDay != nil {
			opts.OnDay(day)
		}
		date := day.Format(models.DateLayout)
		for _, a := range athletes {
			if faker.Number(1, 100) <= 15 {
				continue
			}
			shift := faker.RandomString(seedShifts)
			checkIn := syntheticCheckIn(faker, a, date, shift)
			if _, err := s.workflow.SubmitCheckIn(ctx, checkIn, claims); err != nil {
				return result, fmt.Errorf("seed check-in %s %s: %w", a.ID, date, err)
			}
			result.CheckIns++

			if faker.Number(1, 100) <= 10 {
				continue
			}
			checkOut := dto.CheckOutRequest{
				AthleteID:      a.ID,
				SessionDate:    date,
				Shift:          shift,
				SessionMinutes: faker.Number(9, 24) * 5,
				RPE:            faker.Number(3, 9),
			}
			if _, err := s.workflow.SubmitCheckOut(ctx, checkOut, claims); err != nil {
				return result, fmt.Errorf("seed check-out %s %s: %w", a.ID, date, err)
			}
			result.CheckOuts++
		}
	}

	s.logger.Info("developer data seeded",
		zap.Int("athletes", result.Athletes),
		zap.Int("check_ins", result.CheckIns),
		zap.Int("check_outs", result.CheckOuts),
	)
	return result, nil
}

func (s *SeedService) athletes(ctx context.Context, faker *gofakeit.Faker, count int) ([]models.Athlete, error) {
	if count <= 0 {
		return s.roster.ListAthletes(ctx, models.AthleteFilter{})
	}
	athletes := make([]models.Athlete, 0, count)
	for i := 1; i <= count; i++ {
		sex := models.SexMale
		if faker.Bool() {
			sex = models.SexFemale
		}
		jersey := i
		nationality := faker.Country()
		athletes = append(athletes, models.Athlete{
			ID:           fmt.Sprintf("dev-%03d", i),
			FirstName:    faker.FirstName(),
			LastName:     faker.LastName(),
			Squad:        seedSquad,
			Position:     faker.RandomString(seedPositions),
			Sex:          sex,
			JerseyNumber: &jersey,
			Nationality:  &nationality,
			Active:       true,
		})
	}
	if err := s.roster.InsertAthletes(ctx, athletes); err != nil {
		return nil, err
	}
	return athletes, nil
}

func syntheticCheckIn(faker *gofakeit.Faker, athlete models.Athlete, date, shift string) dto.CheckInRequest {
	req := dto.CheckInRequest{
		AthleteID:     athlete.ID,
		SessionDate:   date,
		Shift:         shift,
		Recovery:      faker.Number(2, 5),
		Energy:        faker.Number(1, 4),
		Sleep:         faker.Number(2, 5),
		Stress:        faker.Number(1, 4),
		Pain:          faker.Number(1, 3),
		MatchDayPlus:  fmt.Sprintf("MD+%d", faker.Number(1, 3)),
		MatchDayMinus: fmt.Sprintf("MD-%d", faker.Number(1, 6)),
	}
	if req.Pain > 1 {
		req.PainBodyParts = []string{faker.RandomString(seedBodyZones)}
	}
	if athlete.IsFemale() {
		inPeriod := faker.Number(1, 100) <= 20
		req.InMenstrualPeriod = &inPeriod
	}
	return req
}
