package appointment

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/repository"
)

const dateLayout = "2006-01-02"

type Service struct {
	repo   repository.AppointmentRepository
	now    func() time.Time
	logger zerolog.Logger
}

func NewService(repo repository.AppointmentRepository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		now:    time.Now,
		logger: logger.With().Str("service", "appointment").Logger(),
	}
}

// WithClock replaces the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Add(ctx context.Context, req *model.CreateAppointmentRequest) (string, error) {
	appt := &model.Appointment{
		PatientName: req.PatientName,
		Contact:     req.Contact,
		Reason:      req.Reason,
		Date:        req.Date,
		Time:        req.Time,
	}
	id, err := s.repo.Create(ctx, appt)
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("id", id).Str("date", appt.Date).Msg("appointment added")
	return id, nil
}

// ListToday returns the appointments for the current calendar day, keyed by
// id. The store query matches the canonical YYYY-MM-DD form; entries whose
// stored date does not parse as that form are dropped rather than trusted.
func (s *Service) ListToday(ctx context.Context) (map[string]model.Appointment, error) {
	today := s.now().Format(dateLayout)
	appts, err := s.repo.ListByDate(ctx, today)
	if err != nil {
		return nil, err
	}
	for id, appt := range appts {
		if _, err := time.Parse(dateLayout, appt.Date); err != nil {
			delete(appts, id)
		}
	}
	return appts, nil
}

// ListAll unpacks every appointment into rows ordered by date then time.
func (s *Service) ListAll(ctx context.Context) ([]model.AppointmentRow, error) {
	appts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]model.AppointmentRow, 0, len(appts))
	for id, appt := range appts {
		rows = append(rows, model.AppointmentRow{
			ID:          id,
			PatientName: appt.PatientName,
			Contact:     appt.Contact,
			Reason:      appt.Reason,
			Date:        appt.Date,
			Time:        appt.Time,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].Time != rows[j].Time {
			return rows[i].Time < rows[j].Time
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("appointment deleted")
	return nil
}
