package patient

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/repository"
)

type Service struct {
	repo   repository.PatientRepository
	logger zerolog.Logger
}

func NewService(repo repository.PatientRepository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("service", "patient").Logger(),
	}
}

func (s *Service) ListNames(ctx context.Context) ([]string, error) {
	return s.repo.ListNames(ctx)
}

func (s *Service) Create(ctx context.Context, name string) error {
	return s.repo.Create(ctx, name)
}

// Load returns the patient's record together with its balance summary. A
// patient with no document yet comes back with an empty history, not an
// error.
func (s *Service) Load(ctx context.Context, name string) (*model.PatientRecord, error) {
	patient, err := s.repo.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return &model.PatientRecord{
		Patient: patient,
		Summary: AggregateBalances(patient),
	}, nil
}

// AddVisit validates the monetary fields, computes the balance, and appends
// the visit to the patient's history, creating the patient on first visit.
// Validation happens before any store interaction so a bad amount writes
// nothing.
func (s *Service) AddVisit(ctx context.Context, name string, req *model.AddVisitRequest) (*model.Visit, error) {
	charged, err := parseAmount(req.AmountCharged, "amount_charged")
	if err != nil {
		return nil, err
	}
	paid, err := parseAmount(req.AmountPaid, "amount_paid")
	if err != nil {
		return nil, err
	}

	visit := model.Visit{
		Age:           normalize(req.Age),
		Gender:        normalize(req.Gender),
		Contact:       normalize(req.Contact),
		NextOfKin:     normalize(req.NextOfKin),
		ChiefComplain: normalize(req.ChiefComplain),
		HPC:           normalize(req.HPC),
		PDH:           normalize(req.PDH),
		PMH:           normalize(req.PMH),
		Diagnosis:     normalize(req.Diagnosis),
		Treatment:     normalize(req.Treatment),
		Management:    normalize(req.Management),
		Medication:    normalize(req.Medication),
		AmountCharged: charged,
		AmountPaid:    paid,
		Balance:       charged - paid,
	}

	patient, err := s.repo.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	patient.Records = append(patient.Records, visit)

	if err := s.repo.Save(ctx, patient); err != nil {
		return nil, err
	}

	s.logger.Info().Str("patient", name).Int("visits", len(patient.Records)).Msg("visit added")
	return &visit, nil
}

func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.logger.Info().Str("patient", name).Msg("patient deleted")
	return nil
}

// AggregateBalances sums charges and payments across every visit, treating
// the stored balance as derived: outstanding is recomputed from the totals.
func AggregateBalances(patient *model.Patient) model.BalanceSummary {
	var summary model.BalanceSummary
	for _, visit := range patient.Records {
		summary.TotalCharged += visit.AmountCharged
		summary.TotalPaid += visit.AmountPaid
	}
	summary.Outstanding = summary.TotalCharged - summary.TotalPaid
	return summary
}

// FilterNames keeps the names containing substring, case-insensitively,
// preserving input order.
func FilterNames(names []string, substring string) []string {
	needle := strings.ToLower(substring)
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

func parseAmount(raw, field string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q is not a number", model.ErrInvalidAmount, field, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", model.ErrInvalidAmount, field)
	}
	return v, nil
}

// normalize maps empty form fields to absent so "N/A" substitution stays a
// render-time concern, never a stored sentinel.
func normalize(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
