package activation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smileworks/dentaldesk/internal/email"
	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/repository"
)

// Service owns the per-device approval gate. A device is approved only once
// the developer flips its activation record; until then the main interface
// stays closed.
type Service struct {
	repo       repository.ActivationRepository
	emailSvc   email.Service
	adminEmail string
	now        func() time.Time
	logger     zerolog.Logger
}

func NewService(repo repository.ActivationRepository, emailSvc email.Service, adminEmail string, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		emailSvc:   emailSvc,
		adminEmail: adminEmail,
		now:        time.Now,
		logger:     logger.With().Str("service", "activation").Logger(),
	}
}

// IsApproved reports whether the device may use the system. A device with no
// activation record is simply not approved.
func (s *Service) IsApproved(ctx context.Context, deviceID string) (bool, error) {
	rec, err := s.repo.Get(ctx, deviceID)
	if err != nil {
		return false, err
	}
	return rec != nil && rec.Approved, nil
}

// RecordRequest registers a pending activation request for the device and
// notifies the admin by email. A repeat request for the same device is a
// no-op so an earlier approval is never clobbered. The notification is best
// effort; a mail failure is logged but does not fail the request.
func (s *Service) RecordRequest(ctx context.Context, reqEmail, deviceID string) error {
	existing, err := s.repo.Get(ctx, deviceID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	rec := &model.Activation{
		Email:       reqEmail,
		DeviceID:    deviceID,
		Approved:    false,
		RequestedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return err
	}

	if s.adminEmail != "" {
		subject := "New activation request"
		content := fmt.Sprintf("New activation request:\nEmail: %s\nDevice ID: %s\n", reqEmail, deviceID)
		if err := s.emailSvc.SendCustom(ctx, s.adminEmail, subject, content); err != nil {
			s.logger.Warn().Err(err).Str("device_id", deviceID).Msg("activation notification failed")
		}
	}

	s.logger.Info().Str("device_id", deviceID).Msg("activation request recorded")
	return nil
}
