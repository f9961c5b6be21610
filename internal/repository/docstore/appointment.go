package docstore

import (
	"context"
	"fmt"

	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/repository"
	"github.com/smileworks/dentaldesk/internal/store"
)

const appointmentsPath = "appointments"

type appointmentRepository struct {
	store *store.Client
}

func NewAppointmentRepository(client *store.Client) repository.AppointmentRepository {
	return &appointmentRepository{store: client}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) (string, error) {
	id, err := r.store.Push(ctx, appointmentsPath, appt)
	if err != nil {
		return "", fmt.Errorf("failed to create appointment: %w", err)
	}
	return id, nil
}

func (r *appointmentRepository) ListByDate(ctx context.Context, date string) (map[string]model.Appointment, error) {
	appts := make(map[string]model.Appointment)
	if _, err := r.store.QueryEqual(ctx, appointmentsPath, "date", date, &appts); err != nil {
		return nil, fmt.Errorf("failed to query appointments for %s: %w", date, err)
	}
	return appts, nil
}

func (r *appointmentRepository) ListAll(ctx context.Context) (map[string]model.Appointment, error) {
	appts := make(map[string]model.Appointment)
	if _, err := r.store.Get(ctx, appointmentsPath, &appts); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, appointmentsPath+"/"+id); err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	return nil
}
