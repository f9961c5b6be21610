package repository

import (
	"context"

	"github.com/smileworks/dentaldesk/internal/model"
)

type PatientRepository interface {
	// ListNames returns every patient key, in store-native order. An empty
	// store yields an empty slice, never an error.
	ListNames(ctx context.Context) ([]string, error)
	// Create writes an empty patient document unless one already exists.
	Create(ctx context.Context, name string) error
	// Load fetches the patient document. A miss synthesizes an empty
	// patient; a present document with no records slice is repaired to an
	// empty one (never written back).
	Load(ctx context.Context, name string) (*model.Patient, error)
	// Save replaces the whole patient document.
	Save(ctx context.Context, patient *model.Patient) error
	// Delete removes the document and every embedded visit irrevocably.
	Delete(ctx context.Context, name string) error
}

type AppointmentRepository interface {
	// Create pushes a new appointment under a store-generated key and
	// returns that key.
	Create(ctx context.Context, appt *model.Appointment) (string, error)
	// ListByDate returns appointments whose date equals the given
	// YYYY-MM-DD value, keyed by id. Empty map when none match.
	ListByDate(ctx context.Context, date string) (map[string]model.Appointment, error)
	// ListAll returns every appointment keyed by id. Empty map when the
	// store has none.
	ListAll(ctx context.Context) (map[string]model.Appointment, error)
	// Delete removes the appointment; deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
}

type ActivationRepository interface {
	// Get returns the activation record for a device, or nil when the
	// device has never requested activation.
	Get(ctx context.Context, deviceID string) (*model.Activation, error)
	// Save writes the activation record for its device.
	Save(ctx context.Context, rec *model.Activation) error
}
