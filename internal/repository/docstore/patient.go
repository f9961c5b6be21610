// Package docstore implements the repositories against the remote document
// store, preserving the tree layout patients/<name> and appointments/<id>.
package docstore

import (
	"context"
	"fmt"

	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/repository"
	"github.com/smileworks/dentaldesk/internal/store"
)

const patientsPath = "patients"

type patientRepository struct {
	store *store.Client
}

func NewPatientRepository(client *store.Client) repository.PatientRepository {
	return &patientRepository{store: client}
}

func (r *patientRepository) ListNames(ctx context.Context) ([]string, error) {
	names, err := r.store.Keys(ctx, patientsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return names, nil
}

func (r *patientRepository) Create(ctx context.Context, name string) error {
	var existing model.Patient
	ok, err := r.store.Get(ctx, patientPath(name), &existing)
	if err != nil {
		return fmt.Errorf("failed to check patient %q: %w", name, err)
	}
	if ok {
		return nil
	}
	patient := &model.Patient{Name: name, Records: []model.Visit{}}
	if err := r.store.Set(ctx, patientPath(name), patient); err != nil {
		return fmt.Errorf("failed to create patient %q: %w", name, err)
	}
	return nil
}

func (r *patientRepository) Load(ctx context.Context, name string) (*model.Patient, error) {
	var patient model.Patient
	ok, err := r.store.Get(ctx, patientPath(name), &patient)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient %q: %w", name, err)
	}
	if !ok {
		// No history yet; a missing document is not an error.
		return &model.Patient{Name: name, Records: []model.Visit{}}, nil
	}
	if patient.Records == nil {
		patient.Records = []model.Visit{}
	}
	return &patient, nil
}

// Save overwrites the whole document. Together with Load this is a
// read-modify-write without a concurrency token: two instances appending to
// the same patient at once can lose one of the writes. Accepted for a
// single-device deployment.
func (r *patientRepository) Save(ctx context.Context, patient *model.Patient) error {
	if err := r.store.Set(ctx, patientPath(patient.Name), patient); err != nil {
		return fmt.Errorf("failed to save patient %q: %w", patient.Name, err)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, name string) error {
	if err := r.store.Delete(ctx, patientPath(name)); err != nil {
		return fmt.Errorf("failed to delete patient %q: %w", name, err)
	}
	return nil
}

func patientPath(name string) string {
	return patientsPath + "/" + name
}
