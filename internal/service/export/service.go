// Package export renders a patient's full visit history into a paginated
// PDF document.
package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/repository"
)

const (
	leftMargin = 50.0
	topMargin  = 50.0
	// A line written past this point starts a new page first.
	bottomMargin = 742.0
	lineHeight   = 20.0
)

type Service struct {
	patients repository.PatientRepository
	logger   zerolog.Logger
}

func NewService(patients repository.PatientRepository, logger zerolog.Logger) *Service {
	return &Service{
		patients: patients,
		logger:   logger.With().Str("service", "export").Logger(),
	}
}

// ExportPatient writes the patient's visit history to destination. The
// result is tagged: no visit history short-circuits before the destination
// is even considered, and an empty destination means the save dialog was
// cancelled. Both are ordinary outcomes, not errors.
func (s *Service) ExportPatient(ctx context.Context, name, destination string) (*model.ExportResult, error) {
	patient, err := s.patients.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(patient.Records) == 0 {
		return &model.ExportResult{Status: model.ExportStatusNoData}, nil
	}
	if destination == "" {
		return &model.ExportResult{Status: model.ExportStatusCancelled}, nil
	}

	if err := s.render(patient, destination); err != nil {
		return nil, fmt.Errorf("failed to export patient %q: %w", name, err)
	}

	s.logger.Info().Str("patient", name).Str("path", destination).Msg("record exported")
	return &model.ExportResult{Status: model.ExportStatusExported, Path: destination}, nil
}

func (s *Service) render(patient *model.Patient, destination string) error {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(leftMargin, topMargin, fmt.Sprintf("Patient Record: %s", patient.Name))

	pdf.SetFont("Helvetica", "", 12)
	y := topMargin + 30

	writeLine := func(line string) {
		if y > bottomMargin {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 12)
			y = topMargin
		}
		pdf.Text(leftMargin, y, line)
		y += lineHeight
	}

	for _, visit := range patient.Records {
		for _, line := range visitLines(visit) {
			writeLine(line)
		}
		writeLine(strings.Repeat("-", 50))
		y -= lineHeight / 2
	}

	return pdf.OutputFileAndClose(destination)
}

// visitLines produces the fixed-order field dump for one visit. Absent text
// fields render as "N/A"; monetary fields always render as amounts.
func visitLines(visit model.Visit) []string {
	return []string{
		"Age: " + textOrNA(visit.Age),
		"Gender: " + textOrNA(visit.Gender),
		"Contact: " + textOrNA(visit.Contact),
		"Next of Kin: " + textOrNA(visit.NextOfKin),
		"Chief Complaint: " + textOrNA(visit.ChiefComplain),
		"HPC: " + textOrNA(visit.HPC),
		"PDH: " + textOrNA(visit.PDH),
		"PMH: " + textOrNA(visit.PMH),
		"Diagnosis: " + textOrNA(visit.Diagnosis),
		"Treatment: " + textOrNA(visit.Treatment),
		"Management: " + textOrNA(visit.Management),
		fmt.Sprintf("Amount Charged: Ksh%.2f", visit.AmountCharged),
		fmt.Sprintf("Amount Paid: Ksh%.2f", visit.AmountPaid),
		fmt.Sprintf("Balance: Ksh%.2f", visit.Balance),
		"Medication: " + textOrNA(visit.Medication),
	}
}

func textOrNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
