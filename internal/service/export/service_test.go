package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smileworks/dentaldesk/internal/model"
)

type fakePatients struct {
	docs map[string]*model.Patient
}

func (r *fakePatients) ListNames(context.Context) ([]string, error) { return nil, nil }
func (r *fakePatients) Create(context.Context, string) error        { return nil }
func (r *fakePatients) Save(context.Context, *model.Patient) error  { return nil }
func (r *fakePatients) Delete(context.Context, string) error        { return nil }

func (r *fakePatients) Load(_ context.Context, name string) (*model.Patient, error) {
	if doc, ok := r.docs[name]; ok {
		return doc, nil
	}
	return &model.Patient{Name: name, Records: []model.Visit{}}, nil
}

func strptr(s string) *string { return &s }

func visitedPatient(name string, visits int) *model.Patient {
	p := &model.Patient{Name: name}
	for i := 0; i < visits; i++ {
		p.Records = append(p.Records, model.Visit{
			Diagnosis:     strptr("caries"),
			Treatment:     strptr("filling"),
			AmountCharged: 120,
			AmountPaid:    50,
			Balance:       70,
		})
	}
	return p
}

func TestExportNoHistorySignalsNoData(t *testing.T) {
	svc := NewService(&fakePatients{docs: map[string]*model.Patient{}}, zerolog.Nop())

	// Destination is deliberately set: the no-data check must come first
	// and nothing may be written.
	dest := filepath.Join(t.TempDir(), "out.pdf")
	result, err := svc.ExportPatient(context.Background(), "John Doe", dest)
	require.NoError(t, err)
	assert.Equal(t, model.ExportStatusNoData, result.Status)
	assert.Empty(t, result.Path)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportWithoutDestinationSignalsCancelled(t *testing.T) {
	repo := &fakePatients{docs: map[string]*model.Patient{
		"Jane Doe": visitedPatient("Jane Doe", 1),
	}}
	svc := NewService(repo, zerolog.Nop())

	result, err := svc.ExportPatient(context.Background(), "Jane Doe", "")
	require.NoError(t, err)
	assert.Equal(t, model.ExportStatusCancelled, result.Status)
	assert.Empty(t, result.Path)
}

func TestExportWritesDocument(t *testing.T) {
	repo := &fakePatients{docs: map[string]*model.Patient{
		"Jane Doe": visitedPatient("Jane Doe", 2),
	}}
	svc := NewService(repo, zerolog.Nop())

	dest := filepath.Join(t.TempDir(), "Jane_Doe_history.pdf")
	result, err := svc.ExportPatient(context.Background(), "Jane Doe", dest)
	require.NoError(t, err)
	assert.Equal(t, model.ExportStatusExported, result.Status)
	assert.Equal(t, dest, result.Path)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportLongHistoryPaginates(t *testing.T) {
	// 40 visits at 16 lines each is well past one page.
	repo := &fakePatients{docs: map[string]*model.Patient{
		"Jane Doe": visitedPatient("Jane Doe", 40),
	}}
	svc := NewService(repo, zerolog.Nop())

	dest := filepath.Join(t.TempDir(), "long.pdf")
	result, err := svc.ExportPatient(context.Background(), "Jane Doe", dest)
	require.NoError(t, err)
	assert.Equal(t, model.ExportStatusExported, result.Status)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestVisitLinesFixedOrderAndPlaceholders(t *testing.T) {
	lines := visitLines(model.Visit{
		Gender:        strptr("F"),
		AmountCharged: 120,
		AmountPaid:    50,
		Balance:       70,
	})

	require.Len(t, lines, 15)
	assert.Equal(t, "Age: N/A", lines[0])
	assert.Equal(t, "Gender: F", lines[1])
	assert.Equal(t, "Contact: N/A", lines[2])
	assert.Equal(t, "Next of Kin: N/A", lines[3])
	assert.Equal(t, "Chief Complaint: N/A", lines[4])
	assert.Equal(t, "HPC: N/A", lines[5])
	assert.Equal(t, "PDH: N/A", lines[6])
	assert.Equal(t, "PMH: N/A", lines[7])
	assert.Equal(t, "Diagnosis: N/A", lines[8])
	assert.Equal(t, "Treatment: N/A", lines[9])
	assert.Equal(t, "Management: N/A", lines[10])
	assert.Equal(t, "Amount Charged: Ksh120.00", lines[11])
	assert.Equal(t, "Amount Paid: Ksh50.00", lines[12])
	assert.Equal(t, "Balance: Ksh70.00", lines[13])
	assert.Equal(t, "Medication: N/A", lines[14])
}
