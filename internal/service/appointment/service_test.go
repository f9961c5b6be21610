package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smileworks/dentaldesk/internal/model"
)

type fakeRepo struct {
	docs   map[string]model.Appointment
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[string]model.Appointment)}
}

func (r *fakeRepo) Create(_ context.Context, appt *model.Appointment) (string, error) {
	r.nextID++
	id := string(rune('a' + r.nextID - 1))
	r.docs[id] = *appt
	return id, nil
}

func (r *fakeRepo) ListByDate(_ context.Context, date string) (map[string]model.Appointment, error) {
	out := make(map[string]model.Appointment)
	for id, appt := range r.docs {
		if appt.Date == date {
			out[id] = appt
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAll(context.Context) (map[string]model.Appointment, error) {
	out := make(map[string]model.Appointment, len(r.docs))
	for id, appt := range r.docs {
		out[id] = appt
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

func fixedClock(date string) func() time.Time {
	parsed, _ := time.Parse("2006-01-02", date)
	return func() time.Time { return parsed }
}

func newTestService(repo *fakeRepo, today string) *Service {
	return NewService(repo, zerolog.Nop()).WithClock(fixedClock(today))
}

func TestAddReturnsGeneratedID(t *testing.T) {
	svc := newTestService(newFakeRepo(), "2026-08-28")

	id, err := svc.Add(context.Background(), &model.CreateAppointmentRequest{
		PatientName: "Jane Doe",
		Contact:     "0712000000",
		Reason:      "checkup",
		Date:        "2026-08-28",
		Time:        "09:30",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestListTodayFiltersByCurrentDate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2026-08-28")

	_, err := svc.Add(context.Background(), &model.CreateAppointmentRequest{
		PatientName: "Old Entry", Contact: "1", Reason: "x", Date: "2024-01-01", Time: "08:00",
	})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), &model.CreateAppointmentRequest{
		PatientName: "Jane Doe", Contact: "2", Reason: "y", Date: "2026-08-28", Time: "09:30",
	})
	require.NoError(t, err)

	today, err := svc.ListToday(context.Background())
	require.NoError(t, err)
	require.Len(t, today, 1)
	for _, appt := range today {
		assert.Equal(t, "Jane Doe", appt.PatientName)
	}
}

func TestListTodayEmptyStore(t *testing.T) {
	svc := newTestService(newFakeRepo(), "2026-08-28")

	today, err := svc.ListToday(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, today)
	assert.Empty(t, today)
}

func TestListTodayDropsMalformedDates(t *testing.T) {
	repo := newFakeRepo()
	// Written behind the API's validation, e.g. by an older client.
	repo.docs["bad"] = model.Appointment{PatientName: "X", Date: "28/08/2026"}
	svc := newTestService(repo, "28/08/2026")

	today, err := svc.ListToday(context.Background())
	require.NoError(t, err)
	assert.Empty(t, today)
}

func TestListAllReturnsOrderedRows(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2026-08-28")

	for _, req := range []model.CreateAppointmentRequest{
		{PatientName: "Late", Contact: "1", Reason: "x", Date: "2026-09-01", Time: "10:00"},
		{PatientName: "Early", Contact: "2", Reason: "y", Date: "2026-08-28", Time: "09:00"},
		{PatientName: "Mid", Contact: "3", Reason: "z", Date: "2026-08-28", Time: "11:30"},
	} {
		r := req
		_, err := svc.Add(context.Background(), &r)
		require.NoError(t, err)
	}

	rows, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Early", rows[0].PatientName)
	assert.Equal(t, "Mid", rows[1].PatientName)
	assert.Equal(t, "Late", rows[2].PatientName)
	assert.NotEmpty(t, rows[0].ID)
}

func TestListAllEmptyStoreReturnsEmptySlice(t *testing.T) {
	svc := newTestService(newFakeRepo(), "2026-08-28")

	rows, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDeleteRemovesAppointment(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2026-08-28")

	id, err := svc.Add(context.Background(), &model.CreateAppointmentRequest{
		PatientName: "Jane Doe", Contact: "1", Reason: "x", Date: "2026-08-28", Time: "09:30",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))
	rows, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Deleting an absent key stays a no-op.
	assert.NoError(t, svc.Delete(context.Background(), id))
}
