package docstore

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smileworks/dentaldesk/internal/model"
)

func testAppointment() *model.Appointment {
	return &model.Appointment{
		PatientName: "Jane Doe",
		Contact:     "0712000000",
		Reason:      "checkup",
		Date:        "2026-08-28",
		Time:        "09:30",
	}
}

func TestAppointmentCreateReturnsStoreKey(t *testing.T) {
	repo := NewAppointmentRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/appointments.json", r.URL.Path)
		io.WriteString(w, `{"name":"-NxA1b2C3d"}`)
	}))

	id, err := repo.Create(context.Background(), testAppointment())
	require.NoError(t, err)
	assert.Equal(t, "-NxA1b2C3d", id)
}

func TestListByDateQueriesChildEquality(t *testing.T) {
	repo := NewAppointmentRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, `"date"`, q.Get("orderBy"))
		assert.Equal(t, `"2026-08-28"`, q.Get("equalTo"))
		io.WriteString(w, `{"a1":{"patient_name":"Jane","date":"2026-08-28","time":"09:30"}}`)
	}))

	appts, err := repo.ListByDate(context.Background(), "2026-08-28")
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "Jane", appts["a1"].PatientName)
}

func TestListByDateEmptyResult(t *testing.T) {
	repo := NewAppointmentRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "null")
	}))

	appts, err := repo.ListByDate(context.Background(), "2026-08-28")
	require.NoError(t, err)
	assert.NotNil(t, appts)
	assert.Empty(t, appts)
}

func TestListAllEmptyStore(t *testing.T) {
	repo := NewAppointmentRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "null")
	}))

	appts, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, appts)
	assert.Empty(t, appts)
}

func TestAppointmentDeleteTargetsKey(t *testing.T) {
	var method, path string
	repo := NewAppointmentRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		io.WriteString(w, "null")
	}))

	require.NoError(t, repo.Delete(context.Background(), "-NxA1b2C3d"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/appointments/-NxA1b2C3d.json", path)
}
