package docstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/store"
)

func newStoreClient(t *testing.T, handler http.HandlerFunc) *store.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return store.New(store.Config{BaseURL: srv.URL}, zerolog.Nop())
}

func TestLoadMissSynthesizesEmptyPatient(t *testing.T) {
	repo := NewPatientRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "null")
	}))

	patient, err := repo.Load(context.Background(), "John Doe")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", patient.Name)
	assert.NotNil(t, patient.Records)
	assert.Empty(t, patient.Records)
}

func TestLoadRepairsMissingRecords(t *testing.T) {
	repo := NewPatientRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"name":"Jane Doe"}`)
	}))

	patient, err := repo.Load(context.Background(), "Jane Doe")
	require.NoError(t, err)
	assert.NotNil(t, patient.Records)
	assert.Empty(t, patient.Records)
}

func TestCreateIsIdempotent(t *testing.T) {
	var puts int
	repo := NewPatientRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, `{"name":"Alice Smith","records":[]}`)
		case http.MethodPut:
			puts++
			io.WriteString(w, "{}")
		}
	}))

	require.NoError(t, repo.Create(context.Background(), "Alice Smith"))
	assert.Zero(t, puts, "existing patient must not be overwritten")
}

func TestCreateWritesEmptyDocumentOnMiss(t *testing.T) {
	var written model.Patient
	repo := NewPatientRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, "null")
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&written))
			io.WriteString(w, "{}")
		}
	}))

	require.NoError(t, repo.Create(context.Background(), "Bob Jones"))
	assert.Equal(t, "Bob Jones", written.Name)
	assert.NotNil(t, written.Records)
	assert.Empty(t, written.Records)
}

func TestSaveWritesWholeDocument(t *testing.T) {
	var written model.Patient
	repo := NewPatientRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/patients/Alice Smith.json", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&written))
		io.WriteString(w, "{}")
	}))

	patient := &model.Patient{
		Name:    "Alice Smith",
		Records: []model.Visit{{AmountCharged: 120, AmountPaid: 50, Balance: 70}},
	}
	require.NoError(t, repo.Save(context.Background(), patient))
	require.Len(t, written.Records, 1)
	assert.Equal(t, 70.0, written.Records[0].Balance)
}

func TestListNamesOnEmptyStore(t *testing.T) {
	repo := NewPatientRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "null")
	}))

	names, err := repo.ListNames(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestDeleteIssuesStoreDelete(t *testing.T) {
	var method, path string
	repo := NewPatientRepository(newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		io.WriteString(w, "null")
	}))

	require.NoError(t, repo.Delete(context.Background(), "John Doe"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/patients/John Doe.json", path)
}
