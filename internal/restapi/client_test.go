package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"panascoop/internal/models"
)

func TestUpsertValidatesBeforeRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "", nil)

	for _, days := range []int{0, -1, 31, 100} {
		_, err := c.Upsert(context.Background(), models.ReminderConfig{TaskID: "t1", LeadTimeDays: days})
		require.Error(t, err, "lead time %d must be rejected", days)
	}
	_, err := c.Upsert(context.Background(), models.ReminderConfig{LeadTimeDays: 5})
	require.Error(t, err, "missing task must be rejected")

	require.EqualValues(t, 0, atomic.LoadInt32(&hits), "invalid configs must never reach the backend")
}

func TestUpsertGeneratesIDAndPuts(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		var cfg models.ReminderConfig
		json.NewDecoder(r.Body).Decode(&cfg)
		json.NewEncoder(w).Encode(cfg)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "secret", nil)

	saved, err := c.Upsert(context.Background(), models.ReminderConfig{TaskID: "t1", LeadTimeDays: 7})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID, "client must generate the id")
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "/reminders/"+saved.ID, gotPath)
}

func TestUpsertRetriesOn5xx(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var cfg models.ReminderConfig
		json.NewDecoder(r.Body).Decode(&cfg)
		json.NewEncoder(w).Encode(cfg)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "", nil)

	saved, err := c.Upsert(context.Background(), models.ReminderConfig{ID: "r1", TaskID: "t1", LeadTimeDays: 3})
	require.NoError(t, err, "retry after 5xx is safe: the write is an idempotent upsert")
	require.Equal(t, "r1", saved.ID)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestUpsertDoesNotRetryOn4xx(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "", nil)

	_, err := c.Upsert(context.Background(), models.ReminderConfig{ID: "r1", TaskID: "t1", LeadTimeDays: 3})
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected APIError, got %T", err)
	require.Equal(t, http.StatusForbidden, apiErr.Status)
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestListAndDelete(t *testing.T) {
	var deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode([]models.ReminderConfig{{ID: "r1", TaskID: "t1", LeadTimeDays: 2}})
		case r.Method == http.MethodDelete:
			deleted = strings.TrimPrefix(r.URL.Path, "/reminders/")
		}
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "secret", nil)

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "r1", list[0].ID)

	require.NoError(t, c.Delete(context.Background(), "r1"))
	require.Equal(t, "r1", deleted)
}
