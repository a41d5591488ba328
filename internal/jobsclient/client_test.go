package jobsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklawn/scheduler/internal/models"
)

func TestClient_CreateJob(t *testing.T) {
	scheduled := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/jobs", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.JobRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "client-1", req.ClientID)
		assert.Equal(t, "series-1", req.SeriesID)
		assert.True(t, req.ScheduledDate.Equal(scheduled))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Job{
			ID:            "job-42",
			ClientID:      req.ClientID,
			ScheduledDate: req.ScheduledDate,
			Status:        "scheduled",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	job, err := client.CreateJob(context.Background(), models.JobRequest{
		ClientID:      "client-1",
		SeriesID:      "series-1",
		ScheduledDate: scheduled,
	})
	require.NoError(t, err)
	assert.Equal(t, "job-42", job.ID)
	assert.Equal(t, "scheduled", job.Status)
}

func TestClient_CreateJob_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "client not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.CreateJob(context.Background(), models.JobRequest{ClientID: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client not found")
}

func TestClient_CreateJob_MissingJobID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "scheduled"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.CreateJob(context.Background(), models.JobRequest{ClientID: "client-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without an id")
}

func TestClient_CreateJob_ServerUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")

	_, err := client.CreateJob(context.Background(), models.JobRequest{ClientID: "client-1"})
	assert.Error(t, err)
}
