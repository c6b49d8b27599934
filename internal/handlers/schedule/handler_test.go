package schedule_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	destinationModel "github.com/riku-k061/travel-backend/internal/domains/destination/model"
	destinationRepository "github.com/riku-k061/travel-backend/internal/domains/destination/repository"
	"github.com/riku-k061/travel-backend/internal/domains/schedule/model"
	"github.com/riku-k061/travel-backend/internal/domains/schedule/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/schedule/repository"
	"github.com/riku-k061/travel-backend/internal/domains/schedule/service"
	"github.com/riku-k061/travel-backend/internal/handlers/schedule"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.DataDir = t.TempDir()

	noop := otel.NewNoop()
	store := jsonstore.New(cfg, noop)

	destinations := jsonstore.NewCollection[destinationModel.Destination](store, destinationModel.CollectionName)
	require.NoError(t, destinations.Replace(context.Background(), []destinationModel.Destination{
		{DestinationID: "dest-1", Name: "Lisbon", Country: "Portugal"},
	}))

	svc := service.New(repository.New(store, noop), destinationRepository.New(store, noop), noop)
	handler := schedule.New(svc, noop)

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func perform(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	return recorder
}

func TestScheduleHandler_CreateAndGet(t *testing.T) {
	router := newRouter(t)

	created := perform(router, http.MethodPost, "/schedules/",
		`{"destination_id":"dest-1","date":"2026-07-01T10:00:00Z","capacity":30}`)
	require.Equal(t, http.StatusCreated, created.Code)

	var schedule model.Schedule
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &schedule))
	assert.Equal(t, model.StatusActive, schedule.Status)

	fetched := perform(router, http.MethodGet, "/schedules/"+schedule.ID, "")
	assert.Equal(t, http.StatusOK, fetched.Code)

	missing := perform(router, http.MethodGet, "/schedules/not-there", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestScheduleHandler_CreateRejectsBadDate(t *testing.T) {
	router := newRouter(t)

	res := perform(router, http.MethodPost, "/schedules/",
		`{"destination_id":"dest-1","date":"July 1st","capacity":30}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Contains(t, res.Body.String(), "ISO 8601")
}

func TestScheduleHandler_CreateRejectsMissingDestination(t *testing.T) {
	router := newRouter(t)

	res := perform(router, http.MethodPost, "/schedules/",
		`{"destination_id":"dest-missing","date":"2026-07-01T10:00:00Z","capacity":30}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestScheduleHandler_ListRejectsBadSort(t *testing.T) {
	router := newRouter(t)

	res := perform(router, http.MethodGet, "/schedules/?sort=sideways", "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "asc")
}

func TestScheduleHandler_StatusSummary(t *testing.T) {
	router := newRouter(t)

	created := perform(router, http.MethodPost, "/schedules/",
		`{"destination_id":"dest-1","date":"2026-07-01T10:00:00Z","capacity":30,"status":"inactive"}`)
	require.Equal(t, http.StatusCreated, created.Code)

	res := perform(router, http.MethodGet, "/schedules/status-summary", "")
	require.Equal(t, http.StatusOK, res.Code)

	var summary dto.StatusSummary
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.StatusCounts[model.StatusInactive])
	assert.Equal(t, 0, summary.StatusCounts[model.StatusActive])
}

func TestScheduleHandler_DeleteReturnsNoContent(t *testing.T) {
	router := newRouter(t)

	created := perform(router, http.MethodPost, "/schedules/",
		`{"destination_id":"dest-1","date":"2026-07-01T10:00:00Z","capacity":30}`)
	require.Equal(t, http.StatusCreated, created.Code)

	var schedule model.Schedule
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &schedule))

	deleted := perform(router, http.MethodDelete, "/schedules/"+schedule.ID, "")
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	again := perform(router, http.MethodDelete, "/schedules/"+schedule.ID, "")
	assert.Equal(t, http.StatusNotFound, again.Code)
}
