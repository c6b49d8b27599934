package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/feedback/model"
	"github.com/riku-k061/travel-backend/internal/domains/feedback/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/feedback/repository"
	"github.com/riku-k061/travel-backend/internal/domains/feedback/service"
	gDto "github.com/riku-k061/travel-backend/shared/dto"
	"github.com/riku-k061/travel-backend/shared/failure"
)

func newService(t *testing.T) service.Feedback {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.DataDir = t.TempDir()

	noop := otel.NewNoop()
	repo := repository.New(jsonstore.New(cfg, noop), noop)

	return service.New(repo, noop)
}

func defaultParams() gDto.QueryParams {
	return gDto.QueryParams{Limit: 10}
}

func seedFeedback(t *testing.T, svc service.Feedback, feedbackType, status string) model.Feedback {
	t.Helper()

	feedback, err := svc.Create(context.Background(), dto.CreateFeedbackRequest{
		CustomerID: "cust-1",
		Type:       feedbackType,
		Message:    "test message",
		Status:     status,
	})
	require.NoError(t, err)

	return feedback
}

func TestFeedbackService_CreateDefaultsToOpen(t *testing.T) {
	svc := newService(t)

	feedback, err := svc.Create(context.Background(), dto.CreateFeedbackRequest{
		CustomerID: "cust-1",
		Type:       model.TypeComplaint,
		Message:    "delayed departure",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, feedback.ID)
	assert.Equal(t, model.StatusOpen, feedback.Status)
	assert.NotEmpty(t, feedback.Timestamp)
	assert.Empty(t, feedback.AdminNotes)
	assert.False(t, feedback.Deleted)
}

func TestFeedbackService_ListHidesDeletedByDefault(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	kept := seedFeedback(t, svc, model.TypeComplaint, "")
	deleted := seedFeedback(t, svc, model.TypeSuggestion, "")

	_, err := svc.SoftDelete(ctx, deleted.ID)
	require.NoError(t, err)

	res, err := svc.List(ctx, dto.ListFeedbackQuery{Params: defaultParams()})
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, kept.ID, res.Items[0].(model.Feedback).ID)
	assert.Equal(t, 1, res.TotalCount)

	res, err = svc.List(ctx, dto.ListFeedbackQuery{IncludeDeleted: true, Params: defaultParams()})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
}

func TestFeedbackService_ListRejectsUnknownEnums(t *testing.T) {
	svc := newService(t)

	_, err := svc.List(context.Background(), dto.ListFeedbackQuery{Type: "rant", Params: defaultParams()})
	require.Error(t, err)
	assert.Equal(t, 422, failure.GetCode(err))

	_, err = svc.List(context.Background(), dto.ListFeedbackQuery{Status: "closed", Params: defaultParams()})
	require.Error(t, err)
	assert.Equal(t, 422, failure.GetCode(err))
}

func TestFeedbackService_ListFieldProjection(t *testing.T) {
	svc := newService(t)

	seedFeedback(t, svc, model.TypeComplaint, model.StatusOpen)

	res, err := svc.List(context.Background(), dto.ListFeedbackQuery{
		Fields: []string{"type", "status"},
		Params: defaultParams(),
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	projected, ok := res.Items[0].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, model.TypeComplaint, projected["type"])
	assert.Equal(t, model.StatusOpen, projected["status"])
	assert.Contains(t, projected, "id")
	assert.NotContains(t, projected, "message")
}

func TestFeedbackService_GetDeletedNeedsFlag(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	feedback := seedFeedback(t, svc, model.TypeComplaint, "")

	_, err := svc.SoftDelete(ctx, feedback.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, feedback.ID, false)
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))

	fetched, err := svc.Get(ctx, feedback.ID, true)
	require.NoError(t, err)
	assert.True(t, fetched.Deleted)
	assert.NotEmpty(t, fetched.DeletionTimestamp)
}

func TestFeedbackService_UpdatePartialAndNoteAppend(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	feedback := seedFeedback(t, svc, model.TypeComplaint, "")

	status := model.StatusResolved
	note := "refund issued"

	updated, err := svc.Update(ctx, feedback.ID, dto.UpdateFeedbackRequest{
		Status:    &status,
		AdminNote: &note,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusResolved, updated.Status)
	assert.Equal(t, feedback.Message, updated.Message)
	require.Len(t, updated.AdminNotes, 1)
	assert.Equal(t, "refund issued", updated.AdminNotes[0].Text)
	assert.Equal(t, "system", updated.AdminNotes[0].Author)

	second := "followup sent"
	updated, err = svc.Update(ctx, feedback.ID, dto.UpdateFeedbackRequest{AdminNote: &second})
	require.NoError(t, err)
	assert.Len(t, updated.AdminNotes, 2)
}

func TestFeedbackService_UpdateDeletedRejected(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	feedback := seedFeedback(t, svc, model.TypeComplaint, "")

	_, err := svc.SoftDelete(ctx, feedback.ID)
	require.NoError(t, err)

	message := "edited"
	_, err = svc.Update(ctx, feedback.ID, dto.UpdateFeedbackRequest{Message: &message})
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "Restore it first")
}

func TestFeedbackService_SoftDeleteAndRestoreGuards(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	feedback := seedFeedback(t, svc, model.TypeComplaint, "")

	_, err := svc.Restore(ctx, feedback.ID)
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))

	_, err = svc.SoftDelete(ctx, feedback.ID)
	require.NoError(t, err)

	_, err = svc.SoftDelete(ctx, feedback.ID)
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))

	restored, err := svc.Restore(ctx, feedback.ID)
	require.NoError(t, err)
	assert.False(t, restored.Deleted)
}

func TestFeedbackService_AddNoteWithAuthor(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	feedback := seedFeedback(t, svc, model.TypeSuggestion, "")

	updated, err := svc.AddNote(ctx, feedback.ID, "escalated to ops", "alice")
	require.NoError(t, err)

	require.Len(t, updated.AdminNotes, 1)
	assert.Equal(t, "alice", updated.AdminNotes[0].Author)
	assert.NotEmpty(t, updated.AdminNotes[0].Timestamp)
}

func TestFeedbackService_SummaryWithTrendsAndResolutionRate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	seedFeedback(t, svc, model.TypeComplaint, model.StatusOpen)
	seedFeedback(t, svc, model.TypeComplaint, model.StatusResolved)
	seedFeedback(t, svc, model.TypeSuggestion, model.StatusResolved)

	summary, err := svc.Summary(ctx, dto.SummaryQuery{IncludeTrends: true})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, map[string]int{model.TypeComplaint: 2, model.TypeSuggestion: 1}, summary.ByType)
	assert.Equal(t, map[string]int{model.StatusOpen: 1, model.StatusResolved: 2}, summary.ByStatus)

	require.NotNil(t, summary.ResolutionRate)
	assert.InDelta(t, 66.67, *summary.ResolutionRate, 1e-9)

	require.Len(t, summary.MonthlyTrends, 1)
	for _, trend := range summary.MonthlyTrends {
		assert.Equal(t, 3, trend.Total)
		assert.Equal(t, 0, trend.ByStatus[model.StatusPending])
	}
}

func TestFeedbackService_SummaryOmitsRateWithoutResolved(t *testing.T) {
	svc := newService(t)

	seedFeedback(t, svc, model.TypeComplaint, model.StatusOpen)

	summary, err := svc.Summary(context.Background(), dto.SummaryQuery{})
	require.NoError(t, err)

	assert.Nil(t, summary.ResolutionRate)
	assert.Nil(t, summary.MonthlyTrends)
}

func TestFeedbackService_ImportAllOrNothing(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, dto.BulkImportRequest{
		Items: []dto.CreateFeedbackRequest{
			{CustomerID: "cust-1", Type: model.TypeComplaint, Message: "valid"},
			{CustomerID: "cust-2", Type: "rant", Message: "invalid type"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 422, failure.GetCode(err))
	assert.Contains(t, err.Error(), "item #1")

	res, err := svc.List(ctx, dto.ListFeedbackQuery{Params: defaultParams()})
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	imported, err := svc.Import(ctx, dto.BulkImportRequest{
		Items: []dto.CreateFeedbackRequest{
			{CustomerID: "cust-1", Type: model.TypeComplaint, Message: "first"},
			{CustomerID: "cust-2", Type: model.TypeSuggestion, Message: "second"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, imported, 2)

	for _, feedback := range imported {
		assert.NotEmpty(t, feedback.ID)
		assert.NotEmpty(t, feedback.Timestamp)
	}
}

func TestFeedbackService_PurgeAllDeleted(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	kept := seedFeedback(t, svc, model.TypeComplaint, "")
	deleted := seedFeedback(t, svc, model.TypeSuggestion, "")

	_, err := svc.SoftDelete(ctx, deleted.ID)
	require.NoError(t, err)

	result, err := svc.Purge(ctx, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.PurgedCount)
	assert.Equal(t, 1, result.RemainingCount)

	_, err = svc.Get(ctx, deleted.ID, true)
	assert.Equal(t, 404, failure.GetCode(err))

	_, err = svc.Get(ctx, kept.ID, false)
	assert.NoError(t, err)
}

func TestFeedbackService_PurgeRespectsCutoff(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	feedback := seedFeedback(t, svc, model.TypeComplaint, "")

	_, err := svc.SoftDelete(ctx, feedback.ID)
	require.NoError(t, err)

	// A cutoff in the past leaves the freshly deleted entry in place.
	past := time.Now().Add(-24 * time.Hour)

	result, err := svc.Purge(ctx, &past)
	require.NoError(t, err)
	assert.Equal(t, 0, result.PurgedCount)
	assert.Equal(t, 1, result.RemainingCount)

	future := time.Now().Add(24 * time.Hour)

	result, err = svc.Purge(ctx, &future)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PurgedCount)
	assert.Equal(t, 0, result.RemainingCount)
}
