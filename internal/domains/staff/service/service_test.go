package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	destinationModel "github.com/riku-k061/travel-backend/internal/domains/destination/model"
	destinationRepository "github.com/riku-k061/travel-backend/internal/domains/destination/repository"
	"github.com/riku-k061/travel-backend/internal/domains/staff/model"
	"github.com/riku-k061/travel-backend/internal/domains/staff/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/staff/repository"
	"github.com/riku-k061/travel-backend/internal/domains/staff/service"
	gDto "github.com/riku-k061/travel-backend/shared/dto"
	"github.com/riku-k061/travel-backend/shared/failure"
)

func newService(t *testing.T) service.Staff {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.DataDir = t.TempDir()

	noop := otel.NewNoop()
	store := jsonstore.New(cfg, noop)

	destinations := jsonstore.NewCollection[destinationModel.Destination](store, destinationModel.CollectionName)
	require.NoError(t, destinations.Replace(context.Background(), []destinationModel.Destination{
		{DestinationID: "dest-1", Name: "Lisbon", Country: "Portugal"},
		{DestinationID: "dest-2", Name: "Kyoto", Country: "Japan"},
	}))

	return service.New(repository.New(store, noop), destinationRepository.New(store, noop), noop)
}

func seedStaff(t *testing.T, svc service.Staff, name, role, email string, destinationIDs ...string) model.Staff {
	t.Helper()

	member, err := svc.Create(context.Background(), dto.CreateStaffRequest{
		Name:           name,
		Role:           role,
		ContactEmail:   email,
		DestinationIDs: destinationIDs,
	})
	require.NoError(t, err)

	return member
}

func defaultParams() gDto.QueryParams {
	return gDto.QueryParams{Limit: 10}
}

func TestStaffService_CreateDefaultsToAvailable(t *testing.T) {
	svc := newService(t)

	member := seedStaff(t, svc, "Ana", "Administrative Staff", "ana@example.com")

	assert.NotEmpty(t, member.ID)
	assert.True(t, member.Available)
}

func TestStaffService_GuideRequiresDestinations(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateStaffRequest{
		Name:         "Bruno",
		Role:         "Tour Guide",
		ContactEmail: "bruno@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "at least one destination ID")

	_, err = svc.Create(ctx, dto.CreateStaffRequest{
		Name:           "Bruno",
		Role:           "Tour Guide",
		ContactEmail:   "bruno@example.com",
		DestinationIDs: []string{"dest-1", "dest-missing"},
	})
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "'dest-missing'")

	member, err := svc.Create(ctx, dto.CreateStaffRequest{
		Name:           "Bruno",
		Role:           "Tour Guide",
		ContactEmail:   "bruno@example.com",
		DestinationIDs: []string{"dest-1"},
	})
	require.NoError(t, err)
	assert.True(t, member.IsGuide())
}

func TestStaffService_EmailUniquenessIsCaseInsensitive(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	seedStaff(t, svc, "Ana", "Administrative Staff", "ana@example.com")

	_, err := svc.Create(ctx, dto.CreateStaffRequest{
		Name:         "Other",
		Role:         "Driver",
		ContactEmail: "ANA@Example.com",
	})
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "already in use")
}

func TestStaffService_UpdateKeepsOwnEmail(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	member := seedStaff(t, svc, "Ana", "Administrative Staff", "ana@example.com")
	seedStaff(t, svc, "Bea", "Driver", "bea@example.com")

	own := "ANA@example.com"
	updated, err := svc.Update(ctx, member.ID, dto.UpdateStaffRequest{ContactEmail: &own})
	require.NoError(t, err)
	assert.Equal(t, own, updated.ContactEmail)

	taken := "bea@example.com"
	_, err = svc.Update(ctx, member.ID, dto.UpdateStaffRequest{ContactEmail: &taken})
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestStaffService_UpdateToGuideRevalidatesDestinations(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	member := seedStaff(t, svc, "Ana", "Administrative Staff", "ana@example.com")

	role := "Senior Guide"
	_, err := svc.Update(ctx, member.ID, dto.UpdateStaffRequest{Role: &role})
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))

	destinations := []string{"dest-2"}
	updated, err := svc.Update(ctx, member.ID, dto.UpdateStaffRequest{Role: &role, DestinationIDs: &destinations})
	require.NoError(t, err)
	assert.Equal(t, []string{"dest-2"}, updated.DestinationIDs)
}

func TestStaffService_ListFiltersBySubstringRoleAndAvailability(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	guide := seedStaff(t, svc, "Bruno", "Tour Guide", "bruno@example.com", "dest-1")
	senior := seedStaff(t, svc, "Carla", "Senior guide", "carla@example.com", "dest-2")
	seedStaff(t, svc, "Dora", "Driver", "dora@example.com")

	_, err := svc.Deactivate(ctx, senior.ID)
	require.NoError(t, err)

	res, err := svc.List(ctx, dto.ListStaffQuery{Role: "guide", Params: defaultParams()})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)

	available := true
	res, err = svc.List(ctx, dto.ListStaffQuery{Role: "guide", Available: &available, Params: defaultParams()})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, guide.ID, res.Items[0].ID)
}

func TestStaffService_ListPagination(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, member := range []struct{ name, email string }{
		{"A", "a@example.com"}, {"B", "b@example.com"}, {"C", "c@example.com"},
	} {
		seedStaff(t, svc, member.name, "Driver", member.email)
	}

	res, err := svc.List(ctx, dto.ListStaffQuery{Params: gDto.QueryParams{Limit: 2, Offset: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "C", res.Items[0].Name)
}

func TestStaffService_Summary(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	seedStaff(t, svc, "Bruno", "Tour Guide", "bruno@example.com", "dest-1")
	other := seedStaff(t, svc, "Carla", "tour guide", "carla@example.com", "dest-2")
	seedStaff(t, svc, "Dora", "Driver", "dora@example.com")

	_, err := svc.Deactivate(ctx, other.ID)
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalStaff)
	assert.Equal(t, dto.RoleSummary{Total: 2, Available: 1, Unavailable: 1}, summary.ByRole["tour guide"])
	assert.Equal(t, dto.RoleSummary{Total: 1, Available: 1}, summary.ByRole["driver"])
}

func TestStaffService_DeactivateReactivateGuards(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	member := seedStaff(t, svc, "Ana", "Driver", "ana@example.com")

	_, err := svc.Reactivate(ctx, member.ID)
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "already active")

	deactivated, err := svc.Deactivate(ctx, member.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Available)

	_, err = svc.Deactivate(ctx, member.ID)
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "already deactivated")

	reactivated, err := svc.Reactivate(ctx, member.ID)
	require.NoError(t, err)
	assert.True(t, reactivated.Available)

	_, err = svc.Deactivate(ctx, "missing")
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestStaffService_AssignedTo(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	guide := seedStaff(t, svc, "Bruno", "Tour Guide", "bruno@example.com", "dest-1", "dest-2")
	busy := seedStaff(t, svc, "Carla", "Adventure guide", "carla@example.com", "dest-1")
	seedStaff(t, svc, "Dora", "Driver", "dora@example.com")

	_, err := svc.Deactivate(ctx, busy.ID)
	require.NoError(t, err)

	guides, err := svc.AssignedTo(ctx, "dest-1", nil)
	require.NoError(t, err)
	assert.Len(t, guides, 2)

	available := true
	guides, err = svc.AssignedTo(ctx, "dest-1", &available)
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, guide.ID, guides[0].ID)

	_, err = svc.AssignedTo(ctx, "dest-missing", nil)
	assert.Equal(t, 404, failure.GetCode(err))
}
