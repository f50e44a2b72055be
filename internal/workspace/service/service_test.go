package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/migration"
	"github.com/smartsellhq/smartsell/internal/seed"
	"github.com/smartsellhq/smartsell/internal/workspace/domain"
	"github.com/smartsellhq/smartsell/internal/workspace/repository"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWorkspaceService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	conn, err := dbpkg.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))
	require.NoError(t, seed.EnsurePlans(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(conn, zap.NewNop(), repository.NewRepository(conn), node)
	return svc, node
}

func TestCreateWorkspaceDefaultsToFreePlan(t *testing.T) {
	svc, node := newWorkspaceService(t)
	userID := node.Generate()

	ws, err := svc.Create(context.Background(), userID, domain.CreateWorkspaceRequest{Name: "Acme Trading"})
	require.NoError(t, err)
	require.Equal(t, "acme-trading", ws.Slug)
	require.Equal(t, domain.DefaultPlanCode, ws.PlanCode)
	require.Equal(t, 1, ws.MaxStores)
}

func TestCreateWorkspaceOwnerMembership(t *testing.T) {
	svc, node := newWorkspaceService(t)
	userID := node.Generate()

	ws, err := svc.Create(context.Background(), userID, domain.CreateWorkspaceRequest{Name: "Acme"})
	require.NoError(t, err)

	wsID, err := snowflake.ParseString(ws.ID)
	require.NoError(t, err)

	role, err := svc.MemberRole(context.Background(), wsID, userID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleOwner, role)

	// A stranger holds no role; membership gates translate that into a
	// forbidden response.
	role, err = svc.MemberRole(context.Background(), wsID, node.Generate())
	require.NoError(t, err)
	require.Empty(t, role)
}

func TestCreateWorkspaceValidation(t *testing.T) {
	svc, node := newWorkspaceService(t)

	_, err := svc.Create(context.Background(), 0, domain.CreateWorkspaceRequest{Name: "Acme"})
	require.ErrorIs(t, err, domain.ErrInvalidUser)

	_, err = svc.Create(context.Background(), node.Generate(), domain.CreateWorkspaceRequest{Name: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(context.Background(), node.Generate(), domain.CreateWorkspaceRequest{
		Name: "Acme", PlanCode: "platinum",
	})
	require.ErrorIs(t, err, domain.ErrInvalidPlan)
}

func TestListWorkspacesByUser(t *testing.T) {
	svc, node := newWorkspaceService(t)
	userID := node.Generate()

	_, err := svc.Create(context.Background(), userID, domain.CreateWorkspaceRequest{Name: "First"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), userID, domain.CreateWorkspaceRequest{Name: "Second"})
	require.NoError(t, err)

	// Someone else's workspace must not leak into the listing.
	_, err = svc.Create(context.Background(), node.Generate(), domain.CreateWorkspaceRequest{Name: "Other"})
	require.NoError(t, err)

	items, err := svc.ListWorkspacesByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		require.Equal(t, domain.RoleOwner, item.Role)
	}
}

func TestGetWorkspaceByID(t *testing.T) {
	svc, node := newWorkspaceService(t)

	ws, err := svc.Create(context.Background(), node.Generate(), domain.CreateWorkspaceRequest{Name: "Acme"})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), ws.ID)
	require.NoError(t, err)
	require.Equal(t, ws.Slug, got.Slug)
	require.Equal(t, domain.DefaultPlanCode, got.PlanCode)

	_, err = svc.GetByID(context.Background(), "not-a-snowflake")
	require.ErrorIs(t, err, domain.ErrInvalidWorkspace)

	_, err = svc.GetByID(context.Background(), node.Generate().String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
