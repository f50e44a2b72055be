package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/config"
	"github.com/smartsellhq/smartsell/internal/migration"
	"github.com/smartsellhq/smartsell/internal/store/domain"
	"github.com/smartsellhq/smartsell/internal/store/repository"
	"github.com/smartsellhq/smartsell/internal/workspacectx"
	workspacedomain "github.com/smartsellhq/smartsell/internal/workspace/domain"
	workspacerepo "github.com/smartsellhq/smartsell/internal/workspace/repository"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	svc  domain.Service
	conn *gorm.DB
	ws   workspacedomain.Workspace
}

func newTestEnv(t *testing.T, maxStores int) *testEnv {
	t.Helper()

	conn, err := dbpkg.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	plan := workspacedomain.Plan{
		ID:        node.Generate(),
		Code:      "free",
		Name:      "Free",
		MaxStores: maxStores,
	}
	require.NoError(t, conn.Create(&plan).Error)

	ws := workspacedomain.Workspace{
		ID:     node.Generate(),
		Name:   "Acme",
		Slug:   "acme",
		PlanID: plan.ID,
	}
	require.NoError(t, conn.Create(&ws).Error)

	svc := New(Params{
		DB:     conn,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.Provide(),
		WsRepo: workspacerepo.NewRepository(conn),
		Defaults: config.NewStaticStoreDefaultsHolder(config.StoreDefaults{
			PrimaryColor:   "#1A1A2E",
			SecondaryColor: "#E94560",
			FontFamily:     "Cairo",
			Layout:         "classic",
		}),
	})

	return &testEnv{svc: svc, conn: conn, ws: ws}
}

func (e *testEnv) ctx() context.Context {
	return workspacectx.WithWorkspaceID(context.Background(), int64(e.ws.ID))
}

func TestCreateStoreDerivesSlugAndSubdomain(t *testing.T) {
	env := newTestEnv(t, 10)

	resp, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "My Store!!"})
	require.NoError(t, err)
	require.Equal(t, "my-store", resp.Slug)
	require.Equal(t, "my-store", resp.Subdomain)
	require.Equal(t, domain.StatusDraft, resp.Status)
	require.Nil(t, resp.PublishedAt)
	require.Equal(t, "#1A1A2E", resp.PrimaryColor)
	require.Equal(t, "Cairo", resp.FontFamily)
}

func TestCreateStoreArabicSlug(t *testing.T) {
	env := newTestEnv(t, 10)

	resp, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "متجر الرياض"})
	require.NoError(t, err)
	require.Equal(t, "متجر-الرياض", resp.Slug)
}

func TestCreateStoreRejectsUnusableName(t *testing.T) {
	env := newTestEnv(t, 10)

	_, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "!!!***"})
	require.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestCreateStoreSuffixesCollidingSlugs(t *testing.T) {
	env := newTestEnv(t, 10)

	want := []string{"shop", "shop-1", "shop-2"}
	for _, expected := range want {
		resp, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "Shop"})
		require.NoError(t, err)
		require.Equal(t, expected, resp.Slug)
		require.Equal(t, expected, resp.Subdomain)
	}
}

func TestCreateStoreQuota(t *testing.T) {
	env := newTestEnv(t, 2)

	for i := 0; i < 2; i++ {
		_, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "Shop"})
		require.NoError(t, err)
	}

	_, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "One Too Many"})
	require.ErrorIs(t, err, domain.ErrQuotaExceeded)
	require.Contains(t, err.Error(), "2", "quota error should carry the plan limit")
}

func TestRenameRegeneratesSlugButKeepsSubdomain(t *testing.T) {
	env := newTestEnv(t, 10)

	created, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "Old Name"})
	require.NoError(t, err)
	require.Equal(t, "old-name", created.Subdomain)

	newName := "New Name"
	updated, err := env.svc.Update(env.ctx(), domain.UpdateRequest{ID: created.ID, Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "new-name", updated.Slug)
	require.Equal(t, "old-name", updated.Subdomain)
}

func TestRenameToOwnNameKeepsSlug(t *testing.T) {
	env := newTestEnv(t, 10)

	created, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "Stable"})
	require.NoError(t, err)

	same := "Stable"
	updated, err := env.svc.Update(env.ctx(), domain.UpdateRequest{ID: created.ID, Name: &same})
	require.NoError(t, err)
	require.Equal(t, "stable", updated.Slug)
}

func TestPublishStampsPublishedAt(t *testing.T) {
	env := newTestEnv(t, 10)

	created, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "Launchpad"})
	require.NoError(t, err)

	published := domain.StatusPublished
	updated, err := env.svc.Update(env.ctx(), domain.UpdateRequest{ID: created.ID, Status: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	first := *updated.PublishedAt

	// Re-publishing must not move the original timestamp.
	again, err := env.svc.Update(env.ctx(), domain.UpdateRequest{ID: created.ID, Status: &published})
	require.NoError(t, err)
	require.Equal(t, first, *again.PublishedAt)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t, 10)

	created, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "Strict"})
	require.NoError(t, err)

	bogus := domain.StoreStatus("LIVE")
	_, err = env.svc.Update(env.ctx(), domain.UpdateRequest{ID: created.ID, Status: &bogus})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestGetScopedToWorkspace(t *testing.T) {
	env := newTestEnv(t, 10)

	created, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "Mine"})
	require.NoError(t, err)

	otherCtx := workspacectx.WithWorkspaceID(context.Background(), int64(snowflake.ID(424242)))
	_, err = env.svc.Get(otherCtx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteStore(t *testing.T) {
	env := newTestEnv(t, 10)

	created, err := env.svc.Create(env.ctx(), domain.CreateRequest{Name: "Ephemeral"})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(env.ctx(), created.ID))

	_, err = env.svc.Get(env.ctx(), created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	list, err := env.svc.List(env.ctx())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreateStoreFailsClosedWithoutPlan(t *testing.T) {
	env := newTestEnv(t, 10)

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	// Workspace row with a dangling plan id.
	orphan := workspacedomain.Workspace{
		ID:     node.Generate(),
		Name:   "Orphan",
		Slug:   "orphan",
		PlanID: node.Generate(),
	}
	require.NoError(t, env.conn.Create(&orphan).Error)

	ctx := workspacectx.WithWorkspaceID(context.Background(), int64(orphan.ID))
	_, err = env.svc.Create(ctx, domain.CreateRequest{Name: "Unmetered"})
	require.ErrorIs(t, err, domain.ErrPlanMissing)
}

// racingRepo claims the freshly allocated slug with a competing row right
// before the first write, reproducing the probe-to-write race.
type racingRepo struct {
	domain.Repository
	conn  *gorm.DB
	node  *snowflake.Node
	wsID  snowflake.ID
	slug  string
	fired bool
}

func (r *racingRepo) Update(ctx context.Context, db *gorm.DB, store *domain.Store) error {
	if !r.fired {
		r.fired = true
		rival := domain.Store{
			ID:          r.node.Generate(),
			WorkspaceID: r.wsID,
			Name:        "Rival",
			Slug:        r.slug,
			Subdomain:   r.slug + "-rival",
			Status:      domain.StatusDraft,
		}
		if err := r.conn.Create(&rival).Error; err != nil {
			return err
		}
	}
	return r.Repository.Update(ctx, db, store)
}

func TestRenameRetriesWhenSlugClaimedConcurrently(t *testing.T) {
	env := newTestEnv(t, 10)

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	racing := &racingRepo{
		Repository: repository.Provide(),
		conn:       env.conn,
		node:       node,
		wsID:       env.ws.ID,
		slug:       "boutique",
	}
	svc := New(Params{
		DB:       env.conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     racing,
		WsRepo:   workspacerepo.NewRepository(env.conn),
		Defaults: config.NewStaticStoreDefaultsHolder(config.StoreDefaults{}),
	})

	created, err := svc.Create(env.ctx(), domain.CreateRequest{Name: "Shop"})
	require.NoError(t, err)

	newName := "Boutique"
	updated, err := svc.Update(env.ctx(), domain.UpdateRequest{ID: created.ID, Name: &newName})
	require.NoError(t, err)
	require.True(t, racing.fired)
	require.Equal(t, "boutique-1", updated.Slug)
	require.Equal(t, "shop", updated.Subdomain)
}

func TestSlugAllocationStopsAtCap(t *testing.T) {
	env := newTestEnv(t, 200)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	// Occupy the base slug and every candidate the prober may try.
	rows := []domain.Store{{
		ID: node.Generate(), WorkspaceID: env.ws.ID,
		Name: "Busy", Slug: "busy", Subdomain: "busy", Status: domain.StatusDraft,
	}}
	for i := 1; i <= maxSlugProbes; i++ {
		slug := "busy-" + strconv.Itoa(i)
		rows = append(rows, domain.Store{
			ID: node.Generate(), WorkspaceID: env.ws.ID,
			Name: "Busy", Slug: slug, Subdomain: slug, Status: domain.StatusDraft,
		})
	}
	require.NoError(t, env.conn.CreateInBatches(rows, 50).Error)

	_, err = env.svc.Create(env.ctx(), domain.CreateRequest{Name: "Busy"})
	require.ErrorIs(t, err, domain.ErrSlugExhausted)
}
