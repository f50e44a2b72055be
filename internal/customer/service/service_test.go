package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/customer/domain"
	"github.com/smartsellhq/smartsell/internal/customer/repository"
	"github.com/smartsellhq/smartsell/internal/migration"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
	storerepo "github.com/smartsellhq/smartsell/internal/store/repository"
	"github.com/smartsellhq/smartsell/internal/workspacectx"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type customerEnv struct {
	svc     domain.Service
	node    *snowflake.Node
	wsID    snowflake.ID
	storeID snowflake.ID
}

func newCustomerEnv(t *testing.T) *customerEnv {
	t.Helper()

	conn, err := dbpkg.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	wsID := node.Generate()
	store := storedomain.Store{
		ID:          node.Generate(),
		WorkspaceID: wsID,
		Name:        "Main",
		Slug:        "main",
		Subdomain:   "main",
		Status:      storedomain.StatusPublished,
	}
	require.NoError(t, conn.Create(&store).Error)

	svc := New(Params{
		DB:        conn,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.Provide(),
		StoreRepo: storerepo.Provide(),
	})
	return &customerEnv{svc: svc, node: node, wsID: wsID, storeID: store.ID}
}

func (e *customerEnv) ctx() context.Context {
	return workspacectx.WithWorkspaceID(context.Background(), int64(e.wsID))
}

func TestCreateCustomerNormalizesEmail(t *testing.T) {
	env := newCustomerEnv(t)

	cust, err := env.svc.Create(env.ctx(), domain.CreateRequest{
		StoreID: env.storeID.String(),
		Name:    "Huda",
		Email:   " Huda@Example.COM ",
	})
	require.NoError(t, err)
	require.Equal(t, "huda@example.com", cust.Email)
}

func TestCreateCustomerDuplicateEmailPerStore(t *testing.T) {
	env := newCustomerEnv(t)

	_, err := env.svc.Create(env.ctx(), domain.CreateRequest{
		StoreID: env.storeID.String(), Name: "A", Email: "x@y.test",
	})
	require.NoError(t, err)

	_, err = env.svc.Create(env.ctx(), domain.CreateRequest{
		StoreID: env.storeID.String(), Name: "B", Email: "X@Y.test",
	})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	require.Contains(t, err.Error(), "x@y.test")
}

func TestCreateCustomerRejectsBadInput(t *testing.T) {
	env := newCustomerEnv(t)

	_, err := env.svc.Create(env.ctx(), domain.CreateRequest{
		StoreID: env.storeID.String(), Name: "", Email: "a@b.test",
	})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = env.svc.Create(env.ctx(), domain.CreateRequest{
		StoreID: env.storeID.String(), Name: "A", Email: "not-an-email",
	})
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestCustomerScopedToWorkspaceStore(t *testing.T) {
	env := newCustomerEnv(t)

	cust, err := env.svc.Create(env.ctx(), domain.CreateRequest{
		StoreID: env.storeID.String(), Name: "A", Email: "a@b.test",
	})
	require.NoError(t, err)

	otherCtx := workspacectx.WithWorkspaceID(context.Background(), int64(env.node.Generate()))
	_, err = env.svc.Get(otherCtx, env.storeID.String(), cust.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCustomersPagination(t *testing.T) {
	env := newCustomerEnv(t)

	for i := 0; i < 5; i++ {
		_, err := env.svc.Create(env.ctx(), domain.CreateRequest{
			StoreID: env.storeID.String(),
			Name:    "Customer " + strconv.Itoa(i),
			Email:   "c" + strconv.Itoa(i) + "@b.test",
		})
		require.NoError(t, err)
	}

	first, err := env.svc.List(env.ctx(), domain.ListRequest{
		StoreID: env.storeID.String(), PageSize: 2,
	})
	require.NoError(t, err)
	require.Len(t, first.Customers, 2)
	require.NotEmpty(t, first.NextPageToken)

	seen := map[string]bool{}
	for _, c := range first.Customers {
		seen[c.Email] = true
	}

	token := first.NextPageToken
	for token != "" {
		page, err := env.svc.List(env.ctx(), domain.ListRequest{
			StoreID: env.storeID.String(), PageSize: 2, PageToken: token,
		})
		require.NoError(t, err)
		for _, c := range page.Customers {
			require.False(t, seen[c.Email], "page overlap on %s", c.Email)
			seen[c.Email] = true
		}
		token = page.NextPageToken
	}
	require.Len(t, seen, 5)
}

func TestListCustomersBadPageToken(t *testing.T) {
	env := newCustomerEnv(t)

	_, err := env.svc.List(env.ctx(), domain.ListRequest{
		StoreID: env.storeID.String(), PageToken: "not-base64!!",
	})
	require.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListCustomersSearch(t *testing.T) {
	env := newCustomerEnv(t)

	_, err := env.svc.Create(env.ctx(), domain.CreateRequest{
		StoreID: env.storeID.String(), Name: "Huda Salem", Email: "huda@b.test",
	})
	require.NoError(t, err)
	_, err = env.svc.Create(env.ctx(), domain.CreateRequest{
		StoreID: env.storeID.String(), Name: "Omar", Email: "omar@b.test",
	})
	require.NoError(t, err)

	res, err := env.svc.List(env.ctx(), domain.ListRequest{
		StoreID: env.storeID.String(), Search: "huda",
	})
	require.NoError(t, err)
	require.Len(t, res.Customers, 1)
	require.Equal(t, "Huda Salem", res.Customers[0].Name)
}

func TestUpdateAndDeleteCustomer(t *testing.T) {
	env := newCustomerEnv(t)

	cust, err := env.svc.Create(env.ctx(), domain.CreateRequest{
		StoreID: env.storeID.String(), Name: "A", Email: "a@b.test",
	})
	require.NoError(t, err)

	city := "Riyadh"
	updated, err := env.svc.Update(env.ctx(), domain.UpdateRequest{
		StoreID: env.storeID.String(), ID: cust.ID.String(), City: &city,
	})
	require.NoError(t, err)
	require.Equal(t, "Riyadh", updated.City)
	require.Equal(t, "a@b.test", updated.Email)

	require.NoError(t, env.svc.Delete(env.ctx(), env.storeID.String(), cust.ID.String()))

	_, err = env.svc.Get(env.ctx(), env.storeID.String(), cust.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
