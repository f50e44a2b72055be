package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smartsellhq/smartsell/internal/customer/domain"
	"github.com/smartsellhq/smartsell/internal/order/domain"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
	"github.com/smartsellhq/smartsell/internal/workspacectx"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"github.com/smartsellhq/smartsell/pkg/db/option"
	"github.com/smartsellhq/smartsell/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxNumberRetries bounds how many successive order numbers a single
// create will try before conceding the store is too contended.
const maxNumberRetries = 3

var sortColumns = map[string]bool{
	"created_at":   true,
	"order_number": true,
	"total":        true,
	"status":       true,
}

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	StoreRepo    storedomain.Repository
	CustomerRepo customerdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	storeRepo    storedomain.Repository
	customerRepo customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("order.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		storeRepo:    p.StoreRepo,
		customerRepo: p.CustomerRepo,
	}
}

func (s *Service) resolveStore(ctx context.Context, raw string) (snowflake.ID, *storedomain.Store, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return 0, nil, domain.ErrInvalidWorkspace
	}

	storeID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, nil, domain.ErrInvalidStore
	}

	store, err := s.storeRepo.FindByID(ctx, s.db, workspaceID, storeID)
	if err != nil {
		return 0, nil, err
	}
	if store == nil {
		return 0, nil, domain.ErrNotFound
	}

	return workspaceID, store, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Order, error) {
	workspaceID, store, err := s.resolveStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	if len(req.Items) == 0 {
		return nil, domain.ErrInvalidItems
	}

	var customerID *snowflake.ID
	if strings.TrimSpace(req.CustomerID) != "" {
		id, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		customer, err := s.customerRepo.FindByID(ctx, s.db, workspaceID, store.ID, id)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		customerID = &id
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	var subtotal int64
	for _, item := range req.Items {
		if strings.TrimSpace(item.ProductName) == "" || item.Quantity <= 0 || item.UnitAmount < 0 {
			return nil, domain.ErrInvalidItems
		}
		items = append(items, domain.OrderItem{
			ProductName: strings.TrimSpace(item.ProductName),
			Quantity:    item.Quantity,
			UnitAmount:  item.UnitAmount,
		})
		subtotal += item.Quantity * item.UnitAmount
	}

	shipping := req.ShippingFee
	if shipping < 0 {
		shipping = 0
	}

	seq, err := s.repo.CountByStore(ctx, s.db, store.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:          s.genID.Generate(),
		WorkspaceID: workspaceID,
		StoreID:     store.ID,
		CustomerID:  customerID,
		Status:      domain.StatusPending,
		Currency:    store.Currency,
		Items:       datatypes.JSONSlice[domain.OrderItem](items),
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Total:       subtotal + shipping,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Concurrent creates race on the per-store sequence; on a number
	// collision, walk forward instead of recounting.
	if err := s.insertNumbered(ctx, order, store.Slug, seq+1); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("total", order.Total))

	return order, nil
}

// insertNumbered stamps the order with successive sequence numbers until
// the insert lands or the retry budget runs out.
func (s *Service) insertNumbered(ctx context.Context, order *domain.Order, slug string, seq int64) error {
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		order.OrderNumber = fmt.Sprintf("%s-%04d", strings.ToUpper(slug), seq+int64(attempt))
		err := s.repo.Create(ctx, s.db, order)
		if err == nil {
			return nil
		}
		if !dbpkg.IsDuplicateKeyErr(err) {
			return err
		}
		s.log.Warn("order number collision, retrying",
			zap.String("order_number", order.OrderNumber))
	}
	return domain.ErrNumberTaken
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	workspaceID, store, err := s.resolveStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return nil, domain.ErrInvalidStatus
	}

	limit := req.PageSize
	if limit <= 0 || limit > 250 {
		limit = 25
	}

	var cursor *pagination.Cursor
	if req.PageToken != "" {
		cursor, err = pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
	}

	var opts []option.Option
	if cursor == nil && (req.SortBy != "" || req.SortOrder != "") {
		opts = append(opts, option.WithSortBy(
			option.WithQuerySortBy(req.SortBy, req.SortOrder, sortColumns)))
	}

	orders, err := s.repo.Find(ctx, s.db, workspaceID, store.ID, req.Status, cursor, limit, opts...)
	if err != nil {
		return nil, err
	}

	orders, pageInfo, err := pagination.BuildCursorPageInfo(orders, limit, func(o domain.Order) pagination.Cursor {
		return pagination.Cursor{
			ID:        o.ID.String(),
			CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
	})
	if err != nil {
		return nil, err
	}

	resp := &domain.ListResponse{Orders: orders}
	if pageInfo.HasMore {
		resp.NextPageToken = pageInfo.NextPageToken
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, storeID, id string) (*domain.Order, error) {
	workspaceID, store, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, s.db, workspaceID, store.ID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) UpdateStatus(ctx context.Context, storeID, id string, status domain.OrderStatus) (*domain.Order, error) {
	workspaceID, store, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, s.db, workspaceID, store.ID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	if !domain.CanTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, status)
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, order); err != nil {
		return nil, err
	}
	return order, nil
}
