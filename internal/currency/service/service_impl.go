package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/currency/domain"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
	"github.com/smartsellhq/smartsell/internal/workspacectx"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	StoreRepo storedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	storeRepo storedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("currency.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		storeRepo: p.StoreRepo,
	}
}

func (s *Service) CreateCurrency(ctx context.Context, req domain.CreateCurrencyRequest) (*domain.Currency, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return nil, domain.ErrInvalidWorkspace
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, domain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByCode(ctx, s.db, workspaceID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCurrency, code)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now().UTC()
	currency := &domain.Currency{
		ID:          s.genID.Generate(),
		WorkspaceID: workspaceID,
		Code:        code,
		Name:        name,
		NameAr:      strings.TrimSpace(req.NameAr),
		Symbol:      strings.TrimSpace(req.Symbol),
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, s.db, currency); err != nil {
		// Unique index backstop for a concurrent insert of the same code.
		if dbpkg.IsDuplicateKeyErr(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCurrency, code)
		}
		return nil, err
	}

	return currency, nil
}

func (s *Service) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return nil, domain.ErrInvalidWorkspace
	}
	return s.repo.FindAll(ctx, s.db, workspaceID)
}

func (s *Service) UpdateCurrency(ctx context.Context, req domain.UpdateCurrencyRequest) (*domain.Currency, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return nil, domain.ErrInvalidWorkspace
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	currency, err := s.repo.FindByID(ctx, s.db, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		currency.Name = name
	}
	if req.NameAr != nil {
		currency.NameAr = strings.TrimSpace(*req.NameAr)
	}
	if req.Symbol != nil {
		currency.Symbol = strings.TrimSpace(*req.Symbol)
	}
	if req.IsActive != nil {
		currency.IsActive = *req.IsActive
	}

	currency.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// DeleteCurrency removes the catalog row only. Stores referencing the
// code keep the dangling string; settings updates re-validate against
// the catalog so the code cannot be re-selected.
func (s *Service) DeleteCurrency(ctx context.Context, id string) error {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return domain.ErrInvalidWorkspace
	}

	currencyID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	currency, err := s.repo.FindByID(ctx, s.db, workspaceID, currencyID)
	if err != nil {
		return err
	}
	if currency == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, workspaceID, currencyID)
}

func (s *Service) GetStoreSettings(ctx context.Context, storeID string) (*domain.StoreSettings, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return nil, domain.ErrInvalidWorkspace
	}

	id, err := snowflake.ParseString(strings.TrimSpace(storeID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	store, err := s.storeRepo.FindByID(ctx, s.db, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	catalog, err := s.repo.FindAll(ctx, s.db, workspaceID)
	if err != nil {
		return nil, err
	}

	return buildSettings(store, catalog), nil
}

func (s *Service) UpdateStoreSettings(ctx context.Context, storeID string, patch domain.SettingsPatch) (*domain.StoreSettings, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return nil, domain.ErrInvalidWorkspace
	}

	id, err := snowflake.ParseString(strings.TrimSpace(storeID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var (
		store   *storedomain.Store
		catalog []domain.Currency
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store, err = s.storeRepo.FindByID(ctx, tx, workspaceID, id)
		if err != nil {
			return err
		}
		if store == nil {
			return domain.ErrNotFound
		}

		catalog, err = s.repo.FindAll(ctx, tx, workspaceID)
		if err != nil {
			return err
		}
		known := make(map[string]struct{}, len(catalog))
		for _, c := range catalog {
			known[c.Code] = struct{}{}
		}

		if patch.DefaultCurrency != nil {
			if _, ok := known[*patch.DefaultCurrency]; !ok {
				return fmt.Errorf("%w: %s", domain.ErrInvalidCurrencyCode, *patch.DefaultCurrency)
			}
		}
		if patch.EnabledCurrencies != nil {
			for _, code := range *patch.EnabledCurrencies {
				if _, ok := known[code]; !ok {
					return fmt.Errorf("%w: %s", domain.ErrInvalidCurrencyCode, code)
				}
			}
		}

		if patch.DefaultCurrency != nil {
			store.Currency = *patch.DefaultCurrency
		}
		if patch.EnabledCurrencies != nil {
			enabled := append([]string(nil), *patch.EnabledCurrencies...)
			// The default goes at the head unless the new list already
			// carries it somewhere; no dedup beyond this single prepend.
			if patch.DefaultCurrency != nil && !contains(enabled, *patch.DefaultCurrency) {
				enabled = append([]string{*patch.DefaultCurrency}, enabled...)
			}
			store.EnabledCurrencies = datatypes.JSONSlice[string](enabled)
		}
		if patch.AutoConvert != nil {
			store.AutoConvert = *patch.AutoConvert
		}
		if patch.ExchangeRates != nil {
			rates := make(datatypes.JSONMap, len(*patch.ExchangeRates))
			for code, rate := range *patch.ExchangeRates {
				rates[code] = rate
			}
			store.ExchangeRates = rates
			now := time.Now().UTC()
			store.RatesUpdatedAt = &now
		}

		store.UpdatedAt = time.Now().UTC()
		return s.storeRepo.Update(ctx, tx, store)
	})
	if err != nil {
		return nil, err
	}

	return buildSettings(store, catalog), nil
}

func buildSettings(store *storedomain.Store, catalog []domain.Currency) *domain.StoreSettings {
	enabled := []string(store.EnabledCurrencies)
	if len(enabled) == 0 && store.Currency != "" {
		enabled = []string{store.Currency}
	}
	if enabled == nil {
		enabled = []string{}
	}

	rates := make(map[string]float64, len(store.ExchangeRates))
	for code, raw := range store.ExchangeRates {
		switch v := raw.(type) {
		case float64:
			rates[code] = v
		case int64:
			rates[code] = float64(v)
		}
	}

	return &domain.StoreSettings{
		StoreID:           store.ID.String(),
		DefaultCurrency:   store.Currency,
		EnabledCurrencies: enabled,
		AutoConvert:       store.AutoConvert,
		ExchangeRates:     rates,
		RatesUpdatedAt:    store.RatesUpdatedAt,
		Catalog:           catalog,
	}
}

func contains(list []string, code string) bool {
	for _, c := range list {
		if c == code {
			return true
		}
	}
	return false
}
