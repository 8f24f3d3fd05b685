package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/StoicRounin/paystack-gateway/internal/cache"
	"github.com/StoicRounin/paystack-gateway/internal/clock"
	settingsdomain "github.com/StoicRounin/paystack-gateway/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultCurrency  = "GHS"
	settingsCacheTTL = 30 * time.Second
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  settingsdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  settingsdomain.Repository
	cache *cache.TTLCache[int64, settingsdomain.Settings]
}

func NewService(p Params) settingsdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("settings.service"),
		clock: p.Clock,
		repo:  p.Repo,
		cache: cache.NewTTLCache[int64, settingsdomain.Settings](),
	}
}

func (s *Service) Load(ctx context.Context, storeID int64) (settingsdomain.Settings, error) {
	if storeID < 0 {
		return settingsdomain.Settings{}, settingsdomain.ErrInvalidStore
	}
	if cached, ok := s.cache.Get(storeID); ok {
		return cached, nil
	}

	values, err := s.mergedValues(ctx, storeID)
	if err != nil {
		return settingsdomain.Settings{}, err
	}

	settings := fromValues(values)
	s.cache.Set(storeID, settings, settingsCacheTTL)
	return settings, nil
}

func (s *Service) Overrides(ctx context.Context, storeID int64) (settingsdomain.Overrides, error) {
	if storeID <= settingsdomain.DefaultStoreScope {
		return settingsdomain.Overrides{}, nil
	}

	rows, err := s.repo.List(ctx, s.db, storeID)
	if err != nil {
		return settingsdomain.Overrides{}, err
	}

	present := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		present[row.Name] = struct{}{}
	}

	has := func(name string) bool {
		_, ok := present[name]
		return ok
	}
	return settingsdomain.Overrides{
		UseSandbox:              has(settingsdomain.NameUseSandbox),
		LiveSecretKey:           has(settingsdomain.NameLiveSecretKey),
		TestSecretKey:           has(settingsdomain.NameTestSecretKey),
		PassProductDetails:      has(settingsdomain.NamePassProductDetails),
		AdditionalFee:           has(settingsdomain.NameAdditionalFee),
		AdditionalFeePercentage: has(settingsdomain.NameAdditionalFeePercentage),
		StrictAmountCheck:       has(settingsdomain.NameStrictAmountCheck),
		Currency:                has(settingsdomain.NameCurrency),
	}, nil
}

func (s *Service) Save(ctx context.Context, storeID int64, settings settingsdomain.Settings, overrides settingsdomain.Overrides) error {
	if storeID < 0 {
		return settingsdomain.ErrInvalidStore
	}

	// The default scope stores every field; a store scope stores only the
	// overridden ones and sheds the rest so defaults apply again.
	all := storeID == settingsdomain.DefaultStoreScope
	fields := []struct {
		name       string
		value      string
		overridden bool
	}{
		{settingsdomain.NameUseSandbox, strconv.FormatBool(settings.UseSandbox), overrides.UseSandbox},
		{settingsdomain.NameLiveSecretKey, strings.TrimSpace(settings.LiveSecretKey), overrides.LiveSecretKey},
		{settingsdomain.NameTestSecretKey, strings.TrimSpace(settings.TestSecretKey), overrides.TestSecretKey},
		{settingsdomain.NamePassProductDetails, strconv.FormatBool(settings.PassProductDetails), overrides.PassProductDetails},
		{settingsdomain.NameAdditionalFee, strconv.FormatFloat(settings.AdditionalFee, 'f', -1, 64), overrides.AdditionalFee},
		{settingsdomain.NameAdditionalFeePercentage, strconv.FormatBool(settings.AdditionalFeePercentage), overrides.AdditionalFeePercentage},
		{settingsdomain.NameStrictAmountCheck, strconv.FormatBool(settings.StrictAmountCheck), overrides.StrictAmountCheck},
		{settingsdomain.NameCurrency, strings.ToUpper(strings.TrimSpace(settings.Currency)), overrides.Currency},
	}

	now := s.clock.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, field := range fields {
			if all || field.overridden {
				row := settingsdomain.Setting{
					StoreID:   storeID,
					Name:      field.name,
					Value:     field.value,
					UpdatedAt: now,
				}
				if err := s.repo.Upsert(ctx, tx, row); err != nil {
					return err
				}
				continue
			}
			if err := s.repo.Delete(ctx, tx, storeID, field.name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if all {
		s.cache.Purge()
	} else {
		s.cache.Delete(storeID)
	}
	return nil
}

func (s *Service) mergedValues(ctx context.Context, storeID int64) (map[string]string, error) {
	values := make(map[string]string)

	defaults, err := s.repo.List(ctx, s.db, settingsdomain.DefaultStoreScope)
	if err != nil {
		return nil, err
	}
	for _, row := range defaults {
		values[row.Name] = row.Value
	}

	if storeID != settingsdomain.DefaultStoreScope {
		overrides, err := s.repo.List(ctx, s.db, storeID)
		if err != nil {
			return nil, err
		}
		for _, row := range overrides {
			values[row.Name] = row.Value
		}
	}

	return values, nil
}

func fromValues(values map[string]string) settingsdomain.Settings {
	settings := settingsdomain.Settings{
		UseSandbox:              parseBool(values[settingsdomain.NameUseSandbox]),
		LiveSecretKey:           strings.TrimSpace(values[settingsdomain.NameLiveSecretKey]),
		TestSecretKey:           strings.TrimSpace(values[settingsdomain.NameTestSecretKey]),
		PassProductDetails:      parseBool(values[settingsdomain.NamePassProductDetails]),
		AdditionalFee:           parseFloat(values[settingsdomain.NameAdditionalFee]),
		AdditionalFeePercentage: parseBool(values[settingsdomain.NameAdditionalFeePercentage]),
		StrictAmountCheck:       parseBool(values[settingsdomain.NameStrictAmountCheck]),
		Currency:                strings.ToUpper(strings.TrimSpace(values[settingsdomain.NameCurrency])),
	}
	if settings.Currency == "" {
		settings.Currency = defaultCurrency
	}
	return settings
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return value
}

func parseFloat(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}
