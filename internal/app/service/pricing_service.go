package service

import (
	"fmt"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/internal/app/repository"
	"github.com/lensfolio/printshop-backend/internal/pricing"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/lensfolio/printshop-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

// PricingService owns the global markup setting. The setting is re-read on
// every call; there is no cache to invalidate.
type PricingService interface {
	GetMarkup() (decimal.Decimal, error)
	SetMarkup(pct decimal.Decimal) (decimal.Decimal, error)
}

type pricingService struct {
	settingRepo   repository.SettingRepository
	defaultMarkup decimal.Decimal
	publisher     EventPublisher
	metrics       *metrics.CatalogMetrics
}

func NewPricingService(
	settingRepo repository.SettingRepository,
	defaultMarkup decimal.Decimal,
	publisher EventPublisher,
	catalogMetrics *metrics.CatalogMetrics,
) PricingService {
	return &pricingService{
		settingRepo:   settingRepo,
		defaultMarkup: defaultMarkup,
		publisher:     publisherOrNoop(publisher),
		metrics:       catalogMetrics,
	}
}

func (s *pricingService) GetMarkup() (decimal.Decimal, error) {
	setting, err := s.settingRepo.GetOrCreate(model.SettingGlobalMarkup, s.defaultMarkup.String())
	if err != nil {
		return decimal.Zero, err
	}

	pct, err := decimal.NewFromString(setting.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stored %s is not a number: %q", model.SettingGlobalMarkup, setting.Value)
	}
	return pct, nil
}

func (s *pricingService) SetMarkup(pct decimal.Decimal) (decimal.Decimal, error) {
	if err := pricing.ValidateMarkup(pct); err != nil {
		return decimal.Zero, invalid("markup", "%s", err.Error())
	}

	if err := s.settingRepo.Set(model.SettingGlobalMarkup, pct.String()); err != nil {
		return decimal.Zero, err
	}

	value := pct.InexactFloat64()
	logger.Info("Global markup updated", map[string]interface{}{
		"markup_percentage": value,
	})
	s.metrics.MarkupChanged(value)

	event := newEvent(EventMarkupUpdated)
	event.MarkupPercentage = &value
	s.publisher.Publish(event)
	return pct, nil
}
