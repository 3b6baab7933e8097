package service

import (
	"errors"

	"github.com/lensfolio/printshop-backend/internal/app/repository"
	"github.com/lensfolio/printshop-backend/internal/pricing"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/lensfolio/printshop-backend/pkg/metrics"
	"github.com/lensfolio/printshop-backend/pkg/util"
)

type QuoteRequest struct {
	ProductTypeID uint
	SubOption1ID  *uint
	SubOption2ID  *uint
	Width         float64
	Height        float64
	Size          string
}

// Quote prices a requested size. Match is "exact" when the catalog has the
// size, "closest" when the nearest-area row was used instead.
type Quote struct {
	Match            string  `json:"match"`
	RequestedSize    string  `json:"requested_size"`
	MatchedSize      string  `json:"matched_size"`
	ProductID        uint    `json:"product_id"`
	ProductName      string  `json:"product_name"`
	CostPrice        float64 `json:"cost_price"`
	CustomerPrice    float64 `json:"customer_price"`
	MarkupPercentage float64 `json:"markup_percentage"`
}

type QuoteService interface {
	Quote(req QuoteRequest) (*Quote, error)
}

type quoteService struct {
	productRepo repository.ProductRepository
	catalog     CatalogService
	pricing     PricingService
	metrics     *metrics.CatalogMetrics
}

func NewQuoteService(
	productRepo repository.ProductRepository,
	catalog CatalogService,
	pricingService PricingService,
	catalogMetrics *metrics.CatalogMetrics,
) QuoteService {
	return &quoteService{
		productRepo: productRepo,
		catalog:     catalog,
		pricing:     pricingService,
		metrics:     catalogMetrics,
	}
}

// Quote never refuses a size as long as one candidate row exists.
func (s *quoteService) Quote(req QuoteRequest) (*Quote, error) {
	if req.ProductTypeID == 0 {
		return nil, invalid("product_type_id", "is required")
	}
	width, height := req.Width, req.Height
	if req.Size != "" {
		var err error
		if width, height, err = util.ParseSize(req.Size); err != nil {
			return nil, invalid("size", "%s", err.Error())
		}
	}
	if !util.ValidDimensions(width, height) {
		return nil, invalid("size", "width and height must be positive numbers")
	}

	if _, err := s.catalog.GetProductType(req.ProductTypeID); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		ProductTypeID: req.ProductTypeID,
		SubOption1ID:  req.SubOption1ID,
		SubOption2ID:  req.SubOption2ID,
	})
	if err != nil {
		return nil, err
	}

	table := make([]pricing.SizePrice, 0, len(products))
	for i := range products {
		table = append(table, pricing.SizePrice{
			Width:  products[i].Width,
			Height: products[i].Height,
			Price:  products[i].CostPrice,
			Ref:    uint(i),
		})
	}

	match := metrics.MatchExact
	entry, ok := pricing.ExactSize(table, width, height)
	if !ok {
		match = metrics.MatchClosest
		entry, err = pricing.ClosestSize(table, width, height)
		if errors.Is(err, pricing.ErrNoRateCardEntry) {
			return nil, ErrNoQuote
		}
		if err != nil {
			return nil, err
		}
	}
	product := products[entry.Ref]

	global, err := s.pricing.GetMarkup()
	if err != nil {
		return nil, err
	}
	markup := pricing.EffectiveMarkup(global, product.MarkupPercentage)
	s.metrics.IncQuote(match)

	logger.Debug("Quote served", map[string]interface{}{
		"product_type_id": req.ProductTypeID,
		"requested_size":  util.FormatSize(width, height),
		"matched_size":    product.Size(),
		"match":           match,
	})

	return &Quote{
		Match:            match,
		RequestedSize:    util.FormatSize(width, height),
		MatchedSize:      product.Size(),
		ProductID:        product.ID,
		ProductName:      product.Name,
		CostPrice:        pricing.ToFloat(product.CostPrice),
		CustomerPrice:    pricing.ToFloat(pricing.CustomerPrice(product.CostPrice, markup)),
		MarkupPercentage: markup.InexactFloat64(),
	}, nil
}
