package service

import (
	"errors"
	"strings"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/internal/app/repository"
	"github.com/lensfolio/printshop-backend/internal/pricing"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/lensfolio/printshop-backend/pkg/util"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductListOptions selects products of one type. Nil sub-options and an
// empty size are wildcards.
type ProductListOptions struct {
	ProductTypeID uint
	SubOption1ID  *uint
	SubOption2ID  *uint
	Size          string
}

// ProductListing is a priced product list plus the global markup it was
// priced with.
type ProductListing struct {
	Products         []model.PricedProduct
	MarkupPercentage decimal.Decimal
}

// ProductInput carries every writable product field. Size, when set, wins
// over Width and Height.
type ProductInput struct {
	Name                  string
	CategoryID            uint
	ProductTypeID         uint
	Width                 float64
	Height                float64
	Size                  string
	CostPrice             decimal.Decimal
	MarkupPercentage      *decimal.Decimal
	ProviderCategoryID    string
	ProviderSubcategoryID string
	ProviderOptionID      string
	SubOption1ID          *uint
	SubOption2ID          *uint
	Active                *bool
}

type ProductService interface {
	ListProducts(opts ProductListOptions) (*ProductListing, error)
	GetProduct(id uint) (*model.ProductDetail, error)
	FindProductBySize(productTypeID uint, subOption1ID, subOption2ID *uint, size string) (*model.ProductDetail, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	UpdateCostPrice(id uint, cost decimal.Decimal) error
	DeleteProduct(id uint) error

	ListVariants(productID uint) ([]model.ProductVariant, error)
	CreateVariant(productID uint, variant *model.ProductVariant) error
	DeleteVariant(id uint) error
	PriceWithVariant(productID uint, variantID *uint) (*model.VariantPrice, error)
}

type productService struct {
	productRepo     repository.ProductRepository
	variantRepo     repository.ProductVariantRepository
	productTypeRepo repository.ProductTypeRepository
	subOptionRepo   repository.SubOptionRepository
	categoryRepo    repository.CategoryRepository
	pricing         PricingService
	publisher       EventPublisher
}

func NewProductService(
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
	productTypeRepo repository.ProductTypeRepository,
	subOptionRepo repository.SubOptionRepository,
	categoryRepo repository.CategoryRepository,
	pricingService PricingService,
	publisher EventPublisher,
) ProductService {
	return &productService{
		productRepo:     productRepo,
		variantRepo:     variantRepo,
		productTypeRepo: productTypeRepo,
		subOptionRepo:   subOptionRepo,
		categoryRepo:    categoryRepo,
		pricing:         pricingService,
		publisher:       publisherOrNoop(publisher),
	}
}

func (s *productService) ListProducts(opts ProductListOptions) (*ProductListing, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"product_type_id": opts.ProductTypeID,
		"sub_option_1_id": opts.SubOption1ID,
		"sub_option_2_id": opts.SubOption2ID,
		"size":            opts.Size,
	})

	if opts.ProductTypeID == 0 {
		return nil, invalid("product_type_id", "is required")
	}
	if _, err := s.activeProductType(opts.ProductTypeID); err != nil {
		return nil, err
	}

	filter := repository.ProductFilter{
		ProductTypeID: opts.ProductTypeID,
		SubOption1ID:  opts.SubOption1ID,
		SubOption2ID:  opts.SubOption2ID,
		Preload:       true,
	}
	if opts.Size != "" {
		width, height, err := util.ParseSize(opts.Size)
		if err != nil {
			return nil, invalid("size", "%s", err.Error())
		}
		filter.Width, filter.Height = &width, &height
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	markup, err := s.pricing.GetMarkup()
	if err != nil {
		return nil, err
	}

	priced := make([]model.PricedProduct, 0, len(products))
	for i := range products {
		priced = append(priced, toPricedProduct(&products[i], markup))
	}
	return &ProductListing{Products: priced, MarkupPercentage: markup}, nil
}

func (s *productService) GetProduct(id uint) (*model.ProductDetail, error) {
	product, err := s.activeProduct(id)
	if err != nil {
		return nil, err
	}

	markup, err := s.pricing.GetMarkup()
	if err != nil {
		return nil, err
	}
	return toProductDetail(product, markup), nil
}

// FindProductBySize looks up one SKU by exact size after normalizing the
// size string, so "10×20" and `10" x 20"` find the row stored as 10x20.
func (s *productService) FindProductBySize(productTypeID uint, subOption1ID, subOption2ID *uint, size string) (*model.ProductDetail, error) {
	if strings.TrimSpace(size) == "" {
		return nil, invalid("size", "is required")
	}
	listing, err := s.ListProducts(ProductListOptions{
		ProductTypeID: productTypeID,
		SubOption1ID:  subOption1ID,
		SubOption2ID:  subOption2ID,
		Size:          size,
	})
	if err != nil {
		return nil, err
	}
	if len(listing.Products) == 0 {
		return nil, ErrProductNotFound
	}
	return s.GetProduct(listing.Products[0].ID)
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	product := &model.Product{Active: true}
	if err := s.applyInput(product, input); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id":      product.ID,
		"product_type_id": product.ProductTypeID,
		"size":            product.Size(),
	})
	event := newEvent(EventProductCreated)
	event.ProductID = product.ID
	s.publisher.Publish(event)
	return product, nil
}

// UpdateProduct replaces every writable field and re-checks the sub-option
// invariant, so a product cannot be activated with missing slots.
func (s *productService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.applyInput(product, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	event := newEvent(EventProductUpdated)
	event.ProductID = product.ID
	s.publisher.Publish(event)
	return product, nil
}

func (s *productService) UpdateCostPrice(id uint, cost decimal.Decimal) error {
	if err := pricing.ValidateCost(cost); err != nil {
		return invalid("cost_price", "%s", err.Error())
	}

	if err := s.productRepo.UpdateCostPrice(id, cost); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	logger.Info("Product cost price updated", map[string]interface{}{
		"product_id": id,
		"cost_price": cost.String(),
	})
	event := newEvent(EventProductUpdated)
	event.ProductID = id
	s.publisher.Publish(event)
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	event := newEvent(EventProductDeleted)
	event.ProductID = id
	s.publisher.Publish(event)
	return nil
}

func (s *productService) ListVariants(productID uint) ([]model.ProductVariant, error) {
	if _, err := s.activeProduct(productID); err != nil {
		return nil, err
	}
	return s.variantRepo.FindByProductID(productID)
}

func (s *productService) CreateVariant(productID uint, variant *model.ProductVariant) error {
	if _, err := s.activeProduct(productID); err != nil {
		return err
	}
	variant.Description = strings.TrimSpace(variant.Description)
	if variant.Description == "" {
		return invalid("description", "is required")
	}

	variant.ProductID = productID
	if err := s.variantRepo.Create(variant); err != nil {
		return err
	}

	event := newEvent(EventProductUpdated)
	event.ProductID = productID
	s.publisher.Publish(event)
	return nil
}

func (s *productService) DeleteVariant(id uint) error {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}
	if err := s.variantRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}

	event := newEvent(EventProductUpdated)
	event.ProductID = variant.ProductID
	s.publisher.Publish(event)
	return nil
}

// PriceWithVariant prices a product with the given variant, or with its
// default variant when variantID is nil. A product without variants is
// priced with a zero modifier.
func (s *productService) PriceWithVariant(productID uint, variantID *uint) (*model.VariantPrice, error) {
	product, err := s.activeProduct(productID)
	if err != nil {
		return nil, err
	}

	var variant *model.ProductVariant
	if variantID != nil {
		variant, err = s.variantRepo.FindByID(*variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVariantNotFound
			}
			return nil, err
		}
		if variant.ProductID != productID {
			return nil, ErrVariantNotFound
		}
	} else {
		variants, err := s.variantRepo.FindByProductID(productID)
		if err != nil {
			return nil, err
		}
		for i := range variants {
			if variants[i].IsDefault {
				variant = &variants[i]
				break
			}
		}
	}

	global, err := s.pricing.GetMarkup()
	if err != nil {
		return nil, err
	}
	markup := pricing.EffectiveMarkup(global, product.MarkupPercentage)
	base := pricing.Round(pricing.CustomerPrice(product.CostPrice, markup))

	result := &model.VariantPrice{
		ProductID:        product.ID,
		CustomerPrice:    base.InexactFloat64(),
		Total:            base.InexactFloat64(),
		MarkupPercentage: markup.InexactFloat64(),
	}
	if variant != nil {
		result.VariantID = &variant.ID
		result.VariantDescription = variant.Description
		result.VariantPriceModifier = variant.PriceModifier.InexactFloat64()
		result.Total = pricing.ToFloat(pricing.VariantTotal(base, variant.PriceModifier))
	}
	return result, nil
}

func (s *productService) activeProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.Active {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) activeProductType(id uint) (*model.ProductType, error) {
	productType, err := s.productTypeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductTypeNotFound
		}
		return nil, err
	}
	if !productType.Active {
		return nil, ErrProductTypeNotFound
	}
	return productType, nil
}

// applyInput validates input and copies it onto product. Nothing is written
// when validation fails.
func (s *productService) applyInput(product *model.Product, input ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return invalid("name", "is required")
	}

	width, height := input.Width, input.Height
	if input.Size != "" {
		var err error
		width, height, err = util.ParseSize(input.Size)
		if err != nil {
			return invalid("size", "%s", err.Error())
		}
	}
	if !util.ValidDimensions(width, height) {
		return invalid("size", "width and height must be positive numbers")
	}

	if err := pricing.ValidateCost(input.CostPrice); err != nil {
		return invalid("cost_price", "%s", err.Error())
	}
	markup := decimal.NullDecimal{}
	if input.MarkupPercentage != nil {
		if err := pricing.ValidateMarkup(*input.MarkupPercentage); err != nil {
			return invalid("markup_percentage", "%s", err.Error())
		}
		markup = decimal.NewNullDecimal(*input.MarkupPercentage)
	}

	if input.CategoryID == 0 {
		return invalid("category_id", "is required")
	}
	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("category_id", "category %d does not exist", input.CategoryID)
		}
		return err
	}

	productType, err := s.productTypeRepo.FindByID(input.ProductTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("product_type_id", "product type %d does not exist", input.ProductTypeID)
		}
		return err
	}

	sub1, err := s.lookupSubOption("sub_option_1_id", input.SubOption1ID)
	if err != nil {
		return err
	}
	sub2, err := s.lookupSubOption("sub_option_2_id", input.SubOption2ID)
	if err != nil {
		return err
	}
	if err := productType.ValidateSlots(sub1, sub2); err != nil {
		return invalid("sub_options", "%s", err.Error())
	}

	product.Name = name
	product.CategoryID = input.CategoryID
	product.ProductTypeID = productType.ID
	product.Width = width
	product.Height = height
	product.CostPrice = input.CostPrice
	product.MarkupPercentage = markup
	product.ProviderCategoryID = input.ProviderCategoryID
	product.ProviderSubcategoryID = input.ProviderSubcategoryID
	product.ProviderOptionID = input.ProviderOptionID
	product.SubOption1ID = input.SubOption1ID
	product.SubOption2ID = input.SubOption2ID
	if input.Active != nil {
		product.Active = *input.Active
	}
	return nil
}

func (s *productService) lookupSubOption(field string, id *uint) (*model.SubOption, error) {
	if id == nil {
		return nil, nil
	}
	option, err := s.subOptionRepo.FindByID(*id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid(field, "sub-option %d does not exist", *id)
		}
		return nil, err
	}
	return option, nil
}

func toPricedProduct(p *model.Product, global decimal.Decimal) model.PricedProduct {
	markup := pricing.EffectiveMarkup(global, p.MarkupPercentage)
	priced := model.PricedProduct{
		ID:            p.ID,
		Name:          p.Name,
		Size:          p.Size(),
		Width:         p.Width,
		Height:        p.Height,
		CostPrice:     pricing.ToFloat(p.CostPrice),
		CustomerPrice: pricing.ToFloat(pricing.CustomerPrice(p.CostPrice, markup)),
		SubOption1ID:  p.SubOption1ID,
		SubOption2ID:  p.SubOption2ID,
	}
	if p.Category != nil {
		priced.CategoryName = p.Category.Name
	}
	return priced
}

func toProductDetail(p *model.Product, global decimal.Decimal) *model.ProductDetail {
	markup := pricing.EffectiveMarkup(global, p.MarkupPercentage)
	detail := &model.ProductDetail{
		ID:                    p.ID,
		Name:                  p.Name,
		Size:                  p.Size(),
		Width:                 p.Width,
		Height:                p.Height,
		CategoryID:            p.CategoryID,
		ProductTypeID:         p.ProductTypeID,
		SubOption1ID:          p.SubOption1ID,
		SubOption2ID:          p.SubOption2ID,
		ProviderCategoryID:    p.ProviderCategoryID,
		ProviderSubcategoryID: p.ProviderSubcategoryID,
		ProviderOptionID:      p.ProviderOptionID,
		CostPrice:             pricing.ToFloat(p.CostPrice),
		MarkupPercentage:      markup.InexactFloat64(),
		CustomerPrice:         pricing.ToFloat(pricing.CustomerPrice(p.CostPrice, markup)),
		Active:                p.Active,
	}
	if p.MarkupPercentage.Valid {
		override := p.MarkupPercentage.Decimal.InexactFloat64()
		detail.ProductMarkup = &override
	}
	if p.Category != nil {
		detail.CategoryName = p.Category.Name
	}
	if p.ProductType != nil {
		detail.ProductTypeName = p.ProductType.Name
	}
	if p.SubOption1 != nil {
		detail.SubOption1Name = p.SubOption1.Name
		detail.SubOption1Value = p.SubOption1.Value
	}
	if p.SubOption2 != nil {
		detail.SubOption2Name = p.SubOption2.Name
		detail.SubOption2Value = p.SubOption2.Value
	}
	return detail
}
