package service

import (
	"errors"

	"github.com/lensfolio/printshop-backend/internal/app/model"
)

// ResolveState names where a configuration session stands.
type ResolveState string

const (
	StateTypeSelected   ResolveState = "type_selected"
	StateLevel1Selected ResolveState = "level1_selected"
	StateLevel2Selected ResolveState = "level2_selected"
	StateSizesListed    ResolveState = "sizes_listed"
)

type ResolveRequest struct {
	ProductTypeID uint
	SubOption1ID  *uint
	SubOption2ID  *uint
}

// Resolution is either the next set of sub-options to choose from
// (NextLevel > 0) or the orderable products (State == StateSizesListed).
type Resolution struct {
	State            ResolveState          `json:"state"`
	ProductType      *model.ProductType    `json:"product_type"`
	SubOption1       *model.SubOption      `json:"sub_option_1,omitempty"`
	SubOption2       *model.SubOption      `json:"sub_option_2,omitempty"`
	NextLevel        int                   `json:"next_level,omitempty"`
	SubOptions       []model.SubOption     `json:"sub_options,omitempty"`
	Products         []model.PricedProduct `json:"products,omitempty"`
	MarkupPercentage *float64              `json:"markup_percentage,omitempty"`
}

type ResolverService interface {
	Resolve(req ResolveRequest) (*Resolution, error)
}

type resolverService struct {
	catalog  CatalogService
	products ProductService
}

func NewResolverService(catalog CatalogService, products ProductService) ResolverService {
	return &resolverService{catalog: catalog, products: products}
}

// Resolve advances one step: it offers the next level's sub-options when the
// type declares one and it has active options, otherwise it lists sizes.
func (s *resolverService) Resolve(req ResolveRequest) (*Resolution, error) {
	if req.ProductTypeID == 0 {
		return nil, invalid("product_type_id", "is required")
	}
	if req.SubOption2ID != nil && req.SubOption1ID == nil {
		return nil, invalid("sub_option_2_id", "requires sub_option_1_id")
	}

	productType, err := s.catalog.GetProductType(req.ProductTypeID)
	if err != nil {
		return nil, err
	}
	res := &Resolution{State: StateTypeSelected, ProductType: productType}

	selected := 0
	if req.SubOption1ID != nil {
		if res.SubOption1, err = s.selectedOption(productType, *req.SubOption1ID, 1, "sub_option_1_id"); err != nil {
			return nil, err
		}
		res.State = StateLevel1Selected
		selected = 1
	}
	if req.SubOption2ID != nil {
		if res.SubOption2, err = s.selectedOption(productType, *req.SubOption2ID, 2, "sub_option_2_id"); err != nil {
			return nil, err
		}
		res.State = StateLevel2Selected
		selected = 2
	}

	if next := selected + 1; next <= productType.MaxSubOptionLevels {
		options, err := s.catalog.ListSubOptions(productType.ID, next)
		if err != nil {
			return nil, err
		}
		if len(options) > 0 {
			res.NextLevel = next
			res.SubOptions = options
			return res, nil
		}
	}

	listing, err := s.products.ListProducts(ProductListOptions{
		ProductTypeID: productType.ID,
		SubOption1ID:  req.SubOption1ID,
		SubOption2ID:  req.SubOption2ID,
	})
	if err != nil {
		return nil, err
	}
	markup := listing.MarkupPercentage.InexactFloat64()
	res.State = StateSizesListed
	res.Products = listing.Products
	res.MarkupPercentage = &markup
	return res, nil
}

func (s *resolverService) selectedOption(productType *model.ProductType, id uint, level int, field string) (*model.SubOption, error) {
	if level > productType.MaxSubOptionLevels {
		return nil, invalid(field, "product type %q has %d sub-option level(s)", productType.Name, productType.MaxSubOptionLevels)
	}
	option, err := s.catalog.GetSubOption(id)
	if err != nil {
		if errors.Is(err, ErrSubOptionNotFound) {
			return nil, invalid(field, "sub-option %d does not exist", id)
		}
		return nil, err
	}
	if option.ProductTypeID != productType.ID || option.Level != level || !option.Active {
		return nil, invalid(field, "sub-option %d is not a level %d option of %q", id, level, productType.Name)
	}
	return option, nil
}
