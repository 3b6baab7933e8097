// Package seed loads versioned rate-card files and applies them to the
// catalog idempotently.
package seed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/pkg/util"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RateCard is one data file. Product types marked Reference must already
// exist; their definition is not touched.
type RateCard struct {
	Version      int               `yaml:"version" validate:"required,min=1"`
	ProductTypes []ProductTypeCard `yaml:"product_types" validate:"required,min=1,dive"`

	Source string `yaml:"-"`
}

type ProductTypeCard struct {
	Name               string          `yaml:"name" validate:"required"`
	DisplayOrder       int             `yaml:"display_order"`
	MaxSubOptionLevels int             `yaml:"max_sub_option_levels" validate:"min=0,max=2"`
	Active             *bool           `yaml:"active"`
	SubOptions         []SubOptionCard `yaml:"sub_options" validate:"dive"`
	Categories         []CategoryCard  `yaml:"categories" validate:"dive"`
	Products           []ProductCard   `yaml:"products" validate:"dive"`

	Reference bool `yaml:"-"`
}

type SubOptionCard struct {
	Level        int    `yaml:"level" validate:"required,min=1,max=2"`
	OptionType   string `yaml:"option_type" validate:"required"`
	Name         string `yaml:"name" validate:"required"`
	Value        string `yaml:"value" validate:"required"`
	DisplayOrder int    `yaml:"display_order" validate:"min=0"`
	ImagePath    string `yaml:"image_path"`
}

type CategoryCard struct {
	Name         string `yaml:"name" validate:"required"`
	Description  string `yaml:"description"`
	DisplayOrder int    `yaml:"display_order"`
}

// ProductCard expands into one product per size. Sub-options are referenced
// by value.
type ProductCard struct {
	Category              string     `yaml:"category" validate:"required"`
	NamePrefix            string     `yaml:"name_prefix"`
	SubOption1            string     `yaml:"sub_option_1"`
	SubOption2            string     `yaml:"sub_option_2"`
	ProviderCategoryID    string     `yaml:"provider_category_id"`
	ProviderSubcategoryID string     `yaml:"provider_subcategory_id"`
	ProviderOptionID      string     `yaml:"provider_option_id"`
	Sizes                 []SizeCard `yaml:"sizes" validate:"required,min=1,dive"`
}

type SizeCard struct {
	Size string `yaml:"size" validate:"required"`
	Cost string `yaml:"cost" validate:"required,numeric"`
}

var cardValidator = validator.New()

// ParseYAML decodes and validates a YAML rate card.
func ParseYAML(content []byte, source string) (*RateCard, error) {
	var card RateCard
	if err := yaml.Unmarshal(content, &card); err != nil {
		return nil, fmt.Errorf("%s: failed to parse YAML: %w", source, err)
	}
	card.Source = source

	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &card, nil
}

// Validate runs struct tag validation, then checks the pieces that depend on
// each other: level counts, sub-option references, sizes and costs.
func (c *RateCard) Validate() error {
	if err := cardValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid rate card: %s failed %q", fe.Namespace(), fe.Tag())
		}
		return err
	}

	seenTypes := make(map[string]bool)
	for i := range c.ProductTypes {
		pt := &c.ProductTypes[i]
		if seenTypes[pt.Name] {
			return fmt.Errorf("duplicate product type %q", pt.Name)
		}
		seenTypes[pt.Name] = true
		if err := pt.validate(); err != nil {
			return fmt.Errorf("product type %q: %w", pt.Name, err)
		}
	}
	return nil
}

func (pt *ProductTypeCard) validate() error {
	values := make(map[int]map[string]bool)
	for _, so := range pt.SubOptions {
		if !pt.Reference && so.Level > pt.MaxSubOptionLevels {
			return fmt.Errorf("sub-option %q is level %d but the type declares %d level(s)", so.Value, so.Level, pt.MaxSubOptionLevels)
		}
		if values[so.Level] == nil {
			values[so.Level] = make(map[string]bool)
		}
		if values[so.Level][so.Value] {
			return fmt.Errorf("duplicate level %d sub-option %q", so.Level, so.Value)
		}
		values[so.Level][so.Value] = true
	}

	for i, p := range pt.Products {
		if !pt.Reference {
			if err := p.checkSlots(pt.MaxSubOptionLevels); err != nil {
				return fmt.Errorf("product %d: %w", i, err)
			}
		}
		for _, s := range p.Sizes {
			if _, _, err := util.ParseSize(s.Size); err != nil {
				return fmt.Errorf("product %d: size %q: %w", i, s.Size, err)
			}
			cost, err := decimal.NewFromString(s.Cost)
			if err != nil || cost.IsNegative() {
				return fmt.Errorf("product %d: size %q: cost %q must be a non-negative number", i, s.Size, s.Cost)
			}
		}
	}
	return nil
}

func (p ProductCard) checkSlots(levels int) error {
	if p.SubOption2 != "" && p.SubOption1 == "" {
		return fmt.Errorf("sub_option_2 requires sub_option_1")
	}
	count := 0
	if p.SubOption1 != "" {
		count++
	}
	if p.SubOption2 != "" {
		count++
	}
	if count != levels {
		return fmt.Errorf("needs %d sub-option(s), got %d", levels, count)
	}
	return nil
}

// productName builds the display name: prefix, sub-option values, size.
func productName(prefix string, width, height float64, subOptions ...*model.SubOption) string {
	parts := []string{prefix}
	for _, so := range subOptions {
		if so != nil {
			parts = append(parts, so.Value)
		}
	}
	parts = append(parts, util.FormatSize(width, height))
	return strings.Join(parts, " ")
}
