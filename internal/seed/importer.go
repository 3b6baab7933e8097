package seed

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/internal/app/repository"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/lensfolio/printshop-backend/pkg/util"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Report counts what an Apply did. Re-applying the same cards reports
// everything as Unchanged.
type Report struct {
	Sources   []string `json:"sources"`
	Created   int      `json:"created"`
	Updated   int      `json:"updated"`
	Unchanged int      `json:"unchanged"`
}

type outcome int

const (
	unchanged outcome = iota
	created
	updated
)

func (r *Report) count(o outcome) {
	switch o {
	case created:
		r.Created++
	case updated:
		r.Updated++
	default:
		r.Unchanged++
	}
}

// Violation is a product whose sub-option slots disagree with its type.
type Violation struct {
	ProductID     uint   `json:"product_id"`
	ProductName   string `json:"product_name"`
	ProductTypeID uint   `json:"product_type_id"`
	Reason        string `json:"reason"`
}

// Importer writes rate cards into the catalog by natural key.
type Importer struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewImporter(db *gorm.DB) *Importer {
	return &Importer{db: db, log: logger.Named("seed")}
}

// Apply upserts every card in one transaction. Any error rolls back all of
// them.
func (i *Importer) Apply(cards ...*RateCard) (*Report, error) {
	report := &Report{}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		a := newApplier(tx, report)
		for _, card := range cards {
			if err := a.applyCard(card); err != nil {
				return fmt.Errorf("%s: %w", card.Source, err)
			}
			report.Sources = append(report.Sources, card.Source)
		}
		return nil
	})
	if err != nil {
		i.log.Error("Rate card import failed", err)
		return nil, err
	}

	i.log.Info("Rate cards applied", map[string]interface{}{
		"sources":   report.Sources,
		"created":   report.Created,
		"updated":   report.Updated,
		"unchanged": report.Unchanged,
	})
	return report, nil
}

// ApplyDir loads and applies every rate card in dir.
func (i *Importer) ApplyDir(dir string) (*Report, error) {
	cards, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("no rate cards found in %s", dir)
	}
	return i.Apply(cards...)
}

// Deduplicate removes products sharing (type, width, height, sub-options),
// keeping the lowest id of each group.
func (i *Importer) Deduplicate() (int64, error) {
	repo := repository.NewProductRepository(i.db)
	products, err := repo.FindWithFilter(repository.ProductFilter{IncludeInactive: true})
	if err != nil {
		return 0, err
	}
	sort.Slice(products, func(a, b int) bool { return products[a].ID < products[b].ID })

	seen := make(map[string]uint)
	var duplicates []uint
	for _, p := range products {
		key := naturalKeyString(p)
		if keep, ok := seen[key]; ok {
			i.log.Debug("Duplicate product", map[string]interface{}{
				"product_id": p.ID,
				"kept_id":    keep,
			})
			duplicates = append(duplicates, p.ID)
			continue
		}
		seen[key] = p.ID
	}

	removed, err := repo.DeleteByIDs(duplicates)
	if err != nil {
		return 0, err
	}
	i.log.Info("Duplicate products removed", map[string]interface{}{
		"removed": removed,
	})
	return removed, nil
}

func naturalKeyString(p model.Product) string {
	return fmt.Sprintf("%d|%g|%g|%s|%s", p.ProductTypeID, p.Width, p.Height, optionalID(p.SubOption1ID), optionalID(p.SubOption2ID))
}

func optionalID(id *uint) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(*id)
}

// Audit lists products whose sub-option slots violate their type's level
// count, including slots pointing at deleted sub-options.
func (i *Importer) Audit() ([]Violation, error) {
	repo := repository.NewProductRepository(i.db)
	products, err := repo.FindWithFilter(repository.ProductFilter{IncludeInactive: true, Preload: true})
	if err != nil {
		return nil, err
	}

	violations := []Violation{}
	for _, p := range products {
		reason := ""
		switch {
		case p.ProductType == nil:
			reason = fmt.Sprintf("product type %d does not exist", p.ProductTypeID)
		case p.SubOption1ID != nil && p.SubOption1 == nil:
			reason = fmt.Sprintf("sub-option %d does not exist", *p.SubOption1ID)
		case p.SubOption2ID != nil && p.SubOption2 == nil:
			reason = fmt.Sprintf("sub-option %d does not exist", *p.SubOption2ID)
		default:
			if err := p.ProductType.ValidateSlots(p.SubOption1, p.SubOption2); err != nil {
				reason = err.Error()
			}
		}
		if reason != "" {
			violations = append(violations, Violation{
				ProductID:     p.ID,
				ProductName:   p.Name,
				ProductTypeID: p.ProductTypeID,
				Reason:        reason,
			})
		}
	}

	i.log.Info("Catalog audit finished", map[string]interface{}{
		"products":   len(products),
		"violations": len(violations),
	})
	return violations, nil
}

// applier holds the transaction-bound repositories for one Apply.
type applier struct {
	report       *Report
	productTypes repository.ProductTypeRepository
	subOptions   repository.SubOptionRepository
	categories   repository.CategoryRepository
	products     repository.ProductRepository
}

func newApplier(tx *gorm.DB, report *Report) *applier {
	return &applier{
		report:       report,
		productTypes: repository.NewProductTypeRepository(tx),
		subOptions:   repository.NewSubOptionRepository(tx),
		categories:   repository.NewCategoryRepository(tx),
		products:     repository.NewProductRepository(tx),
	}
}

func (a *applier) applyCard(card *RateCard) error {
	for i := range card.ProductTypes {
		ptCard := &card.ProductTypes[i]
		productType, err := a.upsertProductType(ptCard)
		if err != nil {
			return err
		}

		orders := subOptionOrders(ptCard.SubOptions)
		if err := a.parkReorderedSubOptions(productType, ptCard.SubOptions, orders); err != nil {
			return err
		}
		for i, soCard := range ptCard.SubOptions {
			if err := a.upsertSubOption(productType, soCard, orders[i]); err != nil {
				return err
			}
		}

		for _, catCard := range ptCard.Categories {
			if _, err := a.upsertCategory(productType, catCard, false); err != nil {
				return err
			}
		}

		for _, pCard := range ptCard.Products {
			if err := a.upsertProducts(productType, pCard, ptCard.Reference); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *applier) upsertProductType(card *ProductTypeCard) (*model.ProductType, error) {
	existing, err := a.productTypes.FindByName(card.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if card.Reference {
		if existing == nil {
			return nil, fmt.Errorf("product type %q does not exist", card.Name)
		}
		return existing, nil
	}

	active := true
	if card.Active != nil {
		active = *card.Active
	}
	want := model.ProductType{
		Name:               card.Name,
		DisplayOrder:       card.DisplayOrder,
		HasSubOptions:      card.MaxSubOptionLevels > 0,
		MaxSubOptionLevels: card.MaxSubOptionLevels,
		Active:             active,
	}
	if err := want.Validate(); err != nil {
		return nil, fmt.Errorf("product type %q: %w", card.Name, err)
	}

	if existing == nil {
		if err := a.productTypes.Create(&want); err != nil {
			return nil, err
		}
		a.report.count(created)
		return &want, nil
	}

	if existing.DisplayOrder == want.DisplayOrder &&
		existing.HasSubOptions == want.HasSubOptions &&
		existing.MaxSubOptionLevels == want.MaxSubOptionLevels &&
		existing.Active == want.Active {
		a.report.count(unchanged)
		return existing, nil
	}

	existing.DisplayOrder = want.DisplayOrder
	existing.HasSubOptions = want.HasSubOptions
	existing.MaxSubOptionLevels = want.MaxSubOptionLevels
	existing.Active = want.Active
	if err := a.productTypes.Update(existing); err != nil {
		return nil, err
	}
	a.report.count(updated)
	return existing, nil
}

// subOptionOrders resolves each card's display order. A zero display order
// falls back to the option's position within its level.
func subOptionOrders(cards []SubOptionCard) []int {
	orders := make([]int, len(cards))
	levelPos := make(map[int]int)
	for i, card := range cards {
		levelPos[card.Level]++
		orders[i] = card.DisplayOrder
		if orders[i] == 0 {
			orders[i] = levelPos[card.Level]
		}
	}
	return orders
}

// parkReorderedSubOptions moves existing options whose display order is about
// to change to a negative, id-derived order. The unique (type, level,
// display_order) index would otherwise reject a card that swaps two options.
func (a *applier) parkReorderedSubOptions(productType *model.ProductType, cards []SubOptionCard, orders []int) error {
	byLevel := make(map[int]map[string]int)
	for i, card := range cards {
		if byLevel[card.Level] == nil {
			byLevel[card.Level] = make(map[string]int)
		}
		byLevel[card.Level][card.Value] = orders[i]
	}

	for level, targets := range byLevel {
		existing, err := a.subOptions.FindByTypeAndLevel(productType.ID, level, true)
		if err != nil {
			return err
		}
		for i := range existing {
			option := &existing[i]
			target, ok := targets[option.Value]
			if !ok || option.DisplayOrder == target {
				continue
			}
			option.DisplayOrder = -int(option.ID)
			if err := a.subOptions.Update(option); err != nil {
				return err
			}
		}
	}
	return nil
}

// upsertSubOption keys on (type, level, value).
func (a *applier) upsertSubOption(productType *model.ProductType, card SubOptionCard, displayOrder int) error {
	existing, err := a.subOptions.FindByTypeLevelValue(productType.ID, card.Level, card.Value)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing == nil {
		option := &model.SubOption{
			ProductTypeID: productType.ID,
			Level:         card.Level,
			OptionType:    card.OptionType,
			Name:          card.Name,
			Value:         card.Value,
			ImagePath:     card.ImagePath,
			DisplayOrder:  displayOrder,
			Active:        true,
		}
		if err := a.subOptions.Create(option); err != nil {
			return err
		}
		a.report.count(created)
		return nil
	}

	if existing.OptionType == card.OptionType &&
		existing.Name == card.Name &&
		existing.ImagePath == card.ImagePath &&
		existing.DisplayOrder == displayOrder &&
		existing.Active {
		a.report.count(unchanged)
		return nil
	}

	existing.OptionType = card.OptionType
	existing.Name = card.Name
	existing.ImagePath = card.ImagePath
	existing.DisplayOrder = displayOrder
	existing.Active = true
	if err := a.subOptions.Update(existing); err != nil {
		return err
	}
	a.report.count(updated)
	return nil
}

// upsertCategory creates or updates a category. Implicit categories (named
// only by a product row) are created but never rewritten.
func (a *applier) upsertCategory(productType *model.ProductType, card CategoryCard, implicit bool) (*model.Category, error) {
	existing, err := a.categories.FindByName(card.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing == nil {
		category := &model.Category{
			Name:          card.Name,
			Description:   card.Description,
			ProductTypeID: &productType.ID,
			DisplayOrder:  card.DisplayOrder,
		}
		if err := a.categories.Create(category); err != nil {
			return nil, err
		}
		a.report.count(created)
		return category, nil
	}
	if implicit {
		return existing, nil
	}

	sameType := existing.ProductTypeID != nil && *existing.ProductTypeID == productType.ID
	if sameType && existing.Description == card.Description && existing.DisplayOrder == card.DisplayOrder {
		a.report.count(unchanged)
		return existing, nil
	}

	existing.Description = card.Description
	existing.DisplayOrder = card.DisplayOrder
	existing.ProductTypeID = &productType.ID
	if err := a.categories.Update(existing); err != nil {
		return nil, err
	}
	a.report.count(updated)
	return existing, nil
}

func (a *applier) resolveSubOption(productType *model.ProductType, level int, value string) (*model.SubOption, error) {
	if value == "" {
		return nil, nil
	}
	option, err := a.subOptions.FindByTypeLevelValue(productType.ID, level, value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product type %q has no level %d sub-option %q", productType.Name, level, value)
		}
		return nil, err
	}
	return option, nil
}

func (a *applier) upsertProducts(productType *model.ProductType, card ProductCard, implicitCategory bool) error {
	category, err := a.categories.FindByName(card.Category)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if !implicitCategory {
			return fmt.Errorf("category %q is not defined", card.Category)
		}
		if category, err = a.upsertCategory(productType, CategoryCard{Name: card.Category}, true); err != nil {
			return err
		}
	}

	sub1, err := a.resolveSubOption(productType, 1, card.SubOption1)
	if err != nil {
		return err
	}
	sub2, err := a.resolveSubOption(productType, 2, card.SubOption2)
	if err != nil {
		return err
	}
	if err := productType.ValidateSlots(sub1, sub2); err != nil {
		return err
	}

	prefix := card.NamePrefix
	if prefix == "" {
		prefix = productType.Name
	}

	for _, sizeCard := range card.Sizes {
		width, height, err := util.ParseSize(sizeCard.Size)
		if err != nil {
			return fmt.Errorf("size %q: %w", sizeCard.Size, err)
		}
		cost, err := decimal.NewFromString(sizeCard.Cost)
		if err != nil {
			return fmt.Errorf("size %q: cost %q: %w", sizeCard.Size, sizeCard.Cost, err)
		}

		want := model.Product{
			Name:                  productName(prefix, width, height, sub1, sub2),
			CategoryID:            category.ID,
			ProductTypeID:         productType.ID,
			Width:                 width,
			Height:                height,
			CostPrice:             cost,
			ProviderCategoryID:    card.ProviderCategoryID,
			ProviderSubcategoryID: card.ProviderSubcategoryID,
			ProviderOptionID:      card.ProviderOptionID,
			SubOption1ID:          optionID(sub1),
			SubOption2ID:          optionID(sub2),
			Active:                true,
		}
		if err := a.upsertProduct(want); err != nil {
			return err
		}
	}
	return nil
}

// upsertProduct keys on the natural key. A stored per-product markup
// override is kept.
func (a *applier) upsertProduct(want model.Product) error {
	existing, err := a.products.FindByNaturalKey(repository.NaturalKey{
		ProductTypeID: want.ProductTypeID,
		Width:         want.Width,
		Height:        want.Height,
		SubOption1ID:  want.SubOption1ID,
		SubOption2ID:  want.SubOption2ID,
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing == nil {
		if err := a.products.Create(&want); err != nil {
			return err
		}
		a.report.count(created)
		return nil
	}

	if existing.Name == want.Name &&
		existing.CategoryID == want.CategoryID &&
		existing.CostPrice.Equal(want.CostPrice) &&
		existing.ProviderCategoryID == want.ProviderCategoryID &&
		existing.ProviderSubcategoryID == want.ProviderSubcategoryID &&
		existing.ProviderOptionID == want.ProviderOptionID &&
		existing.Active {
		a.report.count(unchanged)
		return nil
	}

	existing.Name = want.Name
	existing.CategoryID = want.CategoryID
	existing.CostPrice = want.CostPrice
	existing.ProviderCategoryID = want.ProviderCategoryID
	existing.ProviderSubcategoryID = want.ProviderSubcategoryID
	existing.ProviderOptionID = want.ProviderOptionID
	existing.Active = true
	if err := a.products.Update(existing); err != nil {
		return err
	}
	a.report.count(updated)
	return nil
}

func optionID(option *model.SubOption) *uint {
	if option == nil {
		return nil
	}
	id := option.ID
	return &id
}
