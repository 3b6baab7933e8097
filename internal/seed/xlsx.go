package seed

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Rate-sheet columns, in order, after a header row.
var sheetColumns = []string{
	"product_type",
	"category",
	"sub_option_1",
	"sub_option_2",
	"size",
	"cost_price",
	"provider_category_id",
	"provider_subcategory_id",
	"provider_option_id",
}

// LoadXLSX reads the first sheet of a rate sheet. Rows reference product
// types and sub-options that must already exist; categories are created on
// demand.
func LoadXLSX(path string) (*RateCard, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%s: no sheets found", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read rows: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no data rows found", path)
	}

	card := &RateCard{Version: 1, Source: filepath.Base(path)}
	byType := make(map[string]int)

	for i, row := range rows[1:] {
		cells := make([]string, len(sheetColumns))
		for j := range cells {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		if strings.Join(cells, "") == "" {
			continue
		}
		if cells[0] == "" || cells[1] == "" || cells[4] == "" || cells[5] == "" {
			return nil, fmt.Errorf("%s: row %d: product_type, category, size and cost_price are required", path, i+2)
		}

		idx, ok := byType[cells[0]]
		if !ok {
			card.ProductTypes = append(card.ProductTypes, ProductTypeCard{Name: cells[0], Reference: true})
			idx = len(card.ProductTypes) - 1
			byType[cells[0]] = idx
		}

		pt := &card.ProductTypes[idx]
		pt.Products = append(pt.Products, ProductCard{
			Category:              cells[1],
			SubOption1:            cells[2],
			SubOption2:            cells[3],
			ProviderCategoryID:    cells[6],
			ProviderSubcategoryID: cells[7],
			ProviderOptionID:      cells[8],
			Sizes:                 []SizeCard{{Size: cells[4], Cost: cells[5]}},
		})
	}

	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return card, nil
}
