package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"storefront/internal/dataurl"
	"storefront/internal/domain"
)

type ItemWriter interface {
	Insert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
}

// CSVImporter reads catalog CSV files and inserts one item per named row.
type CSVImporter struct {
	reader   *csv.Reader
	repo     ItemWriter
	storeID  string
	imageDir string
}

// NewCSVImporter reads from r. Relative image paths are resolved against imageDir.
func NewCSVImporter(r io.Reader, repo ItemWriter, storeID, imageDir string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		repo:     repo,
		storeID:  storeID,
		imageDir: imageDir,
	}
}

type csvRow struct {
	Name           string
	Description    string
	Price          float64
	CompareAtPrice float64
	CostPerItem    float64
	Quantity       int
	Images         []string
	Line           int
}

// Run parses CSV rows and inserts items. Rows without a name but with an
// image add that image to the previous item.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["itemName"]; !ok {
		return 0, errors.New("missing itemName column")
	}

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row, err := parseRow(record, index, line)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil {
			current.Images = append(current.Images, row.Images...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if !domain.ValidAmount(row.Price) || !domain.ValidAmount(row.CompareAtPrice) || !domain.ValidAmount(row.CostPerItem) {
		return fmt.Errorf("line %d: price out of range for %q", row.Line, row.Name)
	}
	if !domain.ValidQuantity(row.Quantity) {
		return fmt.Errorf("line %d: quantity out of range for %q", row.Line, row.Name)
	}

	images := make([]string, 0, len(row.Images))
	for _, ref := range row.Images {
		img, err := i.resolveImage(ref)
		if err != nil {
			return fmt.Errorf("line %d: image for %q: %w", row.Line, row.Name, err)
		}
		images = append(images, img)
	}

	_, err := i.repo.Insert(ctx, domain.CatalogItem{
		StoreID:         i.storeID,
		ItemName:        row.Name,
		ItemDescription: row.Description,
		ItemPrice:       row.Price,
		CompareAtPrice:  row.CompareAtPrice,
		CostPerItem:     row.CostPerItem,
		Quantity:        row.Quantity,
		ItemImages:      images,
	})
	if err != nil {
		return fmt.Errorf("insert item %q: %w", row.Name, err)
	}
	return nil
}

func (i *CSVImporter) resolveImage(ref string) (string, error) {
	if strings.HasPrefix(ref, "data:") {
		if !dataurl.IsImage(ref) {
			return "", errors.New("inline data is not an image")
		}
		return ref, nil
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(i.imageDir, path)
	}
	img, err := dataurl.EncodeFile(path)
	if err != nil {
		return "", err
	}
	if !dataurl.IsImage(img) {
		return "", fmt.Errorf("%s is not an image", ref)
	}
	return img, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) (*csvRow, error) {
	name := pick(record, index, "itemName")
	image := pick(record, index, "image")
	if name == "" && image == "" {
		return nil, nil
	}

	row := &csvRow{
		Name:        name,
		Description: pick(record, index, "itemDescription"),
		Line:        line,
	}
	if image != "" {
		row.Images = []string{image}
	}
	if name == "" {
		return row, nil
	}

	var err error
	if row.Price, err = parseFloat(record, index, "itemPrice"); err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}
	if row.CompareAtPrice, err = parseFloat(record, index, "compareAtPrice"); err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}
	if row.CostPerItem, err = parseFloat(record, index, "costPerItem"); err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}
	if qty := pick(record, index, "quantity"); qty != "" {
		if row.Quantity, err = strconv.Atoi(qty); err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity %q", line, qty)
		}
	}
	return row, nil
}

func parseFloat(record []string, index map[string]int, key string) (float64, error) {
	v := pick(record, index, key)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return f, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
