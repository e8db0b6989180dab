package catalog

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/wheelmaster/tireshop/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrFileMissing the catalog document does not exist
	ErrFileMissing = errors.New("catalog file missing")
	// ErrParse the catalog document is not a valid product list
	ErrParse = errors.New("catalog parse error")
	// ErrNotFound no catalog entry carries the requested id
	ErrNotFound = errors.New("product not found")
)

type document struct {
	Products *[]entry `json:"products"`
}

type entry struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Width       int             `json:"width"`
	ImageURL    string          `json:"image_url"`
	Image       string          `json:"image"`
}

// Reader loads the product list shown by the storefront from a JSON
// document of the form {"products": [...]}. The file is read on every call.
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Load returns the products in document order.
func (r *Reader) Load() ([]domain.Product, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrFileMissing, r.path)
		}
		return nil, errors.Wrapf(err, "read catalog %s", r.path)
	}
	return Parse(data)
}

// Parse decodes a catalog document.
func Parse(data []byte) ([]domain.Product, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if doc.Products == nil {
		return nil, errors.Wrap(ErrParse, `missing "products" key`)
	}

	products := make([]domain.Product, 0, len(*doc.Products))
	for _, e := range *doc.Products {
		image := e.ImageURL
		if image == "" {
			image = e.Image
		}
		products = append(products, domain.Product{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Price:       e.Price,
			Width:       e.Width,
			ImageURL:    image,
		})
	}
	return products, nil
}

// Find scans products for id.
func Find(products []domain.Product, id int64) (*domain.Product, error) {
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "id %d", id)
}
