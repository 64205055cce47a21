// Package seed loads the product catalog from YAML.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/dwikikusuma/techhub-store/internal/catalog/domain"
)

//go:embed products.yaml
var defaultCatalog []byte

// Default returns the built-in catalog document.
func Default() []byte { return bytes.Clone(defaultCatalog) }

// Creator is the slice of the catalog service seeding needs.
type Creator interface {
	FindProduct(ctx context.Context, id string) (domain.Product, bool, error)
	CreateProduct(ctx context.Context, in domain.NewProduct) (domain.Product, error)
}

type file struct {
	Products []entry `yaml:"products"`
}

type entry struct {
	ID             string    `yaml:"id"`
	Name           string    `yaml:"name"`
	Description    string    `yaml:"description"`
	Price          string    `yaml:"price"`
	OriginalPrice  *string   `yaml:"originalPrice"`
	Category       string    `yaml:"category"`
	Brand          string    `yaml:"brand"`
	Image          string    `yaml:"image"`
	Storage        *string   `yaml:"storage"`
	Color          *string   `yaml:"color"`
	InStock        *bool     `yaml:"inStock"`
	StockLevel     string    `yaml:"stockLevel"`
	Rating         *string   `yaml:"rating"`
	ReviewCount    *int      `yaml:"reviewCount"`
	Features       []string  `yaml:"features"`
	Specifications yaml.Node `yaml:"specifications"`
}

// Parse decodes a catalog document into creation inputs, preserving the key
// order of each specifications mapping in the resulting JSON.
func Parse(data []byte) ([]domain.NewProduct, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: decode catalog: %w", err)
	}

	out := make([]domain.NewProduct, 0, len(f.Products))
	for i, e := range f.Products {
		p, err := e.toNewProduct()
		if err != nil {
			return nil, fmt.Errorf("seed: product %d (%s): %w", i, e.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Load creates every product in data that is not already present and returns
// how many were created.
func Load(ctx context.Context, svc Creator, data []byte) (int, error) {
	products, err := Parse(data)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, p := range products {
		if p.ID != "" {
			_, exists, err := svc.FindProduct(ctx, p.ID)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}
		}
		if _, err := svc.CreateProduct(ctx, p); err != nil {
			return created, fmt.Errorf("seed: create %q: %w", p.ID, err)
		}
		created++
	}
	return created, nil
}

// LoadFile is Load for a document on disk. An empty path loads the built-in catalog.
func LoadFile(ctx context.Context, svc Creator, path string) (int, error) {
	if path == "" {
		return Load(ctx, svc, defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	return Load(ctx, svc, data)
}

func (e entry) toNewProduct() (domain.NewProduct, error) {
	price, err := decimal.NewFromString(e.Price)
	if err != nil {
		return domain.NewProduct{}, fmt.Errorf("price %q: %w", e.Price, err)
	}

	p := domain.NewProduct{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Price:       price,
		Category:    e.Category,
		Brand:       e.Brand,
		Image:       e.Image,
		Storage:     e.Storage,
		Color:       e.Color,
		InStock:     e.InStock,
		StockLevel:  domain.StockLevel(e.StockLevel),
		ReviewCount: e.ReviewCount,
		Features:    e.Features,
	}
	if e.OriginalPrice != nil {
		op, err := decimal.NewFromString(*e.OriginalPrice)
		if err != nil {
			return domain.NewProduct{}, fmt.Errorf("originalPrice %q: %w", *e.OriginalPrice, err)
		}
		p.OriginalPrice = &op
	}
	if e.Rating != nil {
		r, err := decimal.NewFromString(*e.Rating)
		if err != nil {
			return domain.NewProduct{}, fmt.Errorf("rating %q: %w", *e.Rating, err)
		}
		p.Rating = &r
	}
	if e.Specifications.Kind != 0 {
		var buf bytes.Buffer
		if err := writeJSON(&buf, &e.Specifications); err != nil {
			return domain.NewProduct{}, fmt.Errorf("specifications: %w", err)
		}
		p.Specifications = json.RawMessage(buf.Bytes())
	}
	return p, nil
}

// writeJSON renders a YAML node as JSON. Mapping keys keep document order,
// which encoding/json would otherwise sort.
func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, n.Content[0])
	case yaml.AliasNode:
		return writeJSON(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	default:
		return fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
	return nil
}
