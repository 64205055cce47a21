package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/techhub-store/internal/catalog/app"
	"github.com/dwikikusuma/techhub-store/internal/catalog/domain"
	"github.com/dwikikusuma/techhub-store/internal/catalog/infra/memory"
)

func TestDefaultCatalog(t *testing.T) {
	ctx := context.Background()
	svc := app.NewService(memory.NewProductRepo())

	n, err := LoadFile(ctx, svc, "")
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	all, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "iphone-14-pro-max", all[0].ID)
	assert.Equal(t, "wireless-earbuds-pro", all[5].ID)

	iphone, err := svc.GetProduct(ctx, "iphone-14-pro-max")
	require.NoError(t, err)
	assert.Equal(t, "1099.00", iphone.Price.StringFixed(2))
	require.NotNil(t, iphone.OriginalPrice)
	assert.Equal(t, "1199.00", iphone.OriginalPrice.StringFixed(2))
	assert.Equal(t, "4.8", iphone.Rating.StringFixed(1))
	assert.Equal(t, 128, iphone.ReviewCount)
	assert.Len(t, iphone.Features, 4)
	assert.Equal(t,
		`{"display":"6.7-inch Super Retina XDR","camera":"48MP Main + 12MP Ultra Wide + 12MP Telephoto","battery":"Up to 29 hours video playback","storage":"128GB"}`,
		string(iphone.Specifications),
	)

	pixel, err := svc.GetProduct(ctx, "google-pixel-7-pro")
	require.NoError(t, err)
	assert.Equal(t, domain.StockLow, pixel.StockLevel)
	assert.Nil(t, pixel.OriginalPrice)

	pad, err := svc.GetProduct(ctx, "wireless-charging-pad")
	require.NoError(t, err)
	assert.Nil(t, pad.Storage)
	assert.Equal(t, "49.00", pad.Price.StringFixed(2))

	accessories, err := svc.ListByCategory(ctx, "accessories")
	require.NoError(t, err)
	assert.Len(t, accessories, 3)
}

func TestLoadSkipsExistingProducts(t *testing.T) {
	ctx := context.Background()
	svc := app.NewService(memory.NewProductRepo())

	_, err := Load(ctx, svc, Default())
	require.NoError(t, err)

	n, err := Load(ctx, svc, Default())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestLoadFileOverride(t *testing.T) {
	doc := `
products:
  - name: Screen Protector
    price: "9.5"
    category: accessories
    brand: TechHub
    specifications:
      layers: 2
      finish: matte
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	ctx := context.Background()
	svc := app.NewService(memory.NewProductRepo())

	n, err := LoadFile(ctx, svc, path)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	all, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	p := all[0]
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "9.50", p.Price.StringFixed(2))
	assert.True(t, p.InStock)
	assert.Equal(t, domain.StockInStock, p.StockLevel)
	assert.Equal(t, []string{}, p.Features)
	assert.Equal(t, `{"layers":2,"finish":"matte"}`, string(p.Specifications))
}

func TestParseRejectsBadPrice(t *testing.T) {
	_, err := Parse([]byte("products:\n  - id: x\n    price: cheap\n"))
	assert.ErrorContains(t, err, "price")
}

func TestLoadFileMissing(t *testing.T) {
	svc := app.NewService(memory.NewProductRepo())
	_, err := LoadFile(context.Background(), svc, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
