package memory

import (
	"testing"

	"github.com/dwikikusuma/techhub-store/internal/cart/app"
	"github.com/dwikikusuma/techhub-store/internal/cart/infra/repotest"
)

func TestCartRepo(t *testing.T) {
	repotest.Run(t, func(t *testing.T) app.CartRepo { return NewCartRepo() })
}
