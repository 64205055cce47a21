package httpapi

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/dwikikusuma/techhub-store/internal/catalog/domain"
	checkoutdomain "github.com/dwikikusuma/techhub-store/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/techhub-store/internal/order/domain"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"omitempty,min=1,max=9999"`
	SessionID string `json:"sessionId" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity  *int   `json:"quantity" binding:"required,min=0,max=9999"`
	SessionID string `json:"sessionId" binding:"required"`
}

type removeItemRequest struct {
	SessionID string `json:"sessionId"`
}

type checkoutRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	FirstName  string `json:"firstName" binding:"required,min=2"`
	LastName   string `json:"lastName" binding:"required,min=2"`
	Address    string `json:"address" binding:"required,min=5"`
	City       string `json:"city" binding:"required,min=2"`
	State      string `json:"state" binding:"required,min=2"`
	ZipCode    string `json:"zipCode" binding:"required,min=5"`
	CardNumber string `json:"cardNumber" binding:"required,cardnumber"`
	ExpiryDate string `json:"expiryDate" binding:"required,mmyy"`
	CVV        string `json:"cvv" binding:"required,min=3"`
	NameOnCard string `json:"nameOnCard" binding:"required,min=2"`
}

func (r checkoutRequest) toDomain() checkoutdomain.Request {
	return checkoutdomain.Request{
		SessionID: r.SessionID,
		Contact:   checkoutdomain.Contact{Email: r.Email, FirstName: r.FirstName, LastName: r.LastName},
		Shipping:  checkoutdomain.Shipping{Address: r.Address, City: r.City, State: r.State, ZipCode: r.ZipCode},
		Card:      checkoutdomain.Card{Number: r.CardNumber, Expiry: r.ExpiryDate, CVV: r.CVV, NameOnCard: r.NameOnCard},
	}
}

// money renders a decimal as a JSON number with exactly two places.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type productDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          string          `json:"price"`
	OriginalPrice  *string         `json:"originalPrice"`
	Category       string          `json:"category"`
	Brand          string          `json:"brand"`
	Image          string          `json:"image"`
	Storage        *string         `json:"storage"`
	Color          *string         `json:"color"`
	InStock        bool            `json:"inStock"`
	StockLevel     string          `json:"stockLevel"`
	Rating         string          `json:"rating"`
	ReviewCount    int             `json:"reviewCount"`
	Features       []string        `json:"features"`
	Specifications json.RawMessage `json:"specifications"`
}

func toProductDTO(p catalogdomain.Product) productDTO {
	out := productDTO{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.StringFixed(2),
		Category:       p.Category,
		Brand:          p.Brand,
		Image:          p.Image,
		Storage:        p.Storage,
		Color:          p.Color,
		InStock:        p.InStock,
		StockLevel:     string(p.StockLevel),
		Rating:         p.Rating.StringFixed(1),
		ReviewCount:    p.ReviewCount,
		Features:       p.Features,
		Specifications: p.Specifications,
	}
	if p.OriginalPrice != nil {
		s := p.OriginalPrice.StringFixed(2)
		out.OriginalPrice = &s
	}
	if out.Features == nil {
		out.Features = []string{}
	}
	if len(out.Specifications) == 0 {
		out.Specifications = json.RawMessage("null")
	}
	return out
}

func toProductDTOs(ps []catalogdomain.Product) []productDTO {
	out := make([]productDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductDTO(p))
	}
	return out
}

type facetsDTO struct {
	Brands   []string `json:"brands"`
	Storages []string `json:"storages"`
}

type cartLineDTO struct {
	ID        string      `json:"id"`
	ProductID string      `json:"productId"`
	Quantity  int         `json:"quantity"`
	SessionID string      `json:"sessionId"`
	LineTotal json.Number `json:"lineTotal"`
	Product   productDTO  `json:"product"`
}

type cartSummaryDTO struct {
	Items     []cartLineDTO `json:"items"`
	Subtotal  json.Number   `json:"subtotal"`
	Tax       json.Number   `json:"tax"`
	Total     json.Number   `json:"total"`
	ItemCount int           `json:"itemCount"`
}

func toCartSummaryDTO(s checkoutdomain.Summary) cartSummaryDTO {
	items := make([]cartLineDTO, 0, len(s.Lines))
	for _, l := range s.Lines {
		items = append(items, cartLineDTO{
			ID:        l.ItemID,
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			SessionID: l.SessionID,
			LineTotal: money(l.LineTotal),
			Product:   toProductDTO(l.Product),
		})
	}
	return cartSummaryDTO{
		Items:     items,
		Subtotal:  money(s.Subtotal),
		Tax:       money(s.Tax),
		Total:     money(s.Total),
		ItemCount: s.ItemCount,
	}
}

type confirmationDTO struct {
	OrderID     string      `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	Status      string      `json:"status"`
	Subtotal    json.Number `json:"subtotal"`
	Tax         json.Number `json:"tax"`
	Total       json.Number `json:"total"`
	ItemCount   int         `json:"itemCount"`
	CardLast4   string      `json:"cardLast4"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func toConfirmationDTO(c checkoutdomain.Confirmation) confirmationDTO {
	return confirmationDTO{
		OrderID:     c.OrderID,
		OrderNumber: c.OrderNumber,
		Status:      c.Status,
		Subtotal:    money(c.Subtotal),
		Tax:         money(c.Tax),
		Total:       money(c.Total),
		ItemCount:   c.ItemCount,
		CardLast4:   c.CardLast4,
		CreatedAt:   c.CreatedAt,
	}
}

type orderItemDTO struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	UnitPrice json.Number `json:"unitPrice"`
	Quantity  int         `json:"quantity"`
	LineTotal json.Number `json:"lineTotal"`
}

type orderDTO struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	Status    string `json:"status"`
	SessionID string `json:"sessionId"`
	Customer  struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"customer"`
	Shipping struct {
		Address string `json:"address"`
		City    string `json:"city"`
		State   string `json:"state"`
		ZipCode string `json:"zipCode"`
	} `json:"shipping"`
	Items     []orderItemDTO `json:"items"`
	Subtotal  json.Number    `json:"subtotal"`
	Tax       json.Number    `json:"tax"`
	Total     json.Number    `json:"total"`
	ItemCount int            `json:"itemCount"`
	CardLast4 string         `json:"cardLast4"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toOrderDTO(o orderdomain.Order) orderDTO {
	out := orderDTO{
		ID:        o.ID,
		Number:    o.Number,
		Status:    o.Status,
		SessionID: o.SessionID,
		Items:     make([]orderItemDTO, 0, len(o.OrderItems)),
		Subtotal:  money(o.SubTotal),
		Tax:       money(o.Tax),
		Total:     money(o.Total),
		ItemCount: o.ItemCount,
		CardLast4: o.CardLast4,
		CreatedAt: o.CreatedAt,
	}
	out.Customer.Email = o.Customer.Email
	out.Customer.FirstName = o.Customer.FirstName
	out.Customer.LastName = o.Customer.LastName
	out.Shipping.Address = o.Shipping.Street
	out.Shipping.City = o.Shipping.City
	out.Shipping.State = o.Shipping.State
	out.Shipping.ZipCode = o.Shipping.ZipCode
	for _, it := range o.OrderItems {
		out.Items = append(out.Items, orderItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: money(it.UnitPrice),
			Quantity:  it.Quantity,
			LineTotal: money(it.LineTotal),
		})
	}
	return out
}
