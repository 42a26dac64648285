package shopify

// Money is a decimal-string amount with its currency code, exactly as the
// Storefront API reports it. No arithmetic is done on it locally.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// Variant is a purchasable SKU of a product.
type Variant struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Price            Money  `json:"price"`
	AvailableForSale bool   `json:"availableForSale"`
}

// Product is an immutable catalog snapshot. Price is the minimum variant
// price of the product's range.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	Price       Money     `json:"price"`
	Image       *Image    `json:"image,omitempty"`
	Variants    []Variant `json:"variants"`
}

// Available reports whether any variant of the product can be added to a cart.
func (p Product) Available() bool {
	for _, v := range p.Variants {
		if v.AvailableForSale {
			return true
		}
	}
	return false
}

// Collection is a named grouping of products; Handle is the URL-safe slug
// used as the catalog filter key.
type Collection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
}

type CartCost struct {
	Subtotal Money `json:"subtotal"`
	Total    Money `json:"total"`
	Tax      Money `json:"tax"`
}

// Merchandise is the denormalized variant snapshot a cart line carries. It is
// captured at query time and not refreshed if the catalog changes.
type Merchandise struct {
	VariantID    string `json:"variantId"`
	Title        string `json:"title"`
	Price        Money  `json:"price"`
	ProductTitle string `json:"productTitle"`
	ProductImage *Image `json:"productImage,omitempty"`
}

type CartLine struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Merchandise Merchandise `json:"merchandise"`
}

// Cart is the remote platform's session entity. Mutations return a full
// replacement snapshot; there is no partial-update merging.
type Cart struct {
	ID          string     `json:"id"`
	CheckoutURL string     `json:"checkoutUrl"`
	Cost        CartCost   `json:"cost"`
	Lines       []CartLine `json:"lines"`
}

// ItemCount is the sum of line quantities.
func (c Cart) ItemCount() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// Line returns the cart line with the given id, if present.
func (c Cart) Line(lineID string) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return CartLine{}, false
}
