package shopify

// Wire shapes of the Storefront GraphQL responses. These mirror the query
// documents in queries.go and never leave this package: every operation
// unwraps the edge/node envelopes into the flat types of types.go, so a
// remote schema change fails decoding here instead of leaking malformed
// results to callers.

type wireMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type wireImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type wireImageConnection struct {
	Edges []struct {
		Node wireImage `json:"node"`
	} `json:"edges"`
}

type wireVariant struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	PriceV2          wireMoney `json:"priceV2"`
	AvailableForSale bool      `json:"availableForSale"`
}

type wireProduct struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
	PriceRange  struct {
		MinVariantPrice wireMoney `json:"minVariantPrice"`
	} `json:"priceRange"`
	Images   wireImageConnection `json:"images"`
	Variants struct {
		Edges []struct {
			Node wireVariant `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type wireProductConnection struct {
	Edges []struct {
		Node wireProduct `json:"node"`
	} `json:"edges"`
}

type collectionsData struct {
	Collections struct {
		Edges []struct {
			Node Collection `json:"node"`
		} `json:"edges"`
	} `json:"collections"`
}

type productsData struct {
	Products wireProductConnection `json:"products"`
}

type productsByCollectionData struct {
	CollectionByHandle *struct {
		ID       string                `json:"id"`
		Title    string                `json:"title"`
		Products wireProductConnection `json:"products"`
	} `json:"collectionByHandle"`
}

type wireCartLine struct {
	ID          string `json:"id"`
	Quantity    int    `json:"quantity"`
	Merchandise struct {
		ID      string    `json:"id"`
		Title   string    `json:"title"`
		PriceV2 wireMoney `json:"priceV2"`
		Product struct {
			Title  string              `json:"title"`
			Images wireImageConnection `json:"images"`
		} `json:"product"`
	} `json:"merchandise"`
}

type wireCart struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
	Cost        struct {
		SubtotalAmount wireMoney `json:"subtotalAmount"`
		TotalAmount    wireMoney `json:"totalAmount"`
		TotalTaxAmount wireMoney `json:"totalTaxAmount"`
	} `json:"cost"`
	Lines struct {
		Edges []struct {
			Node wireCartLine `json:"node"`
		} `json:"edges"`
	} `json:"lines"`
}

type userError struct {
	Field   any    `json:"field"`
	Message string `json:"message"`
}

type cartMutationPayload struct {
	Cart       *wireCart   `json:"cart"`
	UserErrors []userError `json:"userErrors"`
}

type cartCreateData struct {
	CartCreate cartMutationPayload `json:"cartCreate"`
}

type cartLinesAddData struct {
	CartLinesAdd cartMutationPayload `json:"cartLinesAdd"`
}

type cartLinesRemoveData struct {
	CartLinesRemove cartMutationPayload `json:"cartLinesRemove"`
}

type cartData struct {
	Cart *wireCart `json:"cart"`
}

func toMoney(m wireMoney) Money {
	return Money{Amount: m.Amount, CurrencyCode: m.CurrencyCode}
}

func firstImage(conn wireImageConnection) *Image {
	if len(conn.Edges) == 0 {
		return nil
	}
	n := conn.Edges[0].Node
	return &Image{URL: n.URL, AltText: n.AltText, Width: n.Width, Height: n.Height}
}

func toProduct(w wireProduct) Product {
	variants := make([]Variant, 0, len(w.Variants.Edges))
	for _, e := range w.Variants.Edges {
		variants = append(variants, Variant{
			ID:               e.Node.ID,
			Title:            e.Node.Title,
			Price:            toMoney(e.Node.PriceV2),
			AvailableForSale: e.Node.AvailableForSale,
		})
	}
	return Product{
		ID:          w.ID,
		Title:       w.Title,
		Handle:      w.Handle,
		Description: w.Description,
		Price:       toMoney(w.PriceRange.MinVariantPrice),
		Image:       firstImage(w.Images),
		Variants:    variants,
	}
}

func toProducts(conn wireProductConnection) []Product {
	products := make([]Product, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		products = append(products, toProduct(e.Node))
	}
	return products
}

func toCart(w wireCart) *Cart {
	lines := make([]CartLine, 0, len(w.Lines.Edges))
	for _, e := range w.Lines.Edges {
		n := e.Node
		lines = append(lines, CartLine{
			ID:       n.ID,
			Quantity: n.Quantity,
			Merchandise: Merchandise{
				VariantID:    n.Merchandise.ID,
				Title:        n.Merchandise.Title,
				Price:        toMoney(n.Merchandise.PriceV2),
				ProductTitle: n.Merchandise.Product.Title,
				ProductImage: firstImage(n.Merchandise.Product.Images),
			},
		})
	}
	return &Cart{
		ID:          w.ID,
		CheckoutURL: w.CheckoutURL,
		Cost: CartCost{
			Subtotal: toMoney(w.Cost.SubtotalAmount),
			Total:    toMoney(w.Cost.TotalAmount),
			Tax:      toMoney(w.Cost.TotalTaxAmount),
		},
		Lines: lines,
	}
}
