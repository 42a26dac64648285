package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Client talks to a Shopify-compatible Storefront GraphQL API. It is the only
// piece of this application that knows the remote platform's query shapes.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *log.Logger
}

// New builds a Client for the given store. An empty domain or token yields a
// client whose every operation fails with ErrNotConfigured before any
// network attempt.
func New(domain, token, apiVersion string, timeout time.Duration, logger *log.Logger) *Client {
	domain = strings.TrimSpace(domain)
	endpoint := ""
	if domain != "" {
		endpoint = fmt.Sprintf("https://%s/api/%s/graphql.json", domain, apiVersion)
	}
	return &Client{
		endpoint:   endpoint,
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Configured reports whether the required endpoint and credential are present.
func (c *Client) Configured() bool {
	return c.endpoint != "" && c.token != ""
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do posts one GraphQL document and decodes the data key into out. Transport
// failures and explicit error entries are classified; partial data is never
// returned alongside an error.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call storefront api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return &TransportError{StatusCode: resp.StatusCode}
	}

	var envelope gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		c.logger.Printf("storefront api returned %d errors, first: %s", len(messages), messages[0])
		return &APIError{Messages: messages}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// userErrorsToErr converts a mutation's userErrors list to an APIError.
func userErrorsToErr(errs []userError) error {
	if len(errs) == 0 {
		return nil
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return &APIError{Messages: messages}
}

// Collections retrieves the first page of collections. Stores with more
// collections than the page size truncate silently.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	var data collectionsData
	if err := c.do(ctx, queryCollections, map[string]any{"first": collectionsPageSize}, &data); err != nil {
		return nil, err
	}
	collections := make([]Collection, 0, len(data.Collections.Edges))
	for _, e := range data.Collections.Edges {
		collections = append(collections, e.Node)
	}
	return collections, nil
}

// Products retrieves the first page of products sorted by title, ascending.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var data productsData
	vars := map[string]any{"first": productsPageSize, "sortKey": "TITLE", "reverse": false}
	if err := c.do(ctx, queryProducts, vars, &data); err != nil {
		return nil, err
	}
	return toProducts(data.Products), nil
}

// ProductsByCollection retrieves the products of one collection. An unknown
// handle resolves to an empty list, not an error.
func (c *Client) ProductsByCollection(ctx context.Context, handle string) ([]Product, error) {
	var data productsByCollectionData
	vars := map[string]any{"handle": handle, "first": productsPageSize}
	if err := c.do(ctx, queryProductsByCollection, vars, &data); err != nil {
		return nil, err
	}
	if data.CollectionByHandle == nil {
		return []Product{}, nil
	}
	return toProducts(data.CollectionByHandle.Products), nil
}

// CreateCart requests a new, empty cart from the platform.
func (c *Client) CreateCart(ctx context.Context) (*Cart, error) {
	var data cartCreateData
	if err := c.do(ctx, mutationCartCreate, map[string]any{"input": map[string]any{}}, &data); err != nil {
		return nil, err
	}
	if err := userErrorsToErr(data.CartCreate.UserErrors); err != nil {
		return nil, err
	}
	if data.CartCreate.Cart == nil {
		return nil, fmt.Errorf("cartCreate returned no cart")
	}
	return toCart(*data.CartCreate.Cart), nil
}

// AddCartLine appends a line (the platform may merge it into an existing one)
// and returns the full replacement cart snapshot.
func (c *Client) AddCartLine(ctx context.Context, cartID, variantID string, quantity int) (*Cart, error) {
	var data cartLinesAddData
	vars := map[string]any{
		"cartId": cartID,
		"lines": []map[string]any{
			{"merchandiseId": variantID, "quantity": quantity},
		},
	}
	if err := c.do(ctx, mutationCartLinesAdd, vars, &data); err != nil {
		return nil, err
	}
	if err := userErrorsToErr(data.CartLinesAdd.UserErrors); err != nil {
		return nil, err
	}
	if data.CartLinesAdd.Cart == nil {
		return nil, fmt.Errorf("cartLinesAdd returned no cart")
	}
	return toCart(*data.CartLinesAdd.Cart), nil
}

// RemoveCartLine removes a whole line and returns the replacement snapshot.
func (c *Client) RemoveCartLine(ctx context.Context, cartID, lineID string) (*Cart, error) {
	var data cartLinesRemoveData
	vars := map[string]any{"cartId": cartID, "lineIds": []string{lineID}}
	if err := c.do(ctx, mutationCartLinesRemove, vars, &data); err != nil {
		return nil, err
	}
	if err := userErrorsToErr(data.CartLinesRemove.UserErrors); err != nil {
		return nil, err
	}
	if data.CartLinesRemove.Cart == nil {
		return nil, fmt.Errorf("cartLinesRemove returned no cart")
	}
	return toCart(*data.CartLinesRemove.Cart), nil
}

// Cart retrieves the current state of an existing cart. An identifier the
// platform no longer knows yields ErrCartNotFound.
func (c *Client) Cart(ctx context.Context, cartID string) (*Cart, error) {
	var data cartData
	if err := c.do(ctx, queryCart, map[string]any{"cartId": cartID}, &data); err != nil {
		return nil, err
	}
	if data.Cart == nil {
		return nil, ErrCartNotFound
	}
	return toCart(*data.Cart), nil
}
