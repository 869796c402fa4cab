// Package commerce contains the Shopify Storefront API adapter behind the
// domain's Platform interface.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/driftwear/storefront/internal/domain/commerce"
)

// maxResponseSize caps Storefront API response bodies (4MB).
const maxResponseSize = 4 * 1024 * 1024

const variantAvailabilityQuery = `
query VariantAvailability($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on ProductVariant {
      id
      availableForSale
      quantityAvailable
    }
  }
}`

const cartCreateMutation = `
mutation CartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart { id checkoutUrl totalQuantity }
    userErrors { field code message }
  }
}`

const cartLinesAddMutation = `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { id checkoutUrl totalQuantity }
    userErrors { field code message }
  }
}`

// ShopifyAdapter implements the commerce.Platform interface against the
// Shopify Storefront GraphQL API.
type ShopifyAdapter struct {
	config     *ShopifyConfig
	httpClient *http.Client
}

var _ commerce.Platform = (*ShopifyAdapter)(nil)

// NewShopifyAdapter creates an adapter with the given configuration.
func NewShopifyAdapter(config *ShopifyConfig) (*ShopifyAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ShopifyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// VariantAvailability fetches live availability for the given variant IDs.
// IDs the platform does not know are absent from the returned map.
func (a *ShopifyAdapter) VariantAvailability(ctx context.Context, variantIDs []string) (map[string]commerce.VariantAvailability, error) {
	data, err := a.doRequest(ctx, variantAvailabilityQuery, map[string]interface{}{
		"ids": variantIDs,
	})
	if err != nil {
		return nil, err
	}

	var payload variantNodesData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}

	out := make(map[string]commerce.VariantAvailability, len(payload.Nodes))
	for _, node := range payload.Nodes {
		// Unknown IDs come back as null nodes.
		if node == nil || node.ID == "" {
			continue
		}
		out[node.ID] = commerce.VariantAvailability{
			VariantID:         node.ID,
			AvailableForSale:  node.AvailableForSale,
			QuantityAvailable: node.QuantityAvailable,
		}
	}
	return out, nil
}

// CreateCart creates a platform cart holding the given lines. countryCode
// localizes checkout pricing; empty uses the shop default.
func (a *ShopifyAdapter) CreateCart(ctx context.Context, lines []commerce.CartLineInput, countryCode string) (*commerce.RemoteCart, error) {
	input := map[string]interface{}{
		"lines": encodeCartLines(lines),
	}
	if countryCode != "" {
		input["buyerIdentity"] = map[string]interface{}{"countryCode": countryCode}
	}

	data, err := a.doRequest(ctx, cartCreateMutation, map[string]interface{}{
		"input": input,
	})
	if err != nil {
		return nil, err
	}

	var payload cartCreateData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}
	return decodeCartPayload(payload.CartCreate)
}

// AddCartLines appends lines to an existing platform cart.
func (a *ShopifyAdapter) AddCartLines(ctx context.Context, cartID string, lines []commerce.CartLineInput) (*commerce.RemoteCart, error) {
	data, err := a.doRequest(ctx, cartLinesAddMutation, map[string]interface{}{
		"cartId": cartID,
		"lines":  encodeCartLines(lines),
	})
	if err != nil {
		return nil, err
	}

	var payload cartLinesAddData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}
	return decodeCartPayload(payload.CartLinesAdd)
}

// doRequest executes one GraphQL request and returns the data document.
func (a *ShopifyAdapter) doRequest(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", a.config.AccessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: HTTP %d", commerce.ErrPlatformUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", commerce.ErrInvalidResponse, resp.StatusCode)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}
	if len(envelope.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", commerce.ErrInvalidResponse, envelope.Errors[0].Message)
	}
	return envelope.Data, nil
}

func encodeCartLines(lines []commerce.CartLineInput) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(lines))
	for _, line := range lines {
		out = append(out, map[string]interface{}{
			"merchandiseId": line.MerchandiseID,
			"quantity":      line.Quantity,
		})
	}
	return out
}

// decodeCartPayload maps mutation user errors onto domain sentinels.
func decodeCartPayload(payload cartMutationPayload) (*commerce.RemoteCart, error) {
	for _, ue := range payload.UserErrors {
		switch ue.Code {
		case "INVALID", "INVALID_MERCHANDISE_LINE", "MERCHANDISE_NOT_APPLICABLE":
			return nil, fmt.Errorf("%w: %s", commerce.ErrReservationFailed, ue.Message)
		}
		if ue.Message != "" {
			return nil, fmt.Errorf("%w: %s", commerce.ErrInvalidResponse, ue.Message)
		}
	}
	if payload.Cart == nil {
		return nil, commerce.ErrCartMissing
	}
	return &commerce.RemoteCart{
		ID:            payload.Cart.ID,
		CheckoutURL:   payload.Cart.CheckoutURL,
		TotalQuantity: payload.Cart.TotalQuantity,
	}, nil
}
