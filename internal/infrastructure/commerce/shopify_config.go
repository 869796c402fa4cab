package commerce

import "errors"

// ErrShopifyConfigIncomplete indicates missing required adapter settings.
var ErrShopifyConfigIncomplete = errors.New("shopify: endpoint and access token are required")

// ShopifyConfig holds Storefront API connection settings. Endpoint is the
// shop's GraphQL URL, e.g.
// https://driftwear.myshopify.com/api/2024-07/graphql.json.
type ShopifyConfig struct {
	Endpoint       string
	AccessToken    string
	TimeoutSeconds int
}

func (c *ShopifyConfig) Validate() error {
	if c.Endpoint == "" || c.AccessToken == "" {
		return ErrShopifyConfigIncomplete
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	return nil
}
