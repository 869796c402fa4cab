package commerce

import "encoding/json"

// graphqlRequest is the Storefront API request envelope.
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphqlResponse is the Storefront API response envelope. Errors carries
// query-level failures; user errors live inside Data per mutation.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// shopifyVariantNode is one node of the variant availability query.
type shopifyVariantNode struct {
	ID                string `json:"id"`
	AvailableForSale  bool   `json:"availableForSale"`
	QuantityAvailable *int   `json:"quantityAvailable"`
}

type variantNodesData struct {
	Nodes []*shopifyVariantNode `json:"nodes"`
}

// shopifyCart is the cart fragment shared by cartCreate and cartLinesAdd.
type shopifyCart struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
}

// shopifyUserError is a mutation-level business failure.
type shopifyUserError struct {
	Field   []string `json:"field"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
}

type cartMutationPayload struct {
	Cart       *shopifyCart       `json:"cart"`
	UserErrors []shopifyUserError `json:"userErrors"`
}

type cartCreateData struct {
	CartCreate cartMutationPayload `json:"cartCreate"`
}

type cartLinesAddData struct {
	CartLinesAdd cartMutationPayload `json:"cartLinesAdd"`
}
