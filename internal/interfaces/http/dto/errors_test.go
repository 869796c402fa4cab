package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeEmptyCart))
	assert.Equal(t, http.StatusBadGateway, GetHTTPStatus(ErrCodeCommerceUnavailable))
	assert.Equal(t, http.StatusTooManyRequests, GetHTTPStatus(ErrCodeRateLimited))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_NEW"))
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeEmptyCart, NormalizeErrorCode("EMPTY_CART"))
	// Business result codes pass through untouched.
	assert.Equal(t, "OUT_OF_STOCK", NormalizeErrorCode("OUT_OF_STOCK"))
	assert.Equal(t, "LOW_STOCK", NormalizeErrorCode("LOW_STOCK"))
}

func TestResponses(t *testing.T) {
	ok := NewSuccessResponse(map[string]string{"cart_id": "c1"})
	assert.True(t, ok.Success)
	assert.Nil(t, ok.Error)

	errResp := NewErrorResponseWithRequestID(ErrCodeInternal, "boom", "req-1")
	assert.False(t, errResp.Success)
	assert.Equal(t, "req-1", errResp.Error.RequestID)

	result := NewResultResponse(ErrCodeLowStock, "only 2 left", map[string]int{"available_quantity": 2})
	assert.False(t, result.Success)
	assert.Equal(t, ErrCodeLowStock, result.Error.Code)
	assert.NotNil(t, result.Data)
}
