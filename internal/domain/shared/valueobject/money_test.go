package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(150000), IDR)
		require.NoError(t, err)
		assert.Equal(t, IDR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(150000)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(10), "")
		assert.Error(t, err)
	})
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same-currency amounts", func(t *testing.T) {
		a := NewMoneyIDRFromFloat(100)
		b := NewMoneyIDRFromFloat(50)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyIDRFromFloat(100)
		b, _ := NewMoneyFromFloat(1, USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoneyMultiplyByInt(t *testing.T) {
	m := NewMoneyIDRFromFloat(125000)
	total := m.MultiplyByInt(3)
	assert.True(t, total.Amount().Equal(decimal.NewFromInt(375000)))
	assert.Equal(t, IDR, total.Currency())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m, err := NewMoneyFromFloat(99.99, USD)
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var out Money
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, m.Equals(out))
}

func TestMoneyUnmarshalDefaultsBaseCurrency(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"125000"}`), &m))
	assert.Equal(t, BaseCurrency, m.Currency())
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyIDRFromFloat(1234.5)
	assert.Equal(t, "1234.50 IDR", m.String())
}
