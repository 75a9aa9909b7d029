package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromMinorIsExact(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{150000, "1500.00"},
		{1, "0.01"},
		{99, "0.99"},
		{100, "1.00"},
		{12345, "123.45"},
		{0, "0.00"},
		{-2550, "-25.50"},
		{999999999, "9999999.99"}, // top of numeric(10,2)
	}
	for _, tc := range cases {
		m := MoneyFromMinor(tc.minor)
		assert.Equal(t, tc.want, m.String(), "minor units %d", tc.minor)

		v, err := m.Value()
		require.NoError(t, err)
		assert.Equal(t, tc.want, v)
	}
}

func TestMoneyScanRoundTrip(t *testing.T) {
	for _, minor := range []int64{150000, 1, 99, 0, -2550, 1234567} {
		var got Money
		src, err := MoneyFromMinor(minor).Value()
		require.NoError(t, err)
		require.NoError(t, got.Scan(src))
		assert.Equal(t, minor, got.Minor())
	}
}

func TestMoneyScanDriverVariants(t *testing.T) {
	var m Money

	require.NoError(t, m.Scan([]byte("1500.00")))
	assert.Equal(t, int64(150000), m.Minor())

	require.NoError(t, m.Scan("25.5")) // scale-1 text still means 25.50
	assert.Equal(t, int64(2550), m.Minor())

	require.NoError(t, m.Scan(int64(12))) // whole major units
	assert.Equal(t, int64(1200), m.Minor())

	require.NoError(t, m.Scan(nil))
	assert.Equal(t, int64(0), m.Minor())

	assert.Error(t, m.Scan(true))
	assert.Error(t, m.Scan("not-a-number"))
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{Amount: MoneyFromMinor(150000)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":1500.00}`, string(b))

	var out struct {
		Amount Money `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount":1500.00}`), &out))
	assert.Equal(t, int64(150000), out.Amount.Minor())
}
