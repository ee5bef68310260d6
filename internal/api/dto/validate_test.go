package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumberDecoding(t *testing.T) {
	cases := map[string]FlexNumber{
		`{"quantity":10,"price":"12.5"}`:   "12.5",
		`{"quantity":"10","price":12.5}`:   "12.5",
		`{"quantity":" 10 ","price":null}`: "",
		`{"quantity":10,"price":""}`:       "",
	}
	for body, wantPrice := range cases {
		var req PlaceOrderRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, FlexNumber("10"), req.Quantity, body)
		assert.Equal(t, wantPrice, req.Price, body)
	}
}

func TestMissingRequiredOnlyForAbsentFields(t *testing.T) {
	err := Validate.Struct(PlaceOrderRequest{Symbol: "TCS", Type: "BUY"})
	require.Error(t, err)
	assert.True(t, MissingRequired(err))

	err = Validate.Struct(PlaceOrderRequest{Symbol: "TCS", Type: "BUY", Quantity: "1e1"})
	require.Error(t, err)
	assert.False(t, MissingRequired(err))

	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "quantity", fields[0].Field)
	assert.Equal(t, "must be a number", fields[0].Message)

	assert.False(t, MissingRequired(nil))
}
