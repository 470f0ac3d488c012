package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type card struct {
	Number string `json:"card_number" validate:"required,len=16,number"`
	Expiry string `json:"expiry" validate:"required,mmyy"`
}

type priced struct {
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

func TestStruct_MMYY(t *testing.T) {
	assert.NoError(t, Struct(card{Number: "4242424242424242", Expiry: "12/27"}))
	assert.Error(t, Struct(card{Number: "4242424242424242", Expiry: "13/27"}))
	assert.Error(t, Struct(card{Number: "4242424242424242", Expiry: "1227"}))
}

func TestStruct_Decimal(t *testing.T) {
	assert.NoError(t, Struct(priced{Price: decimal.Zero}))
	assert.Error(t, Struct(priced{Price: decimal.NewFromInt(-1)}))
}

func TestDescribe_UsesJSONNames(t *testing.T) {
	err := Struct(card{Number: "123", Expiry: "12/27"})
	require.Error(t, err)
	assert.Contains(t, Describe(err), "card_number must satisfy len=16")
}
