package nats

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ordersvc/internal/domain"
	apperrors "ordersvc/internal/errors"
)

func TestMarshalError_Roundtrip(t *testing.T) {
	data := MarshalError(apperrors.Remote{Status: 404, Message: "order not found"})

	var env errorEnvelope
	err := json.Unmarshal(data, &env)
	assert.NoError(t, err)
	assert.True(t, env.Error)
	assert.Equal(t, 404, env.Status)
	assert.Equal(t, "order not found", env.Message)
}

func TestDecodeReply_SuccessArray(t *testing.T) {
	payload := []byte(`[{"id":"p1","name":"A","price":10},{"id":"p2","name":"B","price":5}]`)

	var products []domain.Product
	err := DecodeReply(payload, &products)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "A", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(10)))
}

func TestDecodeReply_SuccessObject(t *testing.T) {
	payload := []byte(`{"cancelUrl":"c","successUrl":"s","url":"u"}`)

	var session struct {
		CancelURL  string `json:"cancelUrl"`
		SuccessURL string `json:"successUrl"`
		URL        string `json:"url"`
	}
	err := DecodeReply(payload, &session)

	assert.NoError(t, err)
	assert.Equal(t, "u", session.URL)
}

func TestDecodeReply_ClientErrorEnvelope(t *testing.T) {
	payload := MarshalError(apperrors.Remote{Status: 400, Message: "some products were not found"})

	var out []domain.Product
	err := DecodeReply(payload, &out)

	ve, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "some products were not found", ve.Message)
}

func TestDecodeReply_ServerErrorEnvelope(t *testing.T) {
	payload := MarshalError(apperrors.Remote{Status: 500, Message: "internal server error"})

	var out []domain.Product
	err := DecodeReply(payload, &out)

	_, ok := apperrors.IsUnavailableError(err)
	assert.True(t, ok)
}

func TestDecodeReply_Garbage(t *testing.T) {
	var out []domain.Product
	err := DecodeReply([]byte("not json"), &out)

	assert.Error(t, err)
}
