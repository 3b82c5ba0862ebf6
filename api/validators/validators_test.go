package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/pharmacy-pos-backend/pkg/errors"
)

type saleBody struct {
	ProductID *int64 `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required"`
}

func TestDecodeJSONBodyReportsMissingFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/sales", strings.NewReader(`{"product_id": 3, "note": "ignored"}`))
	var body saleBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Missing required field(s): quantity", typed.Message())
	assert.Equal(t, map[string]string{"quantity": "is required"}, typed.Details())
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	req := httptest.NewRequest("POST", "/sales", strings.NewReader(`{"product_id": 3, "quantity": 0}`))
	var body saleBody
	require.NoError(t, DecodeJSONBody(req, &body))
	require.NotNil(t, body.Quantity)
	assert.Equal(t, 0, *body.Quantity)
	assert.Equal(t, int64(3), *body.ProductID)
}

func TestDecodeJSONBodyRejectsMalformedAndEmpty(t *testing.T) {
	var body saleBody
	err := DecodeJSONBody(httptest.NewRequest("POST", "/sales", strings.NewReader(`{"product_id":`)), &body)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	err = DecodeJSONBody(httptest.NewRequest("POST", "/sales", strings.NewReader(``)), &body)
	require.Error(t, err)
	assert.Equal(t, "request body is required", pkgerrors.As(err).Message())

	err = DecodeJSONBody(httptest.NewRequest("POST", "/sales", strings.NewReader(`{"quantity":"two"}`)), &body)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ", "productId")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := ParseID(raw, "productId")
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "raw=%q", raw)
	}

	missing, err := OptionalID("", "product_id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	present, err := OptionalID("7", "product_id")
	require.NoError(t, err)
	require.NotNil(t, present)
	assert.Equal(t, int64(7), *present)

	_, err = OptionalID("x", "product_id")
	assert.Error(t, err)
}
