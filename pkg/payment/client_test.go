package payment_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/arandu-labs/pagopar-go/pkg/apierror"
	"github.com/arandu-labs/pagopar-go/pkg/config"
	"github.com/arandu-labs/pagopar-go/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T, handler http.HandlerFunc) *config.Config {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg, err := config.New("private-token", "public-token",
		config.WithBaseURL(srv.URL),
		config.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return cfg
}

func sha1Hex(data string) string {
	sum := sha1.Sum([]byte(data))
	return hex.EncodeToString(sum[:])
}

func TestAddClient(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pago-recurrente/3.0/agregar-cliente/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"respuesta": true, "resultado": {
			"id_comprador_comercio": "77",
			"nombres_apellidos": "Juana Sosa",
			"email": "juana@example.com",
			"celular": "+595972000000"
		}}`))
	})

	customer, err := payment.NewClient(cfg).AddClient(context.Background(), 77, "Juana Sosa", "juana@example.com", "+595972000000")
	require.NoError(t, err)
	assert.Equal(t, "77", customer.BuyerID)
	assert.Equal(t, "Juana Sosa", customer.FullName)

	assert.Equal(t, float64(77), got["identificador"])
	assert.Equal(t, sha1Hex("private-token"+"PAGO-RECURRENTE"), got["token"])
	assert.Equal(t, "public-token", got["token_publico"])
}

func TestAddCard(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pago-recurrente/3.0/agregar-tarjeta/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"respuesta": true, "resultado": "alias-abc"}`))
	})

	aliasToken, err := payment.NewClient(cfg).AddCard(context.Background(), 77, "https://shop.example.com/back", payment.ProviderBancard)
	require.NoError(t, err)
	assert.Equal(t, "alias-abc", aliasToken)

	assert.Equal(t, "Bancard", got["proveedor"])
	assert.Equal(t, "https://shop.example.com/back", got["url"])
	// The token for this call hashes the bare private token.
	assert.Equal(t, sha1Hex("private-token"), got["token"])
}

func TestConfirmCard(t *testing.T) {
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pago-recurrente/3.0/confirmar-tarjeta/", r.URL.Path)
		w.Write([]byte(`{"respuesta": true, "resultado": "Ok"}`))
	})

	err := payment.NewClient(cfg).ConfirmCard(context.Background(), 77, "https://shop.example.com/back")
	require.NoError(t, err)
}

func TestListCards(t *testing.T) {
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pago-recurrente/3.0/listar-tarjeta/", r.URL.Path)
		w.Write([]byte(`{"respuesta": true, "resultado": [{
			"alias_token": "alias-abc",
			"marca": "Visa",
			"tarjeta": "301",
			"emisor": "Itau",
			"tarjeta_numero": "450799******1234",
			"tipo_tarjeta": "Crédito",
			"url_logo": "https://cdn.example.com/visa.png",
			"proveedor": "Bancard"
		}]}`))
	})

	cards, err := payment.NewClient(cfg).ListCards(context.Background(), 77)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, payment.CardCredit, cards[0].Type)
	assert.Equal(t, "301", cards[0].CardID)
}

func TestDeleteCard(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pago-recurrente/3.0/eliminar-tarjeta/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"respuesta": true, "resultado": "Ok"}`))
	})

	err := payment.NewClient(cfg).DeleteCard(context.Background(), 77, "alias-abc")
	require.NoError(t, err)
	assert.Equal(t, "alias-abc", got["tarjeta"])
	assert.Equal(t, float64(77), got["identificador"])
}

func TestPay(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pago-recurrente/3.0/pagar/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"respuesta": true, "resultado": "Transaccion aprobada."}`))
	})

	err := payment.NewClient(cfg).Pay(context.Background(), 77, "alias-abc", "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", got["hash_pedido"])
	assert.Equal(t, "alias-abc", got["tarjeta"])
}

func TestPayRejected(t *testing.T) {
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"respuesta": false, "resultado": "Fondos insuficientes"}`))
	})

	err := payment.NewClient(cfg).Pay(context.Background(), 77, "alias-abc", "hash-1")
	var gatewayErr *apierror.Error
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "Fondos insuficientes", gatewayErr.Message)
}

func TestPreAuthorize(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pago-recurrente/3.0/preautorizar/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"respuesta": true, "resultado": {
			"transaccion": "tx-55",
			"comprobante_interno": "cmp-55"
		}}`))
	})

	preauth, err := payment.NewClient(cfg).PreAuthorize(context.Background(), payment.PreAuthorizeRequest{
		CardID:                "301",
		Amount:                80000,
		CommerceClientID:      77,
		CommerceTransactionID: 9001,
	})
	require.NoError(t, err)
	assert.Equal(t, "tx-55", preauth.TransactionID)

	assert.Equal(t, "301", got["tarjeta"])
	assert.Equal(t, float64(80000), got["monto"])
	assert.Equal(t, float64(9001), got["id_transaccion"])
}

func TestConfirmPreauthorization(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pago-recurrente/3.0/confirmar-preautorizacion/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"respuesta": true, "resultado": "Ok"}`))
	})

	err := payment.NewClient(cfg).ConfirmPreauthorization(context.Background(), payment.PreAuthRef{
		OrderHash:             "hash-1",
		TransactionID:         "tx-55",
		CommerceTransactionID: 9001,
		CommerceClientID:      77,
	})
	require.NoError(t, err)
	assert.Equal(t, "tx-55", got["transaccion"])
}

func TestCancelPreauthorization(t *testing.T) {
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pago-recurrente/3.0/cancelar-preautorizacion/", r.URL.Path)
		w.Write([]byte(`{"respuesta": true, "resultado": "Preautorizacion cancelada"}`))
	})

	message, err := payment.NewClient(cfg).CancelPreauthorization(context.Background(), payment.PreAuthRef{
		TransactionID:    "tx-55",
		CommerceClientID: 77,
	})
	require.NoError(t, err)
	assert.Equal(t, "Preautorizacion cancelada", message)
}

func TestPersonalPay(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/billetera-personal/1.0/pagar", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"respuesta": true, "resultado": "Transaccion aprobada."}`))
	})

	err := payment.NewClient(cfg).PersonalPay(context.Background(), "hash-1", "0972000000")
	require.NoError(t, err)
	assert.Equal(t, "0972000000", got["celular"])
	assert.Equal(t, sha1Hex("private-token"+"pagar"), got["token"])
}

func TestBancardIframeURL(t *testing.T) {
	raw, err := payment.BancardIframeURL("alias-abc", nil, "production")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "vpos.infonet.com.py", parsed.Host)
	assert.Equal(t, "/checkout/register_card/new", parsed.Path)
	assert.Equal(t, "alias-abc", parsed.Query().Get("process_id"))

	var styles map[string]string
	require.NoError(t, json.Unmarshal([]byte(parsed.Query().Get("styles")), &styles))
	assert.Equal(t, "#5CB85C", styles["button-background-color"])

	sandbox, err := payment.BancardIframeURL("alias-abc", nil, "sandbox")
	require.NoError(t, err)
	assert.Contains(t, sandbox, "vpos.infonet.com.py:8888")

	_, err = payment.BancardIframeURL("alias-abc", nil, "staging")
	var validationErr *apierror.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUpayIframeURL(t *testing.T) {
	assert.Equal(t,
		"https://www.pagopar.com/upay-iframe/?id-form=alias-abc",
		payment.UpayIframeURL("alias-abc"))
}
