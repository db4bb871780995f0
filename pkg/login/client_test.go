package login_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/arandu-labs/pagopar-go/pkg/config"
	"github.com/arandu-labs/pagopar-go/pkg/login"
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

const commerceResult = `{"respuesta": true, "resultado": {
	"descripcion": "Tienda Aurora",
	"porcentaje_comision": "4.5",
	"razon_social": "Aurora S.A.",
	"ruc": "80012345-6",
	"modo_pago_denominacion": "Semanal",
	"servicios": false,
	"retiro_local": true,
	"envio_propio": false,
	"comercio": 1180,
	"ranking": 3,
	"modo_pago": 2,
	"contrato_firmado": true,
	"permisos_link_venta": true,
	"entorno": "Staging",
	"tipo_venta": "productos",
	"forma_pago": [{"forma_pago": "9", "monto_minimo": 1000, "porcentaje_comision": 5.5, "tipo": null}],
	"plan": {"plan": 2, "descripcion": "Emprendedor", "costo": 0, "fecha_siguiente_factura": "2026-04-01T00:00:00"},
	"usuario": {
		"email": "duenho@example.com",
		"nombre": "Marta",
		"apellido": "Benítez",
		"celular": "0972000000",
		"saldo": 125000,
		"documento": 3847561,
		"fecha_saldo_actualizacion": "2026-02-27T10:00:00",
		"monto_pendiente_cobro": -5000,
		"hash": null,
		"estado_pago": "al_dia",
		"pago_plan": true,
		"pago_tarjeta": false
	},
	"pedidos_pendientes": []
}}`

func TestLinkingURL(t *testing.T) {
	raw := login.LinkingURL("hash-parent", "42", "https://shop.example.com/back", nil)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.pagopar.com", parsed.Host)
	assert.Equal(t, "/v1.0/pagopar-login/login/", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "hash-parent", query.Get("hash_comercio"))
	assert.Equal(t, "42", query.Get("usuario_id"))
	assert.Equal(t, "https://shop.example.com/back", query.Get("url_redirect"))
	assert.False(t, query.Has("plan"))

	plan := 2
	withPlan := login.LinkingURL("hash-parent", "42", "https://shop.example.com/back", &plan)
	parsed, err = url.Parse(withPlan)
	require.NoError(t, err)
	assert.Equal(t, "2", parsed.Query().Get("plan"))
}

func TestConfirmLinking(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pagopar-login/2.0/confirmar-vinculacion/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(commerceResult))
	})

	commerce, err := login.NewClient(cfg).ConfirmLinking(context.Background(), "child-public", 42)
	require.NoError(t, err)
	assert.Equal(t, "Tienda Aurora", commerce.Description)
	assert.Equal(t, "4.5", commerce.CommissionPercent.String())
	assert.Equal(t, 125000, commerce.User.Balance)
	assert.Equal(t, -5000, commerce.User.PendingCollectionAmount)
	assert.Nil(t, commerce.User.Hash)
	require.Len(t, commerce.PaymentMethods, 1)
	assert.Nil(t, commerce.PaymentMethods[0].MethodType)

	assert.Equal(t, "child-public", got["token_comercio_hijo"])
	assert.Equal(t, float64(42), got["usuario_id"])
	assert.Equal(t, sha1Hex("private-token"+"PAGOPAR-LOGIN"), got["token"])
	assert.Equal(t, "public-token", got["public_key"])
}

func TestLinkedCommerce(t *testing.T) {
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pagopar-login/2.0/datos-comercio/", r.URL.Path)
		w.Write([]byte(commerceResult))
	})

	commerce, err := login.NewClient(cfg).LinkedCommerce(context.Background(), "child-public", 42)
	require.NoError(t, err)
	assert.Equal(t, 1180, commerce.CommerceID)
	assert.Equal(t, "Emprendedor", commerce.Plan.Description)
}

func TestCommerce(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comercios/2.0/datos-comercio/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(commerceResult))
	})

	commerce, err := login.NewClient(cfg).Commerce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Staging", commerce.Environment)
	assert.Equal(t, sha1Hex("private-token"+"DATOS-COMERCIO"), got["token"])
}
