package sync_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arandu-labs/pagopar-go/pkg/config"
	"github.com/arandu-labs/pagopar-go/pkg/sync"
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

func TestCreateProduct(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/links-venta/1.1/agregar/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"respuesta": true, "resultado": {
			"id": "sku-1",
			"link_venta": "lv-900",
			"url": "https://www.pagopar.com/p/lv-900"
		}}`))
	})

	op, err := sync.NewClient(cfg).CreateProduct(context.Background(), sync.ProductRequest{
		CommerceProductID: "sku-1",
		Title:             "Termo acero",
		Description:       "Termo de acero 1L",
		Price:             120000,
		Stock:             10,
		Images:            []string{"https://cdn.example.com/termo.jpg"},
		Enabled:           true,
		Importable:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, "lv-900", op.ProductID)
	assert.Equal(t, "https://www.pagopar.com/p/lv-900", op.URL)

	assert.Equal(t, "sku-1", got["id_producto"])
	assert.Equal(t, "979", got["categoria"])
	assert.Equal(t, "", got["link_venta"])
	assert.Equal(t, true, got["link_publico"])
	assert.Equal(t, true, got["activo"])
	assert.Equal(t, float64(120000), got["monto"])
	assert.Nil(t, got["envio_aex"])
	assert.Equal(t, sha1Hex("private-token"+"LINKS-VENTA"), got["token"])
	assert.Equal(t, "public-token", got["token_publico"])
}

func TestEditProduct(t *testing.T) {
	var got map[string]any
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/links-venta/1.1/editar/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"respuesta": true, "resultado": {
			"id": "sku-1",
			"link_venta": "lv-900",
			"url": "https://www.pagopar.com/p/lv-900"
		}}`))
	})

	userID := "mobi-12"
	_, err := sync.NewClient(cfg).EditProduct(context.Background(), sync.ProductRequest{
		CommerceProductID: "sku-1",
		Title:             "Termo acero",
		Price:             110000,
		Stock:             8,
		CategoryID:        "305",
		MOBI: &sync.MOBIConfig{
			Enabled: true,
			Title:   "Termo acero",
			UserID:  &userID,
			Schedules: []sync.MOBISchedule{
				{Days: []string{"1", "3", "5"}, Start: "09:00:00", End: "17:00:00"},
			},
		},
		Enabled: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "305", got["categoria"])
	mobi := got["envio_mobi"].(map[string]any)
	assert.Equal(t, "mobi-12", mobi["usuario_mobi"])
	schedules := mobi["horarios"].([]any)
	require.Len(t, schedules, 1)
}

const syncBatch = `{
	"token_publico": "public-token",
	"token": "some-token",
	"datos": [
		{
			"tipo_aviso": "4",
			"token_publico": "public-token",
			"logs": "log-1",
			"fecha": "2026-02-27 10:00:00",
			"cantidad_venta": 0,
			"link_venta": "lv-900",
			"datos": {
				"peso": 1,
				"largo": 30,
				"ancho": 10,
				"alto": 10,
				"monto": 120000,
				"activo": true,
				"imagen": ["https://cdn.example.com/termo.jpg"],
				"titulo": "Termo acero",
				"descripcion": "Termo de acero 1L",
				"cantidad": 10,
				"envio_aex": true,
				"retiro_local": true,
				"observacion_retiro": null,
				"vinculado": true,
				"usuario": {"nombre": "Marta", "apellido": "Benítez", "email": "m@example.com", "celular": "0972000000"},
				"categoria": {"categoria": 305, "descripcion": "Hogar", "medidas": true, "producto_fisico": true, "comercio": 1180},
				"direccion": {"direccion": "Av. España 1234", "latitud_longitud": "-25.28,-57.56", "observacion": "", "ciudad": 1, "ciudad_descripcion": "Asunción", "direccion_retiro": "", "comentario_pickup": "", "hora_inicio": "09:00:00", "hora_fin": "17:00:00"},
				"envio_mobi": {"activo": false, "titulo": "", "horarios": [], "mobi_usuario": 0},
				"envio_propio": []
			}
		},
		{
			"tipo_aviso": 1,
			"token_publico": "public-token",
			"logs": "log-2",
			"fecha": "2026-02-27 10:05:00",
			"cantidad_venta": 2,
			"link_venta": "lv-900",
			"datos": {"cantidad": 8},
			"imagenes": "",
			"comercio": "1180",
			"comercio_padre_heredado": null
		}
	]
}`

func TestParseSynchronization(t *testing.T) {
	req, err := sync.ParseSynchronization([]byte(syncBatch))
	require.NoError(t, err)
	assert.Equal(t, "public-token", req.PublicToken)
	require.Len(t, req.Logs, 2)

	productLog, ok := req.Logs[0].(sync.ProductLog)
	require.True(t, ok)
	assert.Equal(t, sync.CreatedProduct, productLog.Kind())
	assert.Equal(t, "log-1", productLog.LogID)
	assert.Equal(t, "Termo acero", productLog.Product.Name)
	assert.Equal(t, 305, productLog.Product.Category.CategoryID)
	assert.Nil(t, productLog.Product.LocalPickupNote)

	inventoryLog, ok := req.Logs[1].(sync.InventoryLog)
	require.True(t, ok)
	assert.Equal(t, sync.SoldOrder, inventoryLog.Kind())
	assert.Equal(t, 8, inventoryLog.Inventory.Stock)
	assert.Equal(t, 2, inventoryLog.QuantitySold)
	assert.Nil(t, inventoryLog.ParentCommerceID)
}

func TestParseSynchronizationBadPayload(t *testing.T) {
	_, err := sync.ParseSynchronization([]byte("not json"))
	require.Error(t, err)

	_, err = sync.ParseSynchronization([]byte(`{"datos": [{"tipo_aviso": "abc"}]}`))
	require.Error(t, err)
}

func TestRespondSynchronization(t *testing.T) {
	resp := sync.RespondSynchronization(
		sync.ProductResult{
			InventoryResult: sync.InventoryResult{
				LogID:     "log-1",
				Type:      sync.CreatedProduct,
				ProductID: "lv-900",
				Success:   true,
			},
			CommerceProductID: "sku-1",
		},
		sync.InventoryResult{LogID: "log-2", Type: sync.SoldOrder, ProductID: "lv-900", Success: true},
	)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"respuesta": true,
		"resultado": [
			{"logs": "log-1", "tipo_aviso": 4, "link_venta": "lv-900", "respuesta": true, "id_producto": "sku-1"},
			{"logs": "log-2", "tipo_aviso": 1, "link_venta": "lv-900", "respuesta": true}
		]
	}`, string(raw))
}

func TestRespondSynchronizationEmpty(t *testing.T) {
	raw, err := json.Marshal(sync.RespondSynchronization())
	require.NoError(t, err)
	assert.JSONEq(t, `{"respuesta": true, "resultado": []}`, string(raw))
}
