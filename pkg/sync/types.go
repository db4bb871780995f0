package sync

import (
	"fmt"
	"strconv"
	"strings"
)

// LogType tells which synchronization action a log entry requests. The
// gateway serializes it as a number or a numeric string depending on the
// endpoint.
type LogType int

const (
	// SoldOrder means product stock must be decreased.
	SoldOrder LogType = 1
	// CancelledOrder means product stock must be restored.
	CancelledOrder LogType = 2
	// ModifiedProduct means an existing product must be updated.
	ModifiedProduct LogType = 3
	// CreatedProduct means a new product must be created.
	CreatedProduct LogType = 4
)

func (t *LogType) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("pagopar: invalid log type %s", string(b))
	}
	*t = LogType(n)
	return nil
}

// AEXConfig enables the AEX courier pickup service for a product: pickup
// address, availability window, package dimensions and courier
// instructions. Times are "HH:MM:SS" strings; weight is kilograms and the
// dimensions centimeters, as decimal strings.
type AEXConfig struct {
	Address            string `json:"direccion"`
	AddressCityID      string `json:"direccion_ciudad"`
	AddressCoordinates string `json:"direccion_coordenadas"`
	AddressRef         string `json:"direccion_referencia"`
	Comment            string `json:"comentarioPickUp"`
	Enabled            bool   `json:"activo"`
	StartTime          string `json:"hora_inicio"`
	EndTime            string `json:"hora_fin"`
	Weight             string `json:"peso"`
	Length             string `json:"largo"`
	Width              string `json:"ancho"`
	Height             string `json:"alto"`
	// PickupAddressPagopar overrides the address above when set.
	PickupAddressPagopar *string `json:"direccion_retiro"`
}

// MOBISchedule is one pickup window for the MOBI courier. Days are numeric
// strings "1" (Monday) through "5" (Friday).
type MOBISchedule struct {
	Days  []string `json:"dias"`
	Start string   `json:"pickup_inicio"`
	End   string   `json:"pickup_fin"`
}

// MOBIConfig enables the MOBI courier service for a product. UserID must be
// nil when creating a product and set to the gateway-assigned identifier
// when editing one.
type MOBIConfig struct {
	Enabled              bool           `json:"activo"`
	Title                string         `json:"titulo"`
	UserID               *string        `json:"usuario_mobi"`
	PickupAddressPagopar *string        `json:"direccion_retiro"`
	Schedules            []MOBISchedule `json:"horarios"`
}

// ProductOperation is the gateway's answer to a product create or edit.
type ProductOperation struct {
	CommerceProductID string `json:"id"`
	ProductID         string `json:"link_venta"`
	URL               string `json:"url"`
}

// ProductRequest describes a product to create or edit. CategoryID defaults
// to "979". Importable makes the product publicly accessible.
type ProductRequest struct {
	CommerceProductID string
	Title             string
	Description       string
	// Price is in Guaraníes.
	Price      int
	Stock      int
	Images     []string
	CategoryID string
	AEX        *AEXConfig
	MOBI       *MOBIConfig
	Enabled    bool
	Importable bool
}

// OwnerUser is the owner of the commerce a sync log belongs to.
type OwnerUser struct {
	Name     string `json:"nombre"`
	Lastname string `json:"apellido"`
	Email    string `json:"email"`
	Phone    string `json:"celular"`
}

// ProductCategory is the category of a synchronized product.
type ProductCategory struct {
	CategoryID      int    `json:"categoria"`
	Name            string `json:"descripcion"`
	NeedsDimensions bool   `json:"medidas"`
	PhysicalProduct bool   `json:"producto_fisico"`
	CommerceID      int    `json:"comercio"`
}

// AddressInfo is the pickup address and availability of a product.
type AddressInfo struct {
	Address              string `json:"direccion"`
	Coordinates          string `json:"latitud_longitud"`
	Note                 string `json:"observacion"`
	CityID               int    `json:"ciudad"`
	CityName             string `json:"ciudad_descripcion"`
	PickupAddressPagopar string `json:"direccion_retiro"`
	PickupNote           string `json:"comentario_pickup"`
	PickupScheduleStart  string `json:"hora_inicio"`
	PickupScheduleEnd    string `json:"hora_fin"`
}

// MOBIShipping is the MOBI configuration the gateway reports for a product.
type MOBIShipping struct {
	Enabled   bool           `json:"activo"`
	Title     string         `json:"titulo"`
	Schedules []MOBISchedule `json:"horarios"`
	UserID    int            `json:"mobi_usuario"`
}

// CityShipping is the shipping rate for one destination city.
type CityShipping struct {
	CityID       int    `json:"ciudad"`
	Name         string `json:"descripcion"`
	Cost         int    `json:"costo"`
	DeliveryTime int    `json:"horas_entrega"`
}

// OwnShipping is a merchant-managed delivery zone.
type OwnShipping struct {
	ZoneName string         `json:"descripcion"`
	ZoneID   int            `json:"zona_envio"`
	Cities   []CityShipping `json:"ciudad"`
}

// Product is the full product record carried by create/modify logs.
type Product struct {
	Weight           int             `json:"peso"`
	Length           int             `json:"largo"`
	Width            int             `json:"ancho"`
	Height           int             `json:"alto"`
	Price            int             `json:"monto"`
	Enabled          bool            `json:"activo"`
	Images           []string        `json:"imagen"`
	Name             string          `json:"titulo"`
	Description      string          `json:"descripcion"`
	Stock            int             `json:"cantidad"`
	AEXEnabled       bool            `json:"envio_aex"`
	LocalPickup      bool            `json:"retiro_local"`
	LocalPickupNote  *string         `json:"observacion_retiro"`
	Linked           bool            `json:"vinculado"`
	User             OwnerUser       `json:"usuario"`
	Category         ProductCategory `json:"categoria"`
	AddressInfo      AddressInfo     `json:"direccion"`
	MOBIShipping     MOBIShipping    `json:"envio_mobi"`
	OwnShippingZones []OwnShipping   `json:"envio_propio"`
}

// Inventory is the stock-only record carried by sold/cancelled logs.
type Inventory struct {
	Stock int `json:"cantidad"`
}

// Log is one synchronization entry: either a ProductLog (created or
// modified product) or an InventoryLog (sold or cancelled order).
type Log interface {
	Kind() LogType
}

// ProductLog carries full product data.
type ProductLog struct {
	Type                LogType `json:"tipo_aviso"`
	CommercePublicToken string  `json:"token_publico"`
	LogID               string  `json:"logs"`
	LogDate             string  `json:"fecha"`
	QuantitySold        int     `json:"cantidad_venta"`
	ProductID           string  `json:"link_venta"`
	Product             Product `json:"datos"`
}

func (l ProductLog) Kind() LogType { return l.Type }

// InventoryLog carries stock-only data.
type InventoryLog struct {
	Type                LogType   `json:"tipo_aviso"`
	CommercePublicToken string    `json:"token_publico"`
	LogID               string    `json:"logs"`
	LogDate             string    `json:"fecha"`
	QuantitySold        int       `json:"cantidad_venta"`
	ProductID           string    `json:"link_venta"`
	Inventory           Inventory `json:"datos"`
	Images              string    `json:"imagenes"`
	CommerceID          string    `json:"comercio"`
	ParentCommerceID    *string   `json:"comercio_padre_heredado"`
}

func (l InventoryLog) Kind() LogType { return l.Type }

// Request is an inbound synchronization batch posted by the gateway.
type Request struct {
	PublicToken string `json:"token_publico"`
	Token       string `json:"token"`
	Logs        []Log  `json:"datos"`
}

// Result acknowledges one log entry; InventoryResult and ProductResult
// implement it.
type Result interface {
	syncResult()
}

// InventoryResult acknowledges an inventory log.
type InventoryResult struct {
	LogID     string  `json:"logs"`
	Type      LogType `json:"tipo_aviso"`
	ProductID string  `json:"link_venta"`
	Success   bool    `json:"respuesta"`
}

func (InventoryResult) syncResult() {}

// ProductResult acknowledges a product log.
type ProductResult struct {
	InventoryResult
	CommerceProductID string `json:"id_producto"`
}

// Response is the acknowledgement envelope sent back to the gateway.
type Response struct {
	Data    []Result `json:"resultado"`
	Success bool     `json:"respuesta"`
}
