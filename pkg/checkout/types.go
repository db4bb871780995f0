package checkout

import "encoding/json"

// PaymentType identifies a payment method accepted by the gateway.
type PaymentType int

const (
	// PaymentProcard accepts Visa, Mastercard, Credicard and Unica.
	PaymentProcard     PaymentType = 1
	PaymentAquiPago    PaymentType = 2
	PaymentPagoExpress PaymentType = 3
	PaymentPractipago  PaymentType = 4
	// PaymentBancard accepts Visa, Mastercard, American Express, Discover,
	// Diners Club and Credifielco.
	PaymentBancard           PaymentType = 9
	PaymentTigoMoney         PaymentType = 10
	PaymentBankTransfer      PaymentType = 11
	PaymentBilleteraPersonal PaymentType = 12
	PaymentPagoMovil         PaymentType = 13
	PaymentInfonet           PaymentType = 15
	PaymentZimple            PaymentType = 18
	PaymentWally             PaymentType = 20
	PaymentWepa              PaymentType = 22
	PaymentGirosClaro        PaymentType = 23
	PaymentQR                PaymentType = 24
	PaymentPix               PaymentType = 25
)

// DocumentType identifies the buyer document kind.
type DocumentType string

const DocumentCI DocumentType = "CI"

// OrderType distinguishes single-seller orders from split-billing
// marketplace orders.
type OrderType string

const (
	OrderSimple       OrderType = "VENTA-COMERCIO"
	OrderSplitBilling OrderType = "COMERCIO-HEREDADO"
)

// Item is a product or service included in an order. CategoryID and CityID
// default to "909" and "1" when left empty. SellerPublicKey identifies the
// selling commerce; orders whose items span more than one seller are
// submitted as split-billing orders.
type Item struct {
	Quantity                 int    `json:"cantidad"`
	Description              string `json:"descripcion"`
	ImageURL                 string `json:"url_imagen"`
	Name                     string `json:"nombre"`
	ProductID                int    `json:"id_producto"`
	TotalPrice               int    `json:"precio_total"`
	CategoryID               string `json:"categoria"`
	CityID                   string `json:"ciudad"`
	SellerAddress            string `json:"vendedor_direccion"`
	SellerAddressRef         string `json:"vendedor_direccion_referencia"`
	SellerAddressCoordinates string `json:"vendedor_direccion_coordenadas"`
	SellerPhone              string `json:"vendedor_telefono"`
	SellerPublicKey          string `json:"public_key"`
}

// Buyer carries customer data for a transaction. CityID defaults to "1";
// it matters only when courier services are involved.
type Buyer struct {
	Name               string
	Email              string
	Phone              string
	Document           string
	DocumentType       DocumentType
	RUC                string
	LegalName          string
	CityID             string
	Address            string
	AddressRef         string
	AddressCoordinates string
}

// Transaction is the gateway's answer to a transaction-creation request.
type Transaction struct {
	// OrderID is the Pagopar order hash used in all subsequent calls.
	OrderID string `json:"data"`
	// OrderNumber is the commerce-side order number.
	OrderNumber string `json:"pedido"`
}

// OrderMessage is the payment result message attached to an order.
type OrderMessage struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
}

// Order is the current state of a Pagopar order. Dates are kept verbatim as
// the ISO 8601 strings the gateway sends.
type Order struct {
	Amount            string         `json:"monto"`
	Cancelled         bool           `json:"cancelado"`
	MaxPaymentDate    string         `json:"fecha_maxima_pago"`
	OrderID           string         `json:"hash_pedido"`
	OrderNumber       string         `json:"numero_pedido"`
	Paid              bool           `json:"pagado"`
	PaymentDate       *string        `json:"fecha_pago"`
	PaymentMessage    OrderMessage   `json:"mensaje_resultado_pago"`
	PaymentMethodID   string         `json:"forma_pago_identificador"`
	PaymentMethodName string         `json:"forma_pago"`
	Token             string         `json:"token"`
	ExtraData         map[string]any `json:"datos_adicionales,omitempty"`
}

// PaymentMethod describes a payment method enabled for the commerce.
type PaymentMethod struct {
	ID                string      `json:"forma_pago"`
	MinAmount         int         `json:"monto_minimo"`
	CommissionPercent json.Number `json:"porcentaje_comision"`
	Title             string      `json:"titulo"`
	Description       string      `json:"descripcion"`
}

// ReverseKind tells whether a reversal ran immediately or was scheduled.
type ReverseKind string

const (
	ReverseImmediate ReverseKind = "Inmediata"
	ReverseScheduled ReverseKind = "Agendada"
)

// ReversedOrder is one entry of a paid-order reversal result.
type ReversedOrder struct {
	PaymentMethodID   string         `json:"forma_pago"`
	OrderID           string         `json:"hash"`
	OrderNumber       string         `json:"pedido"`
	TransactionID     string         `json:"transaccion"`
	TransactionStatus string         `json:"estado_transaccion"`
	ReverseKind       ReverseKind    `json:"tiempo_reversion"`
	ExtraData         map[string]any `json:"otros_datos,omitempty"`
}
