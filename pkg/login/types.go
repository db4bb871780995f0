package login

import "encoding/json"

// PaymentMethod is a payment method enabled for a linked commerce.
type PaymentMethod struct {
	ID                string      `json:"forma_pago"`
	MinAmount         int         `json:"monto_minimo"`
	CommissionPercent json.Number `json:"porcentaje_comision"`
	MethodType        *string     `json:"tipo"`
}

// Plan is the Pagopar billing plan of a commerce.
type Plan struct {
	PlanID      int    `json:"plan"`
	Description string `json:"descripcion"`
	Cost        int    `json:"costo"`
	// NextBillingDate is an ISO 8601 timestamp.
	NextBillingDate string `json:"fecha_siguiente_factura"`
}

// User is the account holder behind a commerce.
type User struct {
	Email            string `json:"email"`
	Name             string `json:"nombre"`
	Lastname         string `json:"apellido"`
	Phone            string `json:"celular"`
	Balance          int    `json:"saldo"`
	Document         int    `json:"documento"`
	BalanceUpdatedAt string `json:"fecha_saldo_actualizacion"`
	// PendingCollectionAmount can be negative.
	PendingCollectionAmount int     `json:"monto_pendiente_cobro"`
	Hash                    *string `json:"hash"`
	PaymentStatus           string  `json:"estado_pago"`
	HasPlanPayment          bool    `json:"pago_plan"`
	HasCardPayment          bool    `json:"pago_tarjeta"`
}

// PendingOrder is an order of the commerce awaiting payment.
type PendingOrder struct {
	Amount         int    `json:"monto"`
	Description    string `json:"descripcion"`
	MaxPaymentDate string `json:"fecha_maxima_pago"`
	State          string `json:"estado"`
	URL            string `json:"url"`
}

// Commerce is the full commerce record returned by the login endpoints.
type Commerce struct {
	Description       string      `json:"descripcion"`
	CommissionPercent json.Number `json:"porcentaje_comision"`
	LegalName         string      `json:"razon_social"`
	// RUC is the single taxpayer registry number.
	RUC                 string `json:"ruc"`
	PaymentModeLabel    string `json:"modo_pago_denominacion"`
	HasServices         bool   `json:"servicios"`
	LocalWithdrawal     bool   `json:"retiro_local"`
	OwnShipping         bool   `json:"envio_propio"`
	CommerceID          int    `json:"comercio"`
	Ranking             int    `json:"ranking"`
	PaymentMode         int    `json:"modo_pago"`
	ContractSigned      bool   `json:"contrato_firmado"`
	SalesLinkPermission bool   `json:"permisos_link_venta"`
	// Environment is e.g. "Staging" or "Production".
	Environment string `json:"entorno"`
	SaleType    string `json:"tipo_venta"`

	PaymentMethods []PaymentMethod `json:"forma_pago"`
	Plan           Plan            `json:"plan"`
	User           User            `json:"usuario"`
	PendingOrders  []PendingOrder  `json:"pedidos_pendientes"`
}
