package courier

import "github.com/arandu-labs/pagopar-go/pkg/checkout"

// ShippingMethod identifies how an item reaches the buyer.
type ShippingMethod string

const (
	ShippingAEX         ShippingMethod = "aex"
	ShippingMOBI        ShippingMethod = "mobi"
	ShippingOwnDelivery ShippingMethod = "propio"
	ShippingPickup      ShippingMethod = "retiro"
)

// Category is a freight-calculation category: an average size and weight
// profile for merchants without exact product dimensions.
type Category struct {
	CategoryID string `json:"categoria"`
	Name       string `json:"descripcion"`
	// Description includes the hierarchical breadcrumb of parent
	// categories.
	Description string `json:"descripcion_completa"`
	// NeedsDimensions tells whether product dimensions must be provided in
	// addition to the category id.
	NeedsDimensions   bool `json:"medidas"`
	IsPhysicalProduct bool `json:"producto_fisico"`
	// SupportsAEXShipping tells whether the category can ship through the
	// Pagopar couriers (AEX, MOBI).
	SupportsAEXShipping bool `json:"envio_aex"`
}

// PickupMethod configures in-store pickup. Notes carries instructions for
// the customer, such as the store address or pickup hours.
type PickupMethod struct {
	Notes        string `json:"observacion"`
	Cost         int    `json:"costo"`
	DeliveryTime int    `json:"tiempo_entrega"`
}

// DeliveryRule is a merchant-defined shipping rate for one destination city.
type DeliveryRule struct {
	DestinationID string `json:"destino"`
	Price         int    `json:"precio"`
	DeliveryTime  int    `json:"tiempo_entrega"`
}

// DeliveryMethod groups the destination rules of the merchant's own fleet.
type DeliveryMethod struct {
	Rules []DeliveryRule `json:"listado"`
}

// CourierOption is one service offered by an external courier, such as
// express, standard or locker delivery.
type CourierOption struct {
	OptionID     string `json:"id"`
	Description  string `json:"descripcion"`
	Cost         int    `json:"costo"`
	DeliveryTime string `json:"tiempo_entrega"`
}

// CourierMethod holds the options of an external courier (AEX or MOBI).
// OptionID starts null in the calculation response and must be set to a
// specific option id when confirming the selection.
type CourierMethod struct {
	OptionID     *string         `json:"id"`
	Options      []CourierOption `json:"opciones"`
	DeliveryTime *string         `json:"tiempo_entrega"`
	Cost         int             `json:"costo"`
}

// ShippingOptions is the container for every shipping configuration of an
// item. A nil method is not offered. The selection fields are populated by
// SelectShippingMethod before the order is submitted.
type ShippingOptions struct {
	Pickup   *PickupMethod   `json:"metodo_retiro"`
	Delivery *DeliveryMethod `json:"metodo_propio"`
	MOBI     *CourierMethod  `json:"metodo_mobi,omitempty"`
	AEX      *CourierMethod  `json:"metodo_aex,omitempty"`

	CommerceCommission *int           `json:"comercio_comision,omitempty"`
	ShippingCost       *int           `json:"costo_envio,omitempty"`
	SelectedMethod     ShippingMethod `json:"envio_seleccionado,omitempty"`
}

// PhysicalItem is an order item that requires freight calculation.
// Dimensions are decimal strings: weight in kilograms, the rest in
// centimeters.
type PhysicalItem struct {
	checkout.Item
	Weight          string          `json:"peso"`
	Length          string          `json:"largo"`
	Width           string          `json:"ancho"`
	Height          string          `json:"alto"`
	ShippingOptions ShippingOptions `json:"opciones_envio"`
}

// Neighborhood is a city subdivision served by the couriers.
type Neighborhood struct {
	NeighborhoodID string `json:"barrio"`
	Name           string `json:"descripcion"`
}

// City is a destination served by the delivery providers.
type City struct {
	CityID        string         `json:"ciudad"`
	Name          string         `json:"descripcion"`
	Neighborhoods []Neighborhood `json:"barrios,omitempty"`
}
