package payment

// CardType is the kind of card as reported by the gateway.
type CardType string

const (
	CardCredit  CardType = "Crédito"
	CardDebit   CardType = "Débito"
	CardPrepaid CardType = "Prepaga"
)

// CardProvider selects who runs the card registration iframe.
type CardProvider string

const (
	ProviderUpay    CardProvider = "uPay"
	ProviderBancard CardProvider = "Bancard"
)

// Customer is a gateway-registered customer for recurring payments.
type Customer struct {
	BuyerID  string `json:"id_comprador_comercio"`
	FullName string `json:"nombres_apellidos"`
	Email    string `json:"email"`
	Phone    string `json:"celular"`
}

// Card is a stored payment card. AliasToken is temporary: fetch the card
// list again before every payment or deletion.
type Card struct {
	AliasToken string   `json:"alias_token"`
	Brand      string   `json:"marca"`
	CardID     string   `json:"tarjeta"`
	Issuer     string   `json:"emisor"`
	Number     string   `json:"tarjeta_numero"`
	Type       CardType `json:"tipo_tarjeta"`
	LogoURL    string   `json:"url_logo"`
	Provider   string   `json:"proveedor"`
}

// PreAuthorization is the result of reserving funds on a card.
type PreAuthorization struct {
	TransactionID string `json:"transaccion"`
	Receipt       string `json:"comprobante_interno"`
}

// BancardIframeStyle customizes the Bancard card registration iframe.
type BancardIframeStyle struct {
	ButtonBackgroundColor string `json:"button-background-color"`
	ButtonBorderColor     string `json:"button-border-color"`
	ButtonTextColor       string `json:"button-text-color"`
	FormBackgroundColor   string `json:"form-background-color"`
	FormBorderColor       string `json:"form-border-color"`
	HeaderBackgroundColor string `json:"header-background-color"`
	HeaderTextColor       string `json:"header-text-color"`
	HrBorderColor         string `json:"hr-border-color"`
	InputBackgroundColor  string `json:"input-background-color"`
	InputBorderColor      string `json:"input-border-color"`
	InputPlaceholderColor string `json:"input-placeholder-color"`
	InputTextColor        string `json:"input-text-color"`
	LabelKycTextColor     string `json:"label-kyc-text-color"`
}

// DefaultBancardStyle returns the stock iframe colors.
func DefaultBancardStyle() BancardIframeStyle {
	return BancardIframeStyle{
		ButtonBackgroundColor: "#5CB85C",
		ButtonBorderColor:     "#4CAE4C",
		ButtonTextColor:       "#FFFFFF",
		FormBackgroundColor:   "#FFFFFF",
		FormBorderColor:       "#DDDDDD",
		HeaderBackgroundColor: "#F5F5F5",
		HeaderTextColor:       "#333333",
		HrBorderColor:         "#EEEEEE",
		InputBackgroundColor:  "#FFFFFF",
		InputBorderColor:      "#CCCCCC",
		InputPlaceholderColor: "#999999",
		InputTextColor:        "#555555",
		LabelKycTextColor:     "#000000",
	}
}
