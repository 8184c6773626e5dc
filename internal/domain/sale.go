package domain

// Sale is a front-desk sale as captured by the sales form. Money fields are
// kept as plain numbers in the stored JSON; the posting service converts them
// to decimals before deriving ledger entries.
type Sale struct {
	Meta          `mapstructure:",squash"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	ServiceType   string  `json:"serviceType"`
	Subtotal      float64 `json:"subtotal"`
	VATAmount     float64 `json:"vatAmount"`
	NHILAmount    float64 `json:"nhilAmount"`
	GETFundAmount float64 `json:"getfundAmount"`
	TotalAmount   float64 `json:"totalAmount"`
	PaymentMethod string  `json:"paymentMethod"`
	Date          string  `json:"date"`
}
