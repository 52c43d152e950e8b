package models

type OrderItem struct {
	Listing  string  `json:"listing"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Price    float64 `json:"price"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}

type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	TotalAmount     float64     `json:"totalAmount"`
	Items           []OrderItem `json:"items"`
	Buyer           Party       `json:"buyer"`
	Seller          Party       `json:"seller"`
	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
	TrackingNumber  string      `json:"trackingNumber,omitempty"`
}

// PaymentInitiation starts checkout for an order.
type PaymentInitiation struct {
	OrderID   string  `json:"orderId" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	Method    string  `json:"method" validate:"required,oneof=card bank_transfer mobile_money"`
	Reference string  `json:"reference"`
}

type PaymentSession struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorizationUrl"`
	Status           string `json:"status"`
}
