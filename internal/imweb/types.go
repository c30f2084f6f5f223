package imweb

import "github.com/shopspring/decimal"

type authRequest struct {
	Key    string `json:"key"`
	Secret string `json:"secret"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
}

type ordersResponse struct {
	Data struct {
		List []orderDTO `json:"list"`
	} `json:"data"`
}

// Money fields arrive as JSON numbers or numeric strings depending on the
// API version, so they decode into decimals first.
type orderDTO struct {
	OrderNo         string          `json:"order_no"`
	OrderStatus     string          `json:"order_status"`
	PaymentDate     int64           `json:"payment_date"`
	PayPrice        decimal.Decimal `json:"pay_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Items           []itemDTO       `json:"items"`
	BillingPerson   billingDTO      `json:"billing_person"`
	ShippingAddress shippingDTO     `json:"shipping_address"`
}

type itemDTO struct {
	ItemNo      string          `json:"item_no"`
	ProductName string          `json:"product_name"`
	OptionName  string          `json:"option_name"`
	Amount      int             `json:"amount"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
}

type billingDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Tel     string `json:"tel"`
	Address string `json:"address"`
}

type shippingDTO struct {
	Name          string `json:"name"`
	Tel           string `json:"tel"`
	Address       string `json:"address"`
	AddressDetail string `json:"address_detail"`
	Postcode      string `json:"postcode"`
}
