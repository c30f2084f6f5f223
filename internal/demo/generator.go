// Package demo synthesizes storefront orders for demo mode and fixtures.
// Nothing here is used when a real storefront API key is configured.
package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/janytree/storefront-dashboard/internal/orders"
)

const (
	DefaultCount = 150

	orderStatus    = "PAYMENT_COMPLETED"
	firstOrderNo   = 20230000
	maxUnits       = 3
	lookbackDays   = 30
	sourceName     = "demo"
	billingPhone   = "010-1234-5678"
	addressDetails = "101동 101호"
)

type product struct {
	name    string
	price   int64
	options []string
}

var catalog = []product{
	{name: "수분 진정 크림", price: 25000, options: []string{"50ml", "100ml (2개입)"}},
	{name: "비타민 C 세럼", price: 42000, options: []string{"기본 패키지"}},
	{name: "데일리 선블록 SPF50", price: 18000, options: []string{"튜브형", "스틱형"}},
	{name: "시카 마스크팩", price: 30000, options: []string{"10매입", "20매입 대용량"}},
}

var (
	cities     = []string{"서울", "부산", "인천", "대구", "대전", "광주", "경기", "강원"}
	firstNames = []string{"민준", "서준", "도윤", "예준", "시우", "하준", "지호", "지유", "서윤", "서연"}
	lastNames  = []string{"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임"}
)

// Generate returns count single-item orders paid within the 30 days before
// now. The same seed always yields the same orders; seed 0 picks a random one.
func Generate(count int, seed uint64, now time.Time) []orders.Order {
	if count < 0 {
		count = 0
	}
	faker := gofakeit.New(seed)
	out := make([]orders.Order, 0, count)
	for i := 0; i < count; i++ {
		prod := catalog[faker.Number(0, len(catalog)-1)]
		city := faker.RandomString(cities)
		quantity := faker.Number(1, maxUnits)
		name := faker.RandomString(lastNames) + faker.RandomString(firstNames)
		paidAt := now.AddDate(0, 0, -faker.Number(0, lookbackDays-1))
		amount := prod.price * int64(quantity)

		out = append(out, orders.Order{
			ID:          fmt.Sprintf("ORD-%d", firstOrderNo+i),
			Status:      orderStatus,
			PaymentDate: paidAt.Unix(),
			PaidAmount:  amount,
			TotalAmount: amount,
			Items: []orders.OrderItem{{
				ID:          fmt.Sprintf("ITM-%d", i),
				ProductName: prod.name,
				OptionName:  faker.RandomString(prod.options),
				Quantity:    quantity,
				UnitPrice:   prod.price,
				Status:      orderStatus,
			}},
			Billing: orders.BillingContact{
				Name:    name,
				Email:   fmt.Sprintf("cust%d@example.com", i),
				Phone:   billingPhone,
				Address: city + "시 강남구",
			},
			Shipping: orders.ShippingContact{
				Name:          name,
				Phone:         fmt.Sprintf("010-%04d-%04d", faker.Number(0, 9999), faker.Number(0, 9999)),
				Address:       city + "시 " + faker.Street(),
				AddressDetail: addressDetails,
				Postcode:      faker.Zip(),
			},
		})
	}
	return out
}

// Source serves generated orders in place of the storefront API. The fetch
// window is ignored; orders always cover the 30 days before Now.
type Source struct {
	Count int
	Seed  uint64
	Now   func() time.Time
}

func (s Source) Name() string {
	return sourceName
}

func (s Source) FetchOrders(ctx context.Context, _ orders.Window) ([]orders.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	count := s.Count
	if count <= 0 {
		count = DefaultCount
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return Generate(count, s.Seed, now()), nil
}
