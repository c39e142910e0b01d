package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MayEindra/olist-customer-retention/store"
)

func TestDeliveryDelayDays(t *testing.T) {
	assert := assert.New(t)

	o := &store.Order{
		PurchaseTimestamp:     tp("2023-01-01 00:00:00"),
		EstimatedDeliveryDate: mustTime("2023-01-10 00:00:00"),
		DeliveredCustomerDate: tp("2023-01-12 00:00:00"),
	}

	d := DeliveryDelayDays(o)
	assert.NotNil(d)
	assert.InDelta(2.0, *d, 1e-9) // 2 days late

	a := ActualDeliveryDays(o)
	assert.NotNil(a)
	assert.InDelta(11.0, *a, 1e-9)

	// early delivery goes negative, fractional days preserved
	o.DeliveredCustomerDate = tp("2023-01-09 12:00:00")
	d = DeliveryDelayDays(o)
	assert.InDelta(-0.5, *d, 1e-9)

	// never delivered: both null
	o.DeliveredCustomerDate = nil
	assert.Nil(DeliveryDelayDays(o))
	assert.Nil(ActualDeliveryDays(o))

	// no purchase timestamp: actual null, delay still computable
	o.DeliveredCustomerDate = tp("2023-01-12 00:00:00")
	o.PurchaseTimestamp = nil
	assert.Nil(ActualDeliveryDays(o))
	assert.NotNil(DeliveryDelayDays(o))
}

func TestSameStateDelivery(t *testing.T) {
	assert := assert.New(t)

	cust := func(state string) *store.Customer { return &store.Customer{State: state} }
	sell := func(state string) *store.Seller { return &store.Seller{State: state} }

	assert.Equal(1, SameStateDelivery(cust("SP"), sell("SP")))
	assert.Equal(0, SameStateDelivery(cust("SP"), sell("RJ")))

	// a missing side is never equal, same as SQL CASE over NULL
	assert.Equal(0, SameStateDelivery(nil, sell("SP")))
	assert.Equal(0, SameStateDelivery(cust("SP"), nil))
	assert.Equal(0, SameStateDelivery(cust(""), sell("")))
}
