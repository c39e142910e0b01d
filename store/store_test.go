package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookups(t *testing.T) {
	assert := assert.New(t)

	st := NewStore()
	st.AddOrder(&Order{OrderID: "o1", CustomerID: "c1"})
	st.AddItem(&OrderItem{OrderID: "o1", OrderItemID: 1, ProductID: "p1", SellerID: "s1"})
	st.AddItem(&OrderItem{OrderID: "o1", OrderItemID: 2, ProductID: "p2", SellerID: "s1"})
	st.AddCustomer(&Customer{CustomerID: "c1", State: "SP"})
	st.AddProduct(&Product{ProductID: "p1"})
	st.AddSeller(&Seller{SellerID: "s1", State: "SP"})
	st.AddReview(&Review{ReviewID: "r1", OrderID: "o1", Score: 5})
	st.AddPayment(&Payment{OrderID: "o1", Sequential: 1, Type: "boleto", Value: 10})
	st.AddTranslation(&CategoryTranslation{CategoryName: "pet_shop", EnglishName: "pet_shop"})

	assert.Equal(2, len(st.ItemsByOrder("o1")))
	assert.Equal(1, len(st.ReviewsByOrder("o1")))
	assert.Equal(1, len(st.PaymentsByOrder("o1")))
	assert.Equal("SP", st.CustomerByID("c1").State)
	assert.NotNil(st.ProductByID("p1"))
	assert.NotNil(st.SellerByID("s1"))
	assert.Equal("pet_shop", st.TranslationByCategory("pet_shop").EnglishName)

	// unknown keys: nil / empty, never a panic
	assert.Nil(st.CustomerByID("nope"))
	assert.Nil(st.ProductByID("nope"))
	assert.Equal(0, len(st.ItemsByOrder("nope")))
}

func TestFirstGeolocation(t *testing.T) {
	assert := assert.New(t)

	st := NewStore()
	st.AddGeolocation(&Geolocation{ZipPrefix: "01310", Lat: -23.56, Lng: -46.65})
	st.AddGeolocation(&Geolocation{ZipPrefix: "01310", Lat: -23.99, Lng: -46.99})

	assert.Equal(2, len(st.GeolocationsByZip("01310")))

	// first sample in load order wins
	g := st.FirstGeolocationByZip("01310")
	assert.NotNil(g)
	assert.Equal(-23.56, g.Lat)

	assert.Nil(st.FirstGeolocationByZip("99999"))
}
