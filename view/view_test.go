package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MayEindra/olist-customer-retention/store"
)

func mustTime(s string) time.Time {
	out, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return out
}

func tp(s string) *time.Time {
	t := mustTime(s)
	return &t
}

func sp(s string) *string { return &s }

// one store with a bit of everything:
//
//	o1 delivered, 2 items, 1 review, customer/seller both SP
//	o2 delivered, 1 item, 2 reviews (dirty data)
//	o3 shipped, 1 item, 1 review        -> not delivered
//	o4 delivered status, no arrival date -> not delivered either
//	o5 delivered, 1 item, no review
func fixtureStore() *store.Store {
	st := store.NewStore()

	addOrder := func(id string, status string, deliveredAt *time.Time) {
		st.AddOrder(&store.Order{
			OrderID:               id,
			CustomerID:            "c-" + id,
			Status:                status,
			PurchaseTimestamp:     tp("2023-01-01 00:00:00"),
			DeliveredCustomerDate: deliveredAt,
			EstimatedDeliveryDate: mustTime("2023-01-10 00:00:00"),
		})
		st.AddCustomer(&store.Customer{
			CustomerID: "c-" + id,
			UniqueID:   "u-" + id,
			ZipPrefix:  "01310",
			City:       "sao paulo",
			State:      "SP",
		})
	}

	addOrder("o1", "delivered", tp("2023-01-12 00:00:00"))
	addOrder("o2", "delivered", tp("2023-01-08 00:00:00"))
	addOrder("o3", "shipped", nil)
	addOrder("o4", "delivered", nil)
	addOrder("o5", "delivered", tp("2023-01-11 00:00:00"))

	st.AddSeller(&store.Seller{SellerID: "s1", ZipPrefix: "01310", City: "sao paulo", State: "SP"})
	st.AddSeller(&store.Seller{SellerID: "s2", ZipPrefix: "20000", City: "rio de janeiro", State: "RJ"})

	st.AddProduct(&store.Product{ProductID: "p1", CategoryName: sp("beleza_saude")})
	st.AddProduct(&store.Product{ProductID: "p2", CategoryName: sp("sem_traducao")})
	st.AddTranslation(&store.CategoryTranslation{
		CategoryName: "beleza_saude",
		EnglishName:  "health_beauty",
	})

	addItem := func(orderID string, n int, productID string, sellerID string, price float64, freight float64) {
		st.AddItem(&store.OrderItem{
			OrderID:      orderID,
			OrderItemID:  n,
			ProductID:    productID,
			SellerID:     sellerID,
			Price:        price,
			FreightValue: freight,
		})
	}
	addItem("o1", 1, "p1", "s1", 10.0, 2.0)
	addItem("o1", 2, "p2", "s1", 20.0, 3.0)
	addItem("o2", 1, "p1", "s2", 50.0, 8.5)
	addItem("o3", 1, "p1", "s1", 5.0, 1.0)
	addItem("o5", 1, "p2", "s1", 7.0, 1.5)

	st.AddReview(&store.Review{ReviewID: "r1", OrderID: "o1", Score: 5})
	st.AddReview(&store.Review{ReviewID: "r2a", OrderID: "o2", Score: 4})
	st.AddReview(&store.Review{ReviewID: "r2b", OrderID: "o2", Score: 2})
	st.AddReview(&store.Review{ReviewID: "r3", OrderID: "o3", Score: 3})

	return st
}

func rowsFor(rows []*OrderReviewRow, orderID string) []*OrderReviewRow {
	out := []*OrderReviewRow{}
	for _, r := range rows {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out
}

func TestOrdersWithReviews(t *testing.T) {
	assert := assert.New(t)

	rows, stats, err := OrdersWithReviews(fixtureStore())
	assert.NoError(err)
	assert.Equal(5, stats.RowsScanned)

	// no review: exactly one row, review side null
	o5 := rowsFor(rows, "o5")
	assert.Equal(1, len(o5))
	assert.Nil(o5[0].ReviewID)
	assert.Nil(o5[0].ReviewScore)
	assert.Nil(o5[0].CommentTitle)

	// k reviews: exactly k rows, no collapsing
	o2 := rowsFor(rows, "o2")
	assert.Equal(2, len(o2))
	assert.Equal("r2a", *o2[0].ReviewID)
	assert.Equal("r2b", *o2[1].ReviewID)

	// 1 + 2 + 1 + 1 + 1
	assert.Equal(6, len(rows))
}

func TestFullDenormalized(t *testing.T) {
	assert := assert.New(t)

	st := fixtureStore()
	rows, _, err := FullDenormalized(st)
	assert.NoError(err)

	// item grain: the inner join on items is cardinality preserving
	assert.Equal(len(st.Items), len(rows))

	for _, r := range rows {
		assert.InDelta(r.Price+r.FreightValue, r.TotalItemValue, 1e-9)
	}

	// untranslated category: row kept, raw category preserved, english null
	var p2 *FullRow
	for _, r := range rows {
		if r.ProductID == "p2" {
			p2 = r
			break
		}
	}
	assert.NotNil(p2)
	assert.Equal("sem_traducao", *p2.CategoryName)
	assert.Nil(p2.CategoryNameEnglish)

	// translated one resolves
	for _, r := range rows {
		if r.ProductID == "p1" {
			assert.Equal("health_beauty", *r.CategoryNameEnglish)
		}
	}
}

func TestSatisfactionAnalysis(t *testing.T) {
	assert := assert.New(t)

	rows, stats, err := SatisfactionAnalysis(fixtureStore())
	assert.NoError(err)

	byOrder := map[string]*SatisfactionRow{}
	for _, r := range rows {
		// one row per order, always
		assert.Nil(byOrder[r.OrderID])
		byOrder[r.OrderID] = r
	}

	// o3 (not delivered), o4 (no arrival date), o5 (no review) are out
	assert.Equal(2, len(rows))
	assert.Nil(byOrder["o3"])
	assert.Nil(byOrder["o4"])
	assert.Nil(byOrder["o5"])

	o1 := byOrder["o1"]
	assert.NotNil(o1)
	assert.Equal(2, o1.ItemsInOrder)
	assert.InDelta(30.0, o1.TotalPrice, 1e-9)
	assert.InDelta(5.0, o1.TotalFreight, 1e-9)
	assert.InDelta(35.0, o1.TotalOrderValue, 1e-9)
	assert.Equal(5, o1.ReviewScore)
	assert.NotNil(o1.DeliveryDelayDays)
	assert.InDelta(2.0, *o1.DeliveryDelayDays, 1e-9) // 2 days late
	assert.Equal(1, o1.SameStateDelivery)            // SP -> SP

	o2 := byOrder["o2"]
	assert.NotNil(o2)
	assert.Equal(4, o2.ReviewScore) // first of the two reviews
	assert.Equal(0, o2.SameStateDelivery)
	assert.InDelta(-2.0, *o2.DeliveryDelayDays, 1e-9) // 2 days early

	// the double review on o2 is an ambiguity diagnostic, not an error
	assert.True(stats.IntegrityWarnings > 0)
}

func TestSatisfactionIdempotent(t *testing.T) {
	assert := assert.New(t)

	st := fixtureStore()
	a, err := Run(NameSatisfactionAnalysis, st)
	assert.NoError(err)
	b, err := Run(NameSatisfactionAnalysis, st)
	assert.NoError(err)
	assert.Equal(a.Records, b.Records)
}

func TestRunUnknownView(t *testing.T) {
	assert := assert.New(t)

	_, err := Run("no_such_view", store.NewStore())
	assert.Error(err)
	_, err = PlanFor("no_such_view")
	assert.Error(err)
}

func TestPlanForDump(t *testing.T) {
	assert := assert.New(t)

	for _, name := range Names() {
		p, err := PlanFor(name)
		assert.NoError(err)
		assert.NotEmpty(p.Print())
	}
}
