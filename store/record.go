package store

import (
	"time"
)

// Record types for the nine normalized Olist relations. All fields are
// immutable snapshots; optional columns are pointers so that a missing
// value stays distinguishable from a zero value all the way through the
// pipeline.

type Order struct {
	OrderID               string
	CustomerID            string
	Status                string
	PurchaseTimestamp     *time.Time
	ApprovedAt            *time.Time
	DeliveredCarrierDate  *time.Time
	DeliveredCustomerDate *time.Time
	EstimatedDeliveryDate time.Time
}

// composite identity (OrderID, OrderItemID)
type OrderItem struct {
	OrderID           string
	OrderItemID       int
	ProductID         string
	SellerID          string
	ShippingLimitDate *time.Time
	Price             float64
	FreightValue      float64
}

type Review struct {
	ReviewID        string
	OrderID         string
	Score           int
	CommentTitle    *string
	CommentMessage  *string
	CreationDate    *time.Time
	AnswerTimestamp *time.Time
}

// composite identity (OrderID, Sequential). Split payments are normal,
// so many payment rows per order is expected.
type Payment struct {
	OrderID      string
	Sequential   int
	Type         string
	Installments int
	Value        float64
}

type Customer struct {
	CustomerID string
	UniqueID   string
	ZipPrefix  string
	City       string
	State      string
}

type Product struct {
	ProductID    string
	CategoryName *string
	NameLength   *int
	DescLength   *int
	PhotosQty    *int
	WeightG      *float64
	LengthCM     *float64
	HeightCM     *float64
	WidthCM      *float64
}

type Seller struct {
	SellerID  string
	ZipPrefix string
	City      string
	State     string
}

// Geolocation samples are NOT unique per zip prefix; a prefix commonly
// carries many lat/lng samples and a consumer has to pick one.
type Geolocation struct {
	ZipPrefix string
	Lat       float64
	Lng       float64
	City      string
	State     string
}

type CategoryTranslation struct {
	CategoryName string
	EnglishName  string
}
