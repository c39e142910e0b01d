package store

// The entity store holds one immutable snapshot of every relation, loaded
// once per analysis run. It is pure lookup storage: the pipeline only ever
// reads from it, so a populated store is safe to share across goroutines.
//
// Slice order is load order. Every "first encountered" policy downstream
// (geolocation sample pick, first-value aggregation) leans on that order,
// which is what makes repeated runs over one store deterministic.

type Store struct {
	Orders       []*Order
	Items        []*OrderItem
	Reviews      []*Review
	Payments     []*Payment
	Customers    []*Customer
	Products     []*Product
	Sellers      []*Seller
	Geolocations []*Geolocation
	Translations []*CategoryTranslation

	itemsByOrder    map[string][]*OrderItem
	reviewsByOrder  map[string][]*Review
	paymentsByOrder map[string][]*Payment
	customerByID    map[string]*Customer
	productByID     map[string]*Product
	sellerByID      map[string]*Seller
	geoByZip        map[string][]*Geolocation
	translationByCN map[string]*CategoryTranslation
}

func NewStore() *Store {
	return &Store{
		itemsByOrder:    make(map[string][]*OrderItem),
		reviewsByOrder:  make(map[string][]*Review),
		paymentsByOrder: make(map[string][]*Payment),
		customerByID:    make(map[string]*Customer),
		productByID:     make(map[string]*Product),
		sellerByID:      make(map[string]*Seller),
		geoByZip:        make(map[string][]*Geolocation),
		translationByCN: make(map[string]*CategoryTranslation),
	}
}

// ----------------------------------------------------------------------------
// population, one Add per relation. The indexes are maintained inline so a
// store is queryable the moment loading finishes, no separate build step.

func (self *Store) AddOrder(o *Order) {
	self.Orders = append(self.Orders, o)
}

func (self *Store) AddItem(x *OrderItem) {
	self.Items = append(self.Items, x)
	self.itemsByOrder[x.OrderID] = append(self.itemsByOrder[x.OrderID], x)
}

func (self *Store) AddReview(r *Review) {
	self.Reviews = append(self.Reviews, r)
	self.reviewsByOrder[r.OrderID] = append(self.reviewsByOrder[r.OrderID], r)
}

func (self *Store) AddPayment(p *Payment) {
	self.Payments = append(self.Payments, p)
	self.paymentsByOrder[p.OrderID] = append(self.paymentsByOrder[p.OrderID], p)
}

func (self *Store) AddCustomer(c *Customer) {
	self.Customers = append(self.Customers, c)
	self.customerByID[c.CustomerID] = c
}

func (self *Store) AddProduct(p *Product) {
	self.Products = append(self.Products, p)
	self.productByID[p.ProductID] = p
}

func (self *Store) AddSeller(s *Seller) {
	self.Sellers = append(self.Sellers, s)
	self.sellerByID[s.SellerID] = s
}

func (self *Store) AddGeolocation(g *Geolocation) {
	self.Geolocations = append(self.Geolocations, g)
	self.geoByZip[g.ZipPrefix] = append(self.geoByZip[g.ZipPrefix], g)
}

func (self *Store) AddTranslation(t *CategoryTranslation) {
	self.Translations = append(self.Translations, t)
	self.translationByCN[t.CategoryName] = t
}

// ----------------------------------------------------------------------------
// lookups. Missing keys return nil (or an empty slice), never an error; the
// expander turns a nil right side into outer-join null fill or an inner-join
// row drop, per the plan.

func (self *Store) ItemsByOrder(orderID string) []*OrderItem {
	return self.itemsByOrder[orderID]
}

func (self *Store) ReviewsByOrder(orderID string) []*Review {
	return self.reviewsByOrder[orderID]
}

func (self *Store) PaymentsByOrder(orderID string) []*Payment {
	return self.paymentsByOrder[orderID]
}

func (self *Store) CustomerByID(id string) *Customer {
	return self.customerByID[id]
}

func (self *Store) ProductByID(id string) *Product {
	return self.productByID[id]
}

func (self *Store) SellerByID(id string) *Seller {
	return self.sellerByID[id]
}

// all samples for the prefix, in load order. Non-unique by nature.
func (self *Store) GeolocationsByZip(prefix string) []*Geolocation {
	return self.geoByZip[prefix]
}

// FirstGeolocationByZip resolves the non-unique prefix relation the way the
// planner flags it: pick the first loaded sample, nil when the prefix is
// unknown.
func (self *Store) FirstGeolocationByZip(prefix string) *Geolocation {
	l := self.geoByZip[prefix]
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

func (self *Store) TranslationByCategory(name string) *CategoryTranslation {
	return self.translationByCN[name]
}
