package csvload

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/MayEindra/olist-customer-retention/store"
)

// CSV loading for the canonical Olist file set. This is the collaborator
// that feeds the entity store; the pipeline itself never touches a file.
//
// Error policy mirrors the rest of the system: a file that cannot be
// opened or read is fatal, a record that fails type coercion is skipped
// and counted, and the run continues with whatever survived.

const maxRejectSamples = 8

// canonical file names of the dataset
const (
	FileOrders       = "olist_orders_dataset.csv"
	FileItems        = "olist_order_items_dataset.csv"
	FileReviews      = "olist_order_reviews_dataset.csv"
	FilePayments     = "olist_order_payments_dataset.csv"
	FileCustomers    = "olist_customers_dataset.csv"
	FileProducts     = "olist_products_dataset.csv"
	FileSellers      = "olist_sellers_dataset.csv"
	FileGeolocation  = "olist_geolocation_dataset.csv"
	FileTranslations = "product_category_name_translation.csv"
)

// Report is the per-run load accounting: accepted record counts per
// relation, rejected records with a few sample identifiers.
type Report struct {
	Loaded   map[string]int
	Rejected int
	Samples  []string
}

func (self *Report) reject(err *MalformedRecordError) {
	self.Rejected++
	if len(self.Samples) < maxRejectSamples {
		self.Samples = append(self.Samples, err.Error())
	}
}

type loader struct {
	dir    string
	store  *store.Store
	report *Report
}

// LoadDir reads the nine dataset files from dir into a fresh store.
func LoadDir(dir string) (*store.Store, *Report, error) {
	self := &loader{
		dir:   dir,
		store: store.NewStore(),
		report: &Report{
			Loaded: make(map[string]int),
		},
	}

	type task struct {
		file  string
		parse func(*fieldReader) *MalformedRecordError
	}

	// dimension relations first so the store is never asked about an id
	// that simply has not been loaded yet; not required for correctness
	// (lookups happen after loading), just keeps rejection logs readable
	tasks := []task{
		{FileCustomers, self.parseCustomer},
		{FileSellers, self.parseSeller},
		{FileProducts, self.parseProduct},
		{FileTranslations, self.parseTranslation},
		{FileGeolocation, self.parseGeolocation},
		{FileOrders, self.parseOrder},
		{FileItems, self.parseItem},
		{FilePayments, self.parsePayment},
		{FileReviews, self.parseReview},
	}

	for _, t := range tasks {
		if err := self.loadFile(t.file, t.parse); err != nil {
			return nil, nil, err
		}
	}
	return self.store, self.report, nil
}

func (self *loader) loadFile(
	name string,
	parse func(*fieldReader) *MalformedRecordError,
) error {
	path := filepath.Join(self.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open relation file %s", name)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // review comments love stray quoting, be lenient

	header, err := r.Read()
	if err != nil {
		return errors.Wrapf(err, "read header of %s", name)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}

	line := 1
	accepted := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "read %s line %d", name, line+1)
		}
		line++

		fr := &fieldReader{
			relation: name,
			line:     line,
			idx:      idx,
			rec:      rec,
		}
		if merr := parse(fr); merr != nil {
			self.report.reject(merr)
			continue
		}
		accepted++
	}

	self.report.Loaded[name] = accepted
	logrus.WithFields(logrus.Fields{
		"relation":       name,
		"accepted":       accepted,
		"rejected_total": self.report.Rejected,
	}).Debug("relation loaded")
	return nil
}

// ----------------------------------------------------------------------------
// per-relation record parsers. Each reads every field it needs through the
// coercing reader, checks err() once, and only then mutates the store, so
// a rejected record leaves no partial trace.

func (self *loader) parseOrder(fr *fieldReader) *MalformedRecordError {
	o := &store.Order{
		OrderID:               fr.str("order_id"),
		CustomerID:            fr.str("customer_id"),
		Status:                fr.str("order_status"),
		PurchaseTimestamp:     fr.optTime("order_purchase_timestamp"),
		ApprovedAt:            fr.optTime("order_approved_at"),
		DeliveredCarrierDate:  fr.optTime("order_delivered_carrier_date"),
		DeliveredCustomerDate: fr.optTime("order_delivered_customer_date"),
		EstimatedDeliveryDate: fr.time_("order_estimated_delivery_date"),
	}
	if err := fr.err(); err != nil {
		return err
	}
	self.store.AddOrder(o)
	return nil
}

func (self *loader) parseItem(fr *fieldReader) *MalformedRecordError {
	x := &store.OrderItem{
		OrderID:           fr.str("order_id"),
		OrderItemID:       fr.int_("order_item_id"),
		ProductID:         fr.str("product_id"),
		SellerID:          fr.str("seller_id"),
		ShippingLimitDate: fr.optTime("shipping_limit_date"),
		Price:             fr.money("price"),
		FreightValue:      fr.money("freight_value"),
	}
	if err := fr.err(); err != nil {
		return err
	}
	self.store.AddItem(x)
	return nil
}

func (self *loader) parseReview(fr *fieldReader) *MalformedRecordError {
	rv := &store.Review{
		ReviewID:        fr.str("review_id"),
		OrderID:         fr.str("order_id"),
		Score:           fr.int_("review_score"),
		CommentTitle:    fr.optStr("review_comment_title"),
		CommentMessage:  fr.optStr("review_comment_message"),
		CreationDate:    fr.optTime("review_creation_date"),
		AnswerTimestamp: fr.optTime("review_answer_timestamp"),
	}
	if err := fr.err(); err != nil {
		return err
	}
	self.store.AddReview(rv)
	return nil
}

func (self *loader) parsePayment(fr *fieldReader) *MalformedRecordError {
	p := &store.Payment{
		OrderID:      fr.str("order_id"),
		Sequential:   fr.int_("payment_sequential"),
		Type:         fr.str("payment_type"),
		Installments: fr.int_("payment_installments"),
		Value:        fr.money("payment_value"),
	}
	if err := fr.err(); err != nil {
		return err
	}
	self.store.AddPayment(p)
	return nil
}

func (self *loader) parseCustomer(fr *fieldReader) *MalformedRecordError {
	c := &store.Customer{
		CustomerID: fr.str("customer_id"),
		UniqueID:   fr.str("customer_unique_id"),
		ZipPrefix:  fr.str("customer_zip_code_prefix"),
		City:       fr.raw("customer_city"),
		State:      fr.raw("customer_state"),
	}
	if err := fr.err(); err != nil {
		return err
	}
	self.store.AddCustomer(c)
	return nil
}

func (self *loader) parseProduct(fr *fieldReader) *MalformedRecordError {
	p := &store.Product{
		ProductID:    fr.str("product_id"),
		CategoryName: fr.optStr("product_category_name"),
		// yes, "lenght": the dataset ships with the typo
		NameLength: fr.optInt("product_name_lenght"),
		DescLength: fr.optInt("product_description_lenght"),
		PhotosQty:  fr.optInt("product_photos_qty"),
		WeightG:    fr.optF64("product_weight_g"),
		LengthCM:   fr.optF64("product_length_cm"),
		HeightCM:   fr.optF64("product_height_cm"),
		WidthCM:    fr.optF64("product_width_cm"),
	}
	if err := fr.err(); err != nil {
		return err
	}
	self.store.AddProduct(p)
	return nil
}

func (self *loader) parseSeller(fr *fieldReader) *MalformedRecordError {
	s := &store.Seller{
		SellerID:  fr.str("seller_id"),
		ZipPrefix: fr.str("seller_zip_code_prefix"),
		City:      fr.raw("seller_city"),
		State:     fr.raw("seller_state"),
	}
	if err := fr.err(); err != nil {
		return err
	}
	self.store.AddSeller(s)
	return nil
}

func (self *loader) parseGeolocation(fr *fieldReader) *MalformedRecordError {
	g := &store.Geolocation{
		ZipPrefix: fr.str("geolocation_zip_code_prefix"),
		Lat:       fr.f64("geolocation_lat"),
		Lng:       fr.f64("geolocation_lng"),
		City:      fr.raw("geolocation_city"),
		State:     fr.raw("geolocation_state"),
	}
	if err := fr.err(); err != nil {
		return err
	}
	self.store.AddGeolocation(g)
	return nil
}

func (self *loader) parseTranslation(fr *fieldReader) *MalformedRecordError {
	t := &store.CategoryTranslation{
		CategoryName: fr.str("product_category_name"),
		EnglishName:  fr.str("product_category_name_english"),
	}
	if err := fr.err(); err != nil {
		return err
	}
	self.store.AddTranslation(t)
	return nil
}
