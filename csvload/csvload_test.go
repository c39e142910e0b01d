package csvload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFixture(t *testing.T, dir string, name string, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
}

func fixtureDir(t *testing.T) string {
	dir := t.TempDir()

	writeFixture(t, dir, FileOrders,
		"order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n"+
			"o1,c1,delivered,2023-01-01 10:00:00,2023-01-01 11:00:00,2023-01-03 09:00:00,2023-01-12 16:20:00,2023-01-10 00:00:00\n"+
			"o2,c2,shipped,2023-01-02 09:30:00,,,,2023-01-15 00:00:00\n"+
			"o3,c3,delivered,2023-01-02 09:30:00,,,not-a-date,2023-01-15 00:00:00\n")

	writeFixture(t, dir, FileItems,
		"order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value\n"+
			"o1,1,p1,s1,2023-01-05 00:00:00,58.90,13.29\n"+
			"o1,2,p1,s1,2023-01-05 00:00:00,oops,13.29\n"+ // bad price
			"o2,1,p1,s1,2023-01-06 00:00:00,10.00,-1.0\n") // negative freight

	writeFixture(t, dir, FileReviews,
		"review_id,order_id,review_score,review_comment_title,review_comment_message,review_creation_date,review_answer_timestamp\n"+
			"r1,o1,5,,\"chegou antes, recomendo\",2023-01-13 00:00:00,2023-01-14 03:00:00\n")

	writeFixture(t, dir, FilePayments,
		"order_id,payment_sequential,payment_type,payment_installments,payment_value\n"+
			"o1,1,credit_card,3,72.19\n")

	writeFixture(t, dir, FileCustomers,
		"customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state\n"+
			"c1,u1,01310,sao paulo,SP\n"+
			"c2,u2,20000,rio de janeiro,RJ\n")

	writeFixture(t, dir, FileProducts,
		"product_id,product_category_name,product_name_lenght,product_description_lenght,product_photos_qty,product_weight_g,product_length_cm,product_height_cm,product_width_cm\n"+
			"p1,beleza_saude,40,280,2,250,16,10,14\n"+
			"p2,,,,,,,,\n")

	writeFixture(t, dir, FileSellers,
		"seller_id,seller_zip_code_prefix,seller_city,seller_state\n"+
			"s1,01310,sao paulo,SP\n")

	writeFixture(t, dir, FileGeolocation,
		"geolocation_zip_code_prefix,geolocation_lat,geolocation_lng,geolocation_city,geolocation_state\n"+
			"01310,-23.56,-46.65,sao paulo,SP\n"+
			"01310,-23.57,-46.66,sao paulo,SP\n")

	writeFixture(t, dir, FileTranslations,
		"product_category_name,product_category_name_english\n"+
			"beleza_saude,health_beauty\n")

	return dir
}

func TestLoadDir(t *testing.T) {
	assert := assert.New(t)

	st, report, err := LoadDir(fixtureDir(t))
	assert.NoError(err)
	assert.NotNil(st)

	// accepted counts per relation
	assert.Equal(2, report.Loaded[FileOrders]) // o3 rejected: bad timestamp
	assert.Equal(1, report.Loaded[FileItems])  // bad price + negative freight out
	assert.Equal(1, report.Loaded[FileReviews])
	assert.Equal(2, report.Loaded[FileCustomers])
	assert.Equal(2, report.Loaded[FileProducts])

	// rejected records are counted with samples, never fatal
	assert.Equal(3, report.Rejected)
	assert.Equal(3, len(report.Samples))

	// the survivors parsed into real types
	o := st.Orders[0]
	assert.Equal("o1", o.OrderID)
	assert.Equal("delivered", o.Status)
	assert.NotNil(o.DeliveredCustomerDate)
	assert.Equal(2023, o.EstimatedDeliveryDate.Year())

	it := st.ItemsByOrder("o1")
	assert.Equal(1, len(it))
	assert.InDelta(58.90, it[0].Price, 1e-9)

	// nullable product fields stayed null
	p2 := st.ProductByID("p2")
	assert.NotNil(p2)
	assert.Nil(p2.CategoryName)
	assert.Nil(p2.WeightG)

	// quoted comma in a review comment survived the reader
	rv := st.ReviewsByOrder("o1")[0]
	assert.Equal("chegou antes, recomendo", *rv.CommentMessage)
}

func TestLoadDirMissingFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir() // nothing in it
	st, report, err := LoadDir(dir)
	assert.Error(err)
	assert.Nil(st)
	assert.Nil(report)
}

func TestMalformedRecordError(t *testing.T) {
	anError := assert.AnError
	assert := assert.New(t)

	e := &MalformedRecordError{
		Relation: FileItems,
		Line:     3,
		Field:    "price",
		Cause:    anError,
	}
	assert.Contains(e.Error(), "price")
	assert.Contains(e.Error(), FileItems)
}
