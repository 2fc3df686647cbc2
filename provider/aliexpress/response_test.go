package aliexpress

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/jyagua/EasyPromo/model/entity"
)

func queryBody(items string, total int) []byte {
	return []byte(fmt.Sprintf(`{
		"aliexpress_affiliate_product_query_response": {
			"resp_result": {
				"result": {
					"products": {"product": [%s]},
					"total_record_count": %d
				}
			}
		}
	}`, items, total))
}

const itemPhone = `{
	"product_id": 1005001234,
	"product_title": "Wireless Earbuds",
	"product_main_image_url": "https://img.example.com/earbuds.jpg",
	"target_sale_price": "12.34",
	"target_original_price": "20.00",
	"promotion_link": "https://s.click.example.com/e/abc",
	"first_level_category_name": "Consumer Electronics"
}`

func TestNormalize_HotQuery(t *testing.T) {
	products, total, err := Normalize(queryBody(itemPhone, 240), HotQuery)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if total != 240 {
		t.Errorf("total = %d, want 240", total)
	}
	if len(products) != 1 {
		t.Fatalf("len = %d, want 1", len(products))
	}

	p := products[0]
	if p.ID != 1005001234 {
		t.Errorf("ID = %d", p.ID)
	}
	if p.Name != "Wireless Earbuds" || p.Description != p.Name {
		t.Errorf("Name/Description = %q/%q", p.Name, p.Description)
	}
	if p.Price != 12.34 || p.OriginalPrice != 20.00 {
		t.Errorf("prices = %v/%v", p.Price, p.OriginalPrice)
	}
	want := (20.00 - 12.34) / 20.00 * 100
	if math.Abs(p.DiscountPercent-want) > 1e-9 {
		t.Errorf("DiscountPercent = %v, want %v", p.DiscountPercent, want)
	}
	if p.Store != entity.StoreAliExpress {
		t.Errorf("Store = %q", p.Store)
	}
	if p.Category != "Consumer Electronics" {
		t.Errorf("Category = %q", p.Category)
	}
	if p.PromotionLink == "" || p.ImageURL == "" {
		t.Error("promotion link / image url lost in normalization")
	}
}

func TestNormalize_SmartMatchEnvelope(t *testing.T) {
	body := []byte(`{
		"aliexpress_affiliate_product_smartmatch_response": {
			"resp_result": {"result": {"products": {"product": [` + itemPhone + `]}}}
		}
	}`)
	products, _, err := Normalize(body, SmartMatch)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("len = %d, want 1", len(products))
	}
	// Same body under the query envelope key yields nothing for SmartMatch
	products, _, err = Normalize(queryBody(itemPhone, 1), SmartMatch)
	if err != nil || len(products) != 0 {
		t.Errorf("wrong envelope: got %d products, err %v", len(products), err)
	}
}

func TestNormalize_CountMatchesItems(t *testing.T) {
	items := itemPhone
	for i := 0; i < 4; i++ {
		items += "," + itemPhone
	}
	products, _, err := Normalize(queryBody(items, 5), HotQuery)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(products) != 5 {
		t.Errorf("len = %d, want 5", len(products))
	}
}

func TestNormalize_CommaDecimalSeparator(t *testing.T) {
	item := `{"product_id": 7, "product_title": "X", "target_sale_price": "12,50", "target_original_price": "25,00"}`
	products, _, err := Normalize(queryBody(item, 1), HotQuery)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if products[0].Price != 12.5 || products[0].OriginalPrice != 25.0 {
		t.Errorf("prices = %v/%v, want 12.5/25", products[0].Price, products[0].OriginalPrice)
	}
}

func TestNormalize_MalformedPriceDefaults(t *testing.T) {
	item := `{"product_id": 7, "product_title": "X", "target_sale_price": "abc"}`
	products, _, err := Normalize(queryBody(item, 1), HotQuery)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	p := products[0]
	if p.Price != 0 {
		t.Errorf("Price = %v, want 0 for unparseable string", p.Price)
	}
	if p.OriginalPrice != 0 {
		t.Errorf("OriginalPrice = %v, want price fallback 0", p.OriginalPrice)
	}
	if p.DiscountPercent != 0 {
		t.Errorf("DiscountPercent = %v, want 0", p.DiscountPercent)
	}
}

func TestNormalize_OriginalPriceFallsBackToSale(t *testing.T) {
	item := `{"product_id": 7, "product_title": "X", "target_sale_price": "9.99"}`
	products, _, err := Normalize(queryBody(item, 1), HotQuery)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if products[0].OriginalPrice != 9.99 {
		t.Errorf("OriginalPrice = %v, want 9.99", products[0].OriginalPrice)
	}
	if products[0].DiscountPercent != 0 {
		t.Errorf("DiscountPercent = %v, want 0 when original == price", products[0].DiscountPercent)
	}
}

func TestNormalize_CategoryDefaults(t *testing.T) {
	for _, item := range []string{
		`{"product_id": 7, "product_title": "X", "target_sale_price": "1"}`,
		`{"product_id": 7, "product_title": "X", "target_sale_price": "1", "first_level_category_name": "  "}`,
	} {
		products, _, err := Normalize(queryBody(item, 1), HotQuery)
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		if products[0].Category != entity.DefaultCategory {
			t.Errorf("Category = %q, want %q", products[0].Category, entity.DefaultCategory)
		}
	}
}

func TestNormalize_MissingEnvelopeNodes(t *testing.T) {
	bodies := [][]byte{
		[]byte(`{}`),
		[]byte(`{"aliexpress_affiliate_product_query_response": {}}`),
		[]byte(`{"aliexpress_affiliate_product_query_response": {"resp_result": {}}}`),
		[]byte(`{"aliexpress_affiliate_product_query_response": {"resp_result": {"result": {}}}}`),
		[]byte(`{"aliexpress_affiliate_product_query_response": {"resp_result": {"result": {"products": {}}}}}`),
	}
	for i, body := range bodies {
		products, _, err := Normalize(body, HotQuery)
		if err != nil {
			t.Errorf("body %d: unexpected error %v", i, err)
		}
		if len(products) != 0 {
			t.Errorf("body %d: len = %d, want 0", i, len(products))
		}
	}
}

func TestNormalize_TopLevelGarbageIsError(t *testing.T) {
	_, _, err := Normalize([]byte(`<html>rate limited</html>`), HotQuery)
	if err == nil {
		t.Fatal("want error for non-JSON body")
	}
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Errorf("err = %T, want *MalformedResponseError", err)
	}
}

func TestDiscount_Boundaries(t *testing.T) {
	cases := []struct {
		price, original, want float64
	}{
		{10, 10, 0},
		{10, 5, 0},  // original below sale
		{10, 0, 0},  // no original price known
		{0, 10, 100},
		{5, 10, 50},
	}
	for _, c := range cases {
		if got := entity.Discount(c.price, c.original); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Discount(%v, %v) = %v, want %v", c.price, c.original, got, c.want)
		}
	}
}
