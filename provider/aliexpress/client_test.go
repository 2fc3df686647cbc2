package aliexpress

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(Config{
		BaseURL:        srv.URL,
		AppKey:         "517324",
		AppSecret:      "test-secret",
		TrackingID:     "default",
		ShipToCountry:  "BR",
		TargetCurrency: "BRL",
		TargetLanguage: "pt_BR",
	})
	return c, srv
}

func TestSearch_SignedFormRequest(t *testing.T) {
	var form url.Values
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		form = r.PostForm
		w.Write(queryBody(itemPhone, 1))
	})

	products, total, err := c.Search(context.Background(), 1, "earbuds", "SALE_PRICE_ASC")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(products) != 1 || total != 1 {
		t.Fatalf("got %d products, total %d", len(products), total)
	}

	for _, key := range []string{"app_key", "method", "sign_method", "timestamp", "v", "tracking_id",
		"ship_to_country", "target_currency", "target_language", "page_no", "page_size", "fields", "keywords", "sort", "sign"} {
		if form.Get(key) == "" {
			t.Errorf("form missing %s", key)
		}
	}
	if form.Get("method") != "aliexpress.affiliate.product.query" {
		t.Errorf("method = %q", form.Get("method"))
	}
	if form.Get("page_size") != "15" {
		t.Errorf("page_size = %q, want 15", form.Get("page_size"))
	}

	// The signature must cover every parameter except itself.
	params := map[string]string{}
	for k := range form {
		if k != "sign" {
			params[k] = form.Get(k)
		}
	}
	if want := Sign(params, "test-secret"); form.Get("sign") != want {
		t.Errorf("sign = %q, want %q", form.Get("sign"), want)
	}
}

func TestSearch_OptionalParamsOmitted(t *testing.T) {
	var form url.Values
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		form = r.PostForm
		w.Write(queryBody("", 0))
	})

	// Blank keywords and the discount-descending sentinel are local
	// concerns, not wire parameters.
	if _, _, err := c.Search(context.Background(), 2, "   ", SortDiscountDesc); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if _, ok := form["keywords"]; ok {
		t.Error("blank keywords must not be sent")
	}
	if _, ok := form["sort"]; ok {
		t.Error("DISCOUNT_DESC must not be sent as sort")
	}
	if form.Get("page_no") != "2" {
		t.Errorf("page_no = %q, want 2", form.Get("page_no"))
	}
}

func TestSearch_EmptyBodyIsEmptyResult(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	products, total, err := c.Search(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(products) != 0 || total != 0 {
		t.Errorf("got %d products, total %d, want empty", len(products), total)
	}
}

func TestSearch_NonSuccessStatus(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	_, _, err := c.Search(context.Background(), 1, "", "")
	var remote *RemoteCallError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want *RemoteCallError", err)
	}
	if remote.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want 429", remote.Status)
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("error: not json"))
	})
	_, _, err := c.Search(context.Background(), 1, "", "")
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want *MalformedResponseError", err)
	}
}

func TestRecommendations_SmartMatchParams(t *testing.T) {
	var form url.Values
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		form = r.PostForm
		w.Write([]byte(`{"aliexpress_affiliate_product_smartmatch_response":{"resp_result":{"result":{"products":{"product":[` + itemPhone + `]}}}}}`))
	})

	got := c.Recommendations(context.Background(), 42)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if form.Get("method") != "aliexpress.affiliate.product.smartmatch" {
		t.Errorf("method = %q", form.Get("method"))
	}
	if form.Get("product_ids") != "42" {
		t.Errorf("product_ids = %q, want 42", form.Get("product_ids"))
	}
	if form.Get("sign") == "" {
		t.Error("smartmatch request not signed")
	}
}

func TestRecommendations_FailuresDegradeToEmpty(t *testing.T) {
	handlers := []http.HandlerFunc{
		func(w http.ResponseWriter, r *http.Request) { http.Error(w, "boom", http.StatusInternalServerError) },
		func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("not json")) },
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	}
	for i, h := range handlers {
		c, _ := testClient(t, h)
		if got := c.Recommendations(context.Background(), 7); len(got) != 0 {
			t.Errorf("handler %d: len = %d, want 0", i, len(got))
		}
	}
}
