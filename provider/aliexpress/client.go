package aliexpress

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jyagua/EasyPromo/model/entity"
)

const (
	methodProductQuery = "aliexpress.affiliate.product.query"
	methodSmartMatch   = "aliexpress.affiliate.product.smartmatch"

	signMethod      = "sha256"
	protocolVersion = "2.0"

	// SortDiscountDesc is the client-side default: the gateway is not
	// asked to sort, pages are ordered by discount locally instead.
	SortDiscountDesc = "DISCOUNT_DESC"

	resultFields = "product_title,product_main_image_url,target_sale_price,target_original_price,promotion_link,first_level_category_name"

	defaultPageSize = 15
)

// Config carries credentials and locale defaults for the affiliate
// gateway. Zero-value PageSize and HTTPClient get sensible defaults.
type Config struct {
	BaseURL        string
	AppKey         string
	AppSecret      string
	TrackingID     string
	ShipToCountry  string
	TargetCurrency string
	TargetLanguage string
	PageSize       int
	HTTPClient     *http.Client
}

// Client issues signed calls against the affiliate gateway. It performs
// no caching; consolidating results is the product registry's job.
type Client struct {
	cfg  Config
	http *http.Client
	now  func() time.Time
}

func NewClient(cfg Config) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, http: httpClient, now: time.Now}
}

// Search runs the paginated hot-product query. Empty body with 2xx is an
// empty result, non-2xx is a RemoteCallError, an undecodable 2xx body is
// a MalformedResponseError.
func (c *Client) Search(ctx context.Context, page int, keywords, sortOrder string) ([]entity.Product, int64, error) {
	params := c.baseParams(methodProductQuery)
	params["ship_to_country"] = c.cfg.ShipToCountry
	params["target_currency"] = c.cfg.TargetCurrency
	params["target_language"] = c.cfg.TargetLanguage
	params["page_no"] = strconv.Itoa(page)
	params["page_size"] = strconv.Itoa(c.cfg.PageSize)
	params["fields"] = resultFields
	if strings.TrimSpace(keywords) != "" {
		params["keywords"] = keywords
	}
	if sortOrder != "" && sortOrder != SortDiscountDesc {
		params["sort"] = sortOrder
	}

	body, err := c.call(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	if len(body) == 0 {
		return nil, 0, nil
	}
	return Normalize(body, HotQuery)
}

// Recommendations runs the smart-match query for cross-sell suggestions.
// Best effort: every failure degrades to an empty list.
func (c *Client) Recommendations(ctx context.Context, productID int64) []entity.Product {
	params := c.baseParams(methodSmartMatch)
	params["product_ids"] = strconv.FormatInt(productID, 10)
	params["fields"] = resultFields

	body, err := c.call(ctx, params)
	if err != nil {
		log.Printf("[AliExpress] smartmatch for %d failed: %v", productID, err)
		return nil
	}
	if len(body) == 0 {
		return nil
	}
	products, _, err := Normalize(body, SmartMatch)
	if err != nil {
		log.Printf("[AliExpress] smartmatch for %d returned bad body: %v", productID, err)
		return nil
	}
	return products
}

func (c *Client) baseParams(method string) map[string]string {
	return map[string]string{
		"app_key":     c.cfg.AppKey,
		"method":      method,
		"sign_method": signMethod,
		"timestamp":   strconv.FormatInt(c.now().UnixMilli(), 10),
		"v":           protocolVersion,
		"tracking_id": c.cfg.TrackingID,
	}
}

// call signs the parameter map and POSTs it form-encoded. The signature
// covers every other parameter and is appended last.
func (c *Client) call(ctx context.Context, params map[string]string) ([]byte, error) {
	params["sign"] = Sign(params, c.cfg.AppSecret)

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("aliexpress: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aliexpress: transport: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("aliexpress: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteCallError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
