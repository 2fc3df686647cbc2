package aliexpress

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/jyagua/EasyPromo/model/entity"
)

// ResponseKind selects which provider envelope a response body carries.
// The hot-product query and smart-match operations return the same item
// shape nested under operation-specific top-level keys.
type ResponseKind int

const (
	HotQuery ResponseKind = iota
	SmartMatch
)

func (k ResponseKind) envelopeKey() string {
	if k == SmartMatch {
		return "aliexpress_affiliate_product_smartmatch_response"
	}
	return "aliexpress_affiliate_product_query_response"
}

// item is the raw provider product record, decoded loosely so numeric
// ids arriving as JSON numbers or strings both work.
type item struct {
	ProductID     int64  `mapstructure:"product_id"`
	Title         string `mapstructure:"product_title"`
	ImageURL      string `mapstructure:"product_main_image_url"`
	SalePrice     string `mapstructure:"target_sale_price"`
	OriginalPrice string `mapstructure:"target_original_price"`
	PromotionLink string `mapstructure:"promotion_link"`
	CategoryName  string `mapstructure:"first_level_category_name"`
}

// Normalize decodes a provider response body into canonical products plus
// the reported total record count. A body that is not valid JSON is a
// hard error; missing envelope nodes at any depth yield an empty list,
// and per-item field problems degrade to zero values instead of failing.
func Normalize(body []byte, kind ResponseKind) ([]entity.Product, int64, error) {
	var tree map[string]interface{}
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, 0, &MalformedResponseError{Body: string(body), Err: err}
	}

	result := dig(tree, kind.envelopeKey(), "resp_result", "result")
	if result == nil {
		return nil, 0, nil
	}
	total := asInt64(result["total_record_count"])

	products := dig(result, "products")
	if products == nil {
		return nil, total, nil
	}
	rawList, _ := products["product"].([]interface{})

	out := make([]entity.Product, 0, len(rawList))
	for _, raw := range rawList {
		var it item
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &it,
		})
		if err != nil {
			continue
		}
		if err := dec.Decode(raw); err != nil {
			continue
		}
		out = append(out, it.toProduct())
	}
	return out, total, nil
}

func (it item) toProduct() entity.Product {
	price := parsePrice(it.SalePrice, 0)
	original := parsePrice(it.OriginalPrice, price)

	category := strings.TrimSpace(it.CategoryName)
	if category == "" {
		category = entity.DefaultCategory
	}

	return entity.Product{
		ID:              it.ProductID,
		Name:            it.Title,
		Description:     it.Title,
		Price:           price,
		OriginalPrice:   original,
		DiscountPercent: entity.Discount(price, original),
		Category:        category,
		Store:           entity.StoreAliExpress,
		ImageURL:        it.ImageURL,
		PromotionLink:   it.PromotionLink,
	}
}

// parsePrice reads a locale-ambiguous decimal string. Comma decimal
// separators are accepted; anything unparseable falls back to def.
func parsePrice(s string, def float64) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// dig walks nested map nodes, returning nil as soon as a level is absent
// or not an object.
func dig(node map[string]interface{}, path ...string) map[string]interface{} {
	cur := node
	for _, key := range path {
		next, ok := cur[key].(map[string]interface{})
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}
