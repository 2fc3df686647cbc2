package entity

// Store provenance tags. Products carry exactly one of ImageURL (remote)
// or ImageRef (bundled asset name).
const (
	StoreAmazon     = "Amazon"
	StoreAliExpress = "AliExpress"
)

// DefaultCategory is used when a provider gives no category.
const DefaultCategory = "General"

// Product is the canonical in-app product representation, independent of
// the provider it came from. Favorite/cart membership is NOT stored here;
// it is a relation against the persisted id sets (see store/prefs).
type Product struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"original_price"`
	DiscountPercent float64 `json:"discount_percent"`
	Category        string  `json:"category"`
	Store           string  `json:"store"`
	ImageURL        string  `json:"image_url,omitempty"`
	ImageRef        string  `json:"image_ref,omitempty"`
	PromotionLink   string  `json:"promotion_link,omitempty"`
}

// Discount derives the discount percentage from a sale and original price.
// Zero whenever the original price does not exceed the sale price.
func Discount(price, originalPrice float64) float64 {
	if originalPrice > 0 && price < originalPrice {
		return (originalPrice - price) / originalPrice * 100
	}
	return 0
}
