package entity

// CatalogProduct represents a row of the local promotions catalog.
type CatalogProduct struct {
	ID            int64   `gorm:"column:id;primaryKey" json:"id"`
	Name          string  `gorm:"column:name;size:255;not null" json:"name"`
	Description   string  `gorm:"column:description;type:text" json:"description"`
	Price         float64 `gorm:"column:price;type:decimal(12,2);not null;default:0" json:"price"`
	OriginalPrice float64 `gorm:"column:original_price;type:decimal(12,2);not null;default:0" json:"original_price"`
	Category      string  `gorm:"column:category;size:64" json:"category"`
	Store         string  `gorm:"column:store;size:32;index" json:"store"`
	ImageRef      string  `gorm:"column:image_ref;size:64" json:"image_ref"`
}

func (CatalogProduct) TableName() string {
	return "catalog_product"
}

// ToProduct maps a catalog row onto the canonical product shape.
func (c *CatalogProduct) ToProduct() Product {
	original := c.OriginalPrice
	if original <= 0 {
		original = c.Price
	}
	return Product{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		Price:           c.Price,
		OriginalPrice:   original,
		DiscountPercent: Discount(c.Price, original),
		Category:        c.Category,
		Store:           c.Store,
		ImageRef:        c.ImageRef,
	}
}
