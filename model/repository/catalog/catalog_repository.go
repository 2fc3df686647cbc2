package catalog

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jyagua/EasyPromo/model/entity"
)

// Repository serves the local promotions catalog (the "Amazon" source in
// the app). Rows live in SQLite and are seeded on first run.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&entity.CatalogProduct{}); err != nil {
		return nil, fmt.Errorf("catalog: migrate: %w", err)
	}
	return &Repository{db: db}, nil
}

// Seed inserts the bundled catalog if the table is empty.
func (r *Repository) Seed() error {
	var count int64
	if err := r.db.Model(&entity.CatalogProduct{}).Count(&count).Error; err != nil {
		return fmt.Errorf("catalog: count: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := r.db.Create(seedProducts()).Error; err != nil {
		return fmt.Errorf("catalog: seed: %w", err)
	}
	return nil
}

// Search returns catalog products for a store whose name or description
// contains the query, case-insensitively. Empty query matches everything;
// empty store matches every store.
func (r *Repository) Search(store, query string) ([]entity.Product, error) {
	tx := r.db.Model(&entity.CatalogProduct{})
	if store != "" {
		tx = tx.Where("store = ?", store)
	}
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	var rows []entity.CatalogProduct
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	out := make([]entity.Product, len(rows))
	for i := range rows {
		out[i] = rows[i].ToProduct()
	}
	return out, nil
}

// All returns the whole catalog.
func (r *Repository) All() ([]entity.Product, error) {
	return r.Search("", "")
}

func seedProducts() []entity.CatalogProduct {
	return []entity.CatalogProduct{
		{ID: 1, Name: "Smartphone XYZ", Description: "Última geração com câmera avançada.", Price: 2999.99, Category: "Eletrônicos", Store: entity.StoreAmazon, ImageRef: "phone"},
		{ID: 2, Name: "Fone Bluetooth Pro", Description: "Som de alta qualidade e bateria duradoura.", Price: 499.99, Category: "Acessórios", Store: entity.StoreAmazon, ImageRef: "earphone"},
		{ID: 3, Name: "Relógio Inteligente X", Description: "Monitore sua saúde com estilo.", Price: 299.99, Category: "Wearables", Store: entity.StoreAliExpress, ImageRef: "watch"},
		{ID: 4, Name: "Câmera de Segurança Wi-Fi", Description: "Proteja sua casa com tecnologia de ponta.", Price: 199.99, Category: "Segurança", Store: entity.StoreAliExpress, ImageRef: "securitycamera"},
		{ID: 5, Name: "Smartphone ABC", Description: "Penúltima geração com câmera mediana.", Price: 2999.99, Category: "Eletrônicos", Store: entity.StoreAmazon, ImageRef: "phone"},
		{ID: 6, Name: "Smartphone DEF", Description: "Primeira geração com câmera mediana.", Price: 2999.99, Category: "Eletrônicos", Store: entity.StoreAliExpress, ImageRef: "phone"},
		{ID: 7, Name: "Smartphone GHI", Description: "Segunda geração com câmera mediana.", Price: 2999.99, Category: "Eletrônicos", Store: entity.StoreAmazon, ImageRef: "phone"},
	}
}
