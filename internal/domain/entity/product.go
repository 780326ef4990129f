package entity

// Product is a row of the supplier catalog. IDs come from the catalog
// importer, so they are plain strings rather than generated UUIDs.
type Product struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

func (Product) TableName() string { return "products" }
