package models

import "time"

// Product represents a catalog product document.
// Fields are tagged for both BSON persistence and JSON serialization.
type Product struct {
	ID            string     `bson:"_id" json:"id"`
	Name          string     `bson:"name" json:"name"`
	Description   string     `bson:"description" json:"description"`
	Price         float64    `bson:"price" json:"price"`
	DiscountPrice *float64   `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	StockQuantity int        `bson:"stockQuantity" json:"stockQuantity"`
	SKU           string     `bson:"sku,omitempty" json:"sku,omitempty"`
	Barcode       string     `bson:"barcode,omitempty" json:"barcode,omitempty"`
	Weight        float64    `bson:"weight,omitempty" json:"weight,omitempty"`
	Width         float64    `bson:"width,omitempty" json:"width,omitempty"`
	Height        float64    `bson:"height,omitempty" json:"height,omitempty"`
	Length        float64    `bson:"length,omitempty" json:"length,omitempty"`
	CategoryID    string     `bson:"categoryId" json:"categoryId"`
	IsFeatured    bool       `bson:"isFeatured" json:"isFeatured"`
	IsPublished   bool       `bson:"isPublished" json:"isPublished"`
	PublishedAt   *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	Version       int64      `bson:"version" json:"version"`

	Audit      `bson:",inline"`
	SoftDelete `bson:",inline"`
}
