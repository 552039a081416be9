package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the catalog. Price, discount and final
// price are stored with fixed-point precision; callers receive them as
// plain numbers via ProductView.
type Product struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string           `json:"name" gorm:"type:varchar(255);uniqueIndex:idx_products_name_category"`
	Price       decimal.Decimal  `json:"-" gorm:"type:decimal(10,2)"`
	Discount    *decimal.Decimal `json:"-" gorm:"type:decimal(5,2)"`
	FinalPrice  decimal.Decimal  `json:"-" gorm:"type:decimal(10,2)"`
	Quantity    string           `json:"quantity" gorm:"type:varchar(50)"`
	Description string           `json:"description" gorm:"type:varchar(1000)"`
	Stock       int              `json:"stock"`
	Images      []string         `json:"images" gorm:"serializer:json;type:text"`
	SKU         string           `json:"sku" gorm:"uniqueIndex;type:varchar(50)"`
	IsActive    bool             `json:"isActive"`
	CategoryID  string           `json:"categoryId" gorm:"type:varchar(36);uniqueIndex:idx_products_name_category"`
	gorm.Model  `json:"-"`
}

// ProductView is the read projection of a product: decimal columns are
// surfaced as ordinary numbers.
type ProductView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Discount    *float64 `json:"discount,omitempty"`
	FinalPrice  float64  `json:"finalPrice"`
	Quantity    string   `json:"quantity"`
	Description string   `json:"description,omitempty"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images,omitempty"`
	SKU         string   `json:"sku"`
	IsActive    bool     `json:"isActive"`
	CategoryID  string   `json:"categoryId"`
}

// View converts the stored product into its numeric projection.
func (p *Product) View() ProductView {
	v := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.InexactFloat64(),
		FinalPrice:  p.FinalPrice.InexactFloat64(),
		Quantity:    p.Quantity,
		Description: p.Description,
		Stock:       p.Stock,
		Images:      p.Images,
		SKU:         p.SKU,
		IsActive:    p.IsActive,
		CategoryID:  p.CategoryID,
	}
	if p.Discount != nil {
		d := p.Discount.InexactFloat64()
		v.Discount = &d
	}
	return v
}

// CreateProductInput is the validation schema for product creation.
type CreateProductInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=255"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Discount    *float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Quantity    string   `json:"quantity" validate:"required,max=50"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	IsActive    *bool    `json:"isActive"`
	CategoryID  string   `json:"categoryId" validate:"required,uuid"`
}

// UpdateProductInput is the validation schema for partial product updates.
// All fields are optional; nil means "leave unchanged".
type UpdateProductInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Discount    *float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Quantity    *string  `json:"quantity" validate:"omitempty,max=50"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	IsActive    *bool    `json:"isActive"`
}

// ProductPage is the paginated result of a product listing.
type ProductPage struct {
	Data []ProductView `json:"data"`
	Meta PageMeta      `json:"meta"`
}
