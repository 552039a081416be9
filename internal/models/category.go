package models

import "gorm.io/gorm"

// Category groups products. Value is the URL-safe slug derived from Title;
// both are unique.
type Category struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title      string `json:"title" gorm:"uniqueIndex;type:varchar(50)"`
	Value      string `json:"value" gorm:"uniqueIndex;type:varchar(50)"`
	Thumbnail  string `json:"thumbnail,omitempty" gorm:"type:varchar(255)"`
	gorm.Model `json:"-"`
}

// CreateCategoryInput is the validation schema for category creation. Value
// is optional: when omitted it is derived from the title.
type CreateCategoryInput struct {
	Title     string `json:"title" validate:"required,min=3,max=50"`
	Value     string `json:"value" validate:"omitempty,min=3,max=50,lowercase"`
	Thumbnail string `json:"thumbnail" validate:"omitempty,url"`
}

// UpdateCategoryInput is the validation schema for partial category updates.
type UpdateCategoryInput struct {
	Title     *string `json:"title" validate:"omitempty,min=3,max=50"`
	Thumbnail *string `json:"thumbnail" validate:"omitempty,url"`
}

// CategoryPage is the paginated result of a category listing.
type CategoryPage struct {
	Data []Category `json:"data"`
	Meta PageMeta   `json:"meta"`
}
