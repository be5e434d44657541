package model

// Category groups products. Products reference it by id, not by name, so
// the store enforces referential integrity.
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}
