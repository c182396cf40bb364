package model

// Category groups products; name is unique
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
}
