package models

// Country is the root of the visa catalog.
type Country struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;index" json:"name"`
	Code string `gorm:"size:10;not null" json:"code"`
	// Flag holds an emoji or a short code, nil when none was given.
	Flag *string `gorm:"size:50" json:"flag"`
	// Image is the public path or url of the uploaded picture.
	Image       *string `gorm:"size:255" json:"image"`
	Description string  `gorm:"type:text" json:"description"`
}

// TableName implements gorm's tabler interface.
func (Country) TableName() string {
	return "countries"
}
