package models

// VisaCategory belongs to a VisaType.
type VisaCategory struct {
	ID         uint64 `gorm:"primaryKey" json:"id"`
	VisaTypeID uint64 `gorm:"not null;index" json:"visa_type_id"`
	Name       string `gorm:"size:100;not null" json:"name"`
}

// TableName implements gorm's tabler interface.
func (VisaCategory) TableName() string {
	return "visa_categories"
}

// VisaCategoryRow is a VisaCategory listed together with its visa type name.
type VisaCategoryRow struct {
	VisaCategory
	VisaTypeName *string `json:"visa_type_name"`
}
