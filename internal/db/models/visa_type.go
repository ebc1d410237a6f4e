package models

// VisaType belongs to a Country, e.g. "Umroh" for Saudi Arabia.
type VisaType struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CountryID uint64 `gorm:"not null;index" json:"country_id"`
	Name      string `gorm:"size:100;not null" json:"name"`
}

// TableName implements gorm's tabler interface.
func (VisaType) TableName() string {
	return "visa_types"
}

// VisaTypeRow is a VisaType listed together with its country name.
// CountryName is nil when the country was deleted.
type VisaTypeRow struct {
	VisaType
	CountryName *string `json:"country_name"`
}
