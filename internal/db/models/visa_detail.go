package models

// VisaDetail is the priced offer of a VisaCategory for one process type (regular, express, ...).
type VisaDetail struct {
	ID             uint64 `gorm:"primaryKey" json:"id"`
	VisaCategoryID uint64 `gorm:"not null;index" json:"visa_category_id"`
	ProcessType    string `gorm:"size:50;not null" json:"process_type"`
	// ProcessingTime is free text like "3-5 working days".
	ProcessingTime string `gorm:"size:100" json:"processing_time"`
	// Price is stored without currency, the site renders it as IDR.
	Price float64 `gorm:"type:decimal(15,2);not null;default:0" json:"price"`
	// Requirements is a newline separated list.
	Requirements string `gorm:"type:text" json:"requirements"`
}

// TableName implements gorm's tabler interface.
func (VisaDetail) TableName() string {
	return "visa_details"
}

// VisaDetailRow is a VisaDetail listed together with its category name.
type VisaDetailRow struct {
	VisaDetail
	CategoryName *string `json:"category_name"`
}
