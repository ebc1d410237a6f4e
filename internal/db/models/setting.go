// Package models contains database model definitions.
package models

// Setting is one site setting (address, phone, about_us, ...).
// The collection is exposed as a flat key to value map.
type Setting struct {
	ID    uint64 `gorm:"primaryKey" json:"-"`
	Key   string `gorm:"column:setting_key;unique;size:100;not null" json:"setting_key"`
	Value string `gorm:"column:setting_value;type:text" json:"setting_value"`
}

// TableName implements gorm's tabler interface.
func (Setting) TableName() string {
	return "settings"
}
