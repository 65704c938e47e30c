package models

// Person represents a person record using GORM.
// It corresponds to the 'persons' table.
type Person struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"` // assigned by the store, zero until persisted
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "persons"
}
