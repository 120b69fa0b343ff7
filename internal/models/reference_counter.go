package models

// ReferenceCounterID is the fixed primary key of the singleton counter
// row. The allocator is the only writer of this table.
const ReferenceCounterID = "loan_counter"

// ReferenceCounter holds the last issued per-year sequence number for
// loan reference numbers. Counter restarts at 1 when Year changes.
type ReferenceCounter struct {
	ID      string `gorm:"primaryKey;size:50"`
	Year    int    `gorm:"not null"`
	Counter int    `gorm:"not null"`
}

// TableName specifies the table name for ReferenceCounter model
func (ReferenceCounter) TableName() string {
	return "reference_counters"
}
