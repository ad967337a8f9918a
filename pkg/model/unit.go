package model

// Unit declares at most a single conversion hop: EqualsStandard is the
// number of this unit per one standard unit. A unit without a standard
// reference is itself standard.
type Unit struct {
	BaseModel
	Name                 string   `gorm:"type:varchar(100);not null;uniqueIndex:idx_unit_name" json:"name"`
	EqualsStandard       *float64 `gorm:"type:numeric(16,6)" json:"equals_standard"`
	EqualsStandardUnitID *int64   `gorm:"index:idx_unit_standard" json:"equals_standard_unit_id"`
	EqualsStandardUnit   *Unit    `gorm:"foreignKey:EqualsStandardUnitID" json:"equals_standard_unit,omitempty"`
}

func (*Unit) TableName() string { return "unit" }

// NoneUnitName is the sentinel unit assigned by bulk import when a row
// carries no resolvable unit.
const NoneUnitName = "None"
