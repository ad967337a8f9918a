package model

import (
	// 外部依赖
	"time"

	datatypes "gorm.io/datatypes"
)

type Stock struct {
	BaseModel
	ChemicalID    int64      `gorm:"not null;index:idx_stock_chemical" json:"chemical_id"`
	StorageID     int64      `gorm:"not null;index:idx_stock_storage" json:"storage_id"`
	UnitID        int64      `gorm:"not null" json:"unit_id"`
	DistributorID *int64     `gorm:"index:idx_stock_distributor" json:"distributor_id"`
	Name          string     `gorm:"type:varchar(250);not null" json:"name"`
	Quantity      float64    `gorm:"type:numeric(12,3);not null" json:"quantity"`
	Price         *float64   `gorm:"type:numeric(12,2)" json:"price"`
	Purity        *string    `gorm:"type:varchar(100)" json:"purity"`
	Label         *string    `gorm:"type:varchar(250)" json:"label"`
	Comment       *string    `gorm:"type:text" json:"comment"`
	DeletedAt     *time.Time `gorm:"index:idx_stock_deleted" json:"deleted_at"`
}

func (*Stock) TableName() string { return "stock" }

// Extraction is immutable once created; UserID stays nil for anonymous
// withdrawals.
type Extraction struct {
	BaseModel
	StockID  int64   `gorm:"not null;index:idx_extraction_stock" json:"stock_id"`
	UnitID   int64   `gorm:"not null" json:"unit_id"`
	UserID   *string `gorm:"type:varchar(120)" json:"user_id"`
	Quantity float64 `gorm:"type:numeric(12,3);not null" json:"quantity"`
	Comment  *string `gorm:"type:text" json:"comment"`
}

func (*Extraction) TableName() string { return "extraction" }

// ChemicalList stages an uploaded CSV until its column mapping is committed.
type ChemicalList struct {
	BaseModel
	WorkgroupID int64                       `gorm:"not null;index:idx_chemlist_workgroup" json:"workgroup_id"`
	UploadedBy  string                      `gorm:"type:varchar(120);not null" json:"uploaded_by"`
	FilePath    string                      `gorm:"type:varchar(500);not null" json:"file_path"`
	Delimiter   string                      `gorm:"type:varchar(4);not null" json:"delimiter"`
	Columns     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"columns"`
}

func (*ChemicalList) TableName() string { return "chemical_list" }
