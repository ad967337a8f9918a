package stock

import (
	// 外部依赖
	"time"

	// 内部引用
	uuid "github.com/labsuite/chemmanager/pkg/common/uuid"
)

type CreateReq struct {
	ChemicalUUID uuid.UUID `json:"chemical_uuid" binding:"required"`
	StorageUUID  uuid.UUID `json:"storage_uuid" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	Quantity     float64   `json:"quantity" binding:"required,gt=0"`
	UnitName     string    `json:"unit" binding:"required"`
	Price        *float64  `json:"price"`
	Purity       *string   `json:"purity"`
	Label        *string   `json:"label"`
	Comment      *string   `json:"comment"`
	Distributor  *string   `json:"distributor"`
}

type GetReq struct {
	UUID uuid.UUID `form:"uuid" json:"uuid" binding:"required"`
}

type UpdateReq struct {
	UUID        uuid.UUID  `json:"uuid" binding:"required"`
	StorageUUID *uuid.UUID `json:"storage_uuid"`
	Name        *string    `json:"name"`
	Quantity    *float64   `json:"quantity" binding:"omitempty,gt=0"`
	UnitName    *string    `json:"unit"`
	Price       *float64   `json:"price"`
	Purity      *string    `json:"purity"`
	Label       *string    `json:"label"`
	Comment     *string    `json:"comment"`
	Distributor *string    `json:"distributor"`
}

type DeleteReq struct {
	UUID uuid.UUID `json:"uuid" binding:"required"`
}

type ListReq struct {
	ChemicalUUID uuid.UUID `form:"chemical_uuid" binding:"required"`
}

type StockResp struct {
	UUID        uuid.UUID `json:"uuid"`
	Name        string    `json:"name"`
	Quantity    float64   `json:"quantity"`
	// LeftQuantity is the remainder after all extractions, in the stock's
	// own unit.
	LeftQuantity float64   `json:"left_quantity"`
	UnitName     string    `json:"unit"`
	StorageUUID  uuid.UUID `json:"storage_uuid"`
	Price        *float64  `json:"price"`
	Purity       *string   `json:"purity"`
	Label        *string   `json:"label"`
	Comment      *string   `json:"comment"`
	Distributor  *string   `json:"distributor"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StockDetail struct {
	StockResp

	Extractions []*ExtractionResp `json:"extractions"`
}

type ExtractionResp struct {
	UUID      uuid.UUID `json:"uuid"`
	Quantity  float64   `json:"quantity"`
	UnitName  string    `json:"unit"`
	UserID    *string   `json:"user_id"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ExtractReq struct {
	StockUUID uuid.UUID `json:"stock_uuid" binding:"required"`
	Quantity  float64   `json:"quantity" binding:"required,gt=0"`
	UnitName  string    `json:"unit" binding:"required"`
	Comment   *string   `json:"comment"`
	// Anonymous leaves the extraction without a user attribution.
	Anonymous bool `json:"anonymous"`
}

type ExtractResp struct {
	UUID         uuid.UUID `json:"uuid"`
	LeftQuantity float64   `json:"left_quantity"`
	// Warning carries the stock-exhausted advisory; the extraction persists
	// regardless.
	Warning string `json:"warning,omitempty"`
}

type UnitResp struct {
	UUID uuid.UUID `json:"uuid"`
	Name string    `json:"name"`
}
