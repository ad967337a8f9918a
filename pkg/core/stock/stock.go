package stock

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/labsuite/chemmanager/pkg/model"
)

// Service manages stock bottles and their extraction history.
type Service interface {
	// Create registers a bottle; the chemical must belong to the actor's
	// workgroup.
	Create(ctx context.Context, actor *model.Actor, req *CreateReq) (*StockResp, error)
	// Get returns the detail view with extraction history and the remaining
	// quantity in the stock's own unit.
	Get(ctx context.Context, actor *model.Actor, req *GetReq) (*StockDetail, error)
	Update(ctx context.Context, actor *model.Actor, req *UpdateReq) error
	// Delete soft-deletes; the actor's workgroup must be among the storage's
	// workgroups.
	Delete(ctx context.Context, actor *model.Actor, req *DeleteReq) error
	// ListByChemical returns active bottles with remaining quantities.
	ListByChemical(ctx context.Context, actor *model.Actor, req *ListReq) ([]*StockResp, error)
	// Extract withdraws inside one transaction and reports a stock-exhausted
	// warning once the remainder drops to zero or below.
	Extract(ctx context.Context, actor *model.Actor, req *ExtractReq) (*ExtractResp, error)
	// ListUnits feeds the unit drop-down.
	ListUnits(ctx context.Context) ([]*UnitResp, error)
}
