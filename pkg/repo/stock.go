package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/labsuite/chemmanager/pkg/model"
)

type StockRepo interface {
	IDOrUUIDTranslate

	CreateStock(ctx context.Context, data *model.Stock) error
	// GetStockByID honors soft delete unless includeDeleted is set.
	GetStockByID(ctx context.Context, id int64, includeDeleted bool) (*model.Stock, error)
	// LockStockByID reads an active stock row under a row-level write lock.
	// Must run inside ExecTx; the lock is held until the transaction ends.
	LockStockByID(ctx context.Context, id int64) (*model.Stock, error)
	UpdateStockByID(ctx context.Context, id int64, data map[string]any) error
	// SoftDeleteStock stamps deleted_at; the row stays for auditing.
	SoftDeleteStock(ctx context.Context, id int64) error
	ListStocksByChemical(ctx context.Context, chemicalID int64, includeDeleted bool) ([]*model.Stock, error)

	CreateExtraction(ctx context.Context, data *model.Extraction) error
	ListExtractions(ctx context.Context, stockID int64) ([]*model.Extraction, error)
}
