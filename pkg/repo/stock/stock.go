package stock

import (
	// 外部依赖
	"context"
	"errors"
	"time"

	gorm "gorm.io/gorm"
	clause "gorm.io/gorm/clause"

	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
)

type stockImpl struct {
	repo.IDOrUUIDTranslate
}

func NewStockRepo() repo.StockRepo {
	return &stockImpl{IDOrUUIDTranslate: repo.NewBaseDB()}
}

// activeScope filters out soft-deleted stock rows.
func activeScope(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

func (r *stockImpl) CreateStock(ctx context.Context, data *model.Stock) error {
	return r.CreateData(ctx, data)
}

func (r *stockImpl) GetStockByID(ctx context.Context, id int64, includeDeleted bool) (*model.Stock, error) {
	db := r.DBWithContext(ctx).Where("id = ?", id)
	if !includeDeleted {
		db = db.Scopes(activeScope)
	}

	stock := &model.Stock{}
	if err := db.Take(stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.StockNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return stock, nil
}

// LockStockByID serializes concurrent extractions against the same stock.
// The sqlite driver drops the locking clause, which is fine: sqlite writes
// are serialized at the connection level anyway.
func (r *stockImpl) LockStockByID(ctx context.Context, id int64) (*model.Stock, error) {
	stock := &model.Stock{}
	if err := r.DBWithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(activeScope).
		Where("id = ?", id).
		Take(stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.StockNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return stock, nil
}

func (r *stockImpl) UpdateStockByID(ctx context.Context, id int64, data map[string]any) error {
	if err := r.DBWithContext(ctx).Model(&model.Stock{}).Scopes(activeScope).
		Where("id = ?", id).
		Updates(data).Error; err != nil {
		logger.Errorf(ctx, "UpdateStockByID failed: %v", err)
		return code.UpdateDataErr.WithErr(err)
	}
	return nil
}

func (r *stockImpl) SoftDeleteStock(ctx context.Context, id int64) error {
	now := time.Now()
	res := r.DBWithContext(ctx).Model(&model.Stock{}).Scopes(activeScope).
		Where("id = ?", id).
		UpdateColumn("deleted_at", now)
	if res.Error != nil {
		return code.DeleteDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.StockNotFound
	}
	return nil
}

func (r *stockImpl) ListStocksByChemical(ctx context.Context, chemicalID int64, includeDeleted bool) ([]*model.Stock, error) {
	db := r.DBWithContext(ctx).Where("chemical_id = ?", chemicalID)
	if !includeDeleted {
		db = db.Scopes(activeScope)
	}

	list := []*model.Stock{}
	if err := db.Order("id").Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

func (r *stockImpl) CreateExtraction(ctx context.Context, data *model.Extraction) error {
	return r.CreateData(ctx, data)
}

func (r *stockImpl) ListExtractions(ctx context.Context, stockID int64) ([]*model.Extraction, error) {
	list := []*model.Extraction{}
	if err := r.DBWithContext(ctx).
		Where("stock_id = ?", stockID).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}
