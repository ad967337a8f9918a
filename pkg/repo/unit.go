package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/labsuite/chemmanager/pkg/model"
)

type UnitRepo interface {
	IDOrUUIDTranslate

	CreateUnit(ctx context.Context, data *model.Unit) error
	// GetUnitByID preloads the standard-unit reference one hop deep.
	GetUnitByID(ctx context.Context, id int64) (*model.Unit, error)
	GetUnitByName(ctx context.Context, name string) (*model.Unit, error)
	FindOrCreateByName(ctx context.Context, name string) (*model.Unit, error)
	ListUnits(ctx context.Context) ([]*model.Unit, error)
}
