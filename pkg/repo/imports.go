package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/labsuite/chemmanager/pkg/model"
	uuid "github.com/labsuite/chemmanager/pkg/common/uuid"
)

type ChemicalListRepo interface {
	IDOrUUIDTranslate

	CreateList(ctx context.Context, data *model.ChemicalList) error
	GetListByUUID(ctx context.Context, id uuid.UUID) (*model.ChemicalList, error)
	// DeleteList drops the staging row once a commit finished.
	DeleteList(ctx context.Context, id int64) error
}
