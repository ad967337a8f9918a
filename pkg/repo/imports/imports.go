package imports

import (
	// 外部依赖
	"context"
	"errors"

	gorm "gorm.io/gorm"

	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
	uuid "github.com/labsuite/chemmanager/pkg/common/uuid"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
)

type listImpl struct {
	repo.IDOrUUIDTranslate
}

func New() repo.ChemicalListRepo {
	return &listImpl{IDOrUUIDTranslate: repo.NewBaseDB()}
}

func (r *listImpl) CreateList(ctx context.Context, data *model.ChemicalList) error {
	return r.CreateData(ctx, data)
}

func (r *listImpl) GetListByUUID(ctx context.Context, id uuid.UUID) (*model.ChemicalList, error) {
	list := &model.ChemicalList{}
	if err := r.DBWithContext(ctx).Where("uuid = ?", id).Take(list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.RecordNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

func (r *listImpl) DeleteList(ctx context.Context, id int64) error {
	if err := r.DBWithContext(ctx).Where("id = ?", id).
		Delete(&model.ChemicalList{}).Error; err != nil {
		return code.DeleteDataErr.WithErr(err)
	}
	return nil
}
