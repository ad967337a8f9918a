package unit

import (
	// 外部依赖
	"context"
	"errors"

	haxmap "github.com/alphadose/haxmap"
	gorm "gorm.io/gorm"

	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
)

type unitImpl struct {
	repo.IDOrUUIDTranslate

	// units are near-immutable reference data, cached per id for the
	// per-extraction conversions in stock listings
	cache *haxmap.Map[int64, *model.Unit]
}

func NewUnitRepo() repo.UnitRepo {
	return &unitImpl{
		IDOrUUIDTranslate: repo.NewBaseDB(),
		cache:             haxmap.New[int64, *model.Unit](),
	}
}

func (r *unitImpl) CreateUnit(ctx context.Context, data *model.Unit) error {
	if err := r.CreateData(ctx, data); err != nil {
		return err
	}
	r.cache.Set(data.ID, data)
	return nil
}

func (r *unitImpl) GetUnitByID(ctx context.Context, id int64) (*model.Unit, error) {
	if u, ok := r.cache.Get(id); ok {
		return u, nil
	}

	u := &model.Unit{}
	if err := r.DBWithContext(ctx).
		Preload("EqualsStandardUnit").
		Where("id = ?", id).
		Take(u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.UnitNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	r.cache.Set(u.ID, u)
	return u, nil
}

func (r *unitImpl) GetUnitByName(ctx context.Context, name string) (*model.Unit, error) {
	u := &model.Unit{}
	if err := r.DBWithContext(ctx).
		Preload("EqualsStandardUnit").
		Where("name = ?", name).
		Take(u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.UnitNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return u, nil
}

func (r *unitImpl) FindOrCreateByName(ctx context.Context, name string) (*model.Unit, error) {
	u, err := r.GetUnitByName(ctx, name)
	if err == nil {
		return u, nil
	}
	if code.From(err) != code.UnitNotFound {
		return nil, err
	}

	u = &model.Unit{Name: name}
	if err := r.CreateUnit(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *unitImpl) ListUnits(ctx context.Context) ([]*model.Unit, error) {
	list := []*model.Unit{}
	if err := r.DBWithContext(ctx).
		Preload("EqualsStandardUnit").
		Order("name").
		Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}
