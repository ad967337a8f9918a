package chemical

import (
	// 外部依赖
	"context"
	"errors"

	gorm "gorm.io/gorm"

	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
)

type chemicalImpl struct {
	repo.IDOrUUIDTranslate
}

func NewChemicalRepo() repo.ChemicalRepo {
	return &chemicalImpl{IDOrUUIDTranslate: repo.NewBaseDB()}
}

func (r *chemicalImpl) CreateChemical(ctx context.Context, data *model.Chemical) error {
	return r.CreateData(ctx, data)
}

func (r *chemicalImpl) GetChemicalByID(ctx context.Context, id int64) (*model.Chemical, error) {
	chem := &model.Chemical{}
	if err := r.DBWithContext(ctx).Where("id = ?", id).Take(chem).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.RecordNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return chem, nil
}

func (r *chemicalImpl) CountByName(ctx context.Context, workgroupID int64, name string) (int64, error) {
	var total int64
	if err := r.DBWithContext(ctx).Model(&model.Chemical{}).
		Where("workgroup_id = ? AND name = ?", workgroupID, name).
		Count(&total).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return total, nil
}

func (r *chemicalImpl) UpdateChemicalByID(ctx context.Context, id int64, data map[string]any) error {
	if err := r.DBWithContext(ctx).Model(&model.Chemical{}).
		Where("id = ?", id).
		Updates(data).Error; err != nil {
		logger.Errorf(ctx, "UpdateChemicalByID failed: %v", err)
		return code.UpdateDataErr.WithErr(err)
	}
	return nil
}

func (r *chemicalImpl) DeleteChemical(ctx context.Context, id int64) error {
	return r.ExecTx(ctx, func(txCtx context.Context) error {
		if err := r.DBWithContext(txCtx).
			Where("chemical_id = ?", id).
			Delete(&model.ChemicalSynonym{}).Error; err != nil {
			return code.DeleteDataErr.WithErr(err)
		}
		if err := r.DBWithContext(txCtx).
			Where("id = ?", id).
			Delete(&model.Chemical{}).Error; err != nil {
			return code.DeleteDataErr.WithErr(err)
		}
		return nil
	})
}

func (r *chemicalImpl) ListChemicals(ctx context.Context, q repo.ChemicalQuery) ([]*model.Chemical, int64, error) {
	// chemicals stocked in a storage owned by or shared with the workgroup
	sharedSub := r.DBWithContext(ctx).Model(&model.Stock{}).
		Select("stock.chemical_id").
		Joins("JOIN storage ON storage.id = stock.storage_id").
		Joins("LEFT JOIN storage_share ON storage_share.storage_id = storage.id").
		Where("stock.deleted_at IS NULL").
		Where("storage.workgroup_id = ? OR storage_share.workgroup_id = ?", q.WorkgroupID, q.WorkgroupID)

	db := r.DBWithContext(ctx).Model(&model.Chemical{}).
		Where("workgroup_id = ? OR (secret = ? AND id IN (?))", q.WorkgroupID, false, sharedSub)

	if q.Search != nil && *q.Search != "" {
		pattern := "%" + *q.Search + "%"
		synonymSub := r.DBWithContext(ctx).Model(&model.ChemicalSynonym{}).
			Select("chemical_id").
			Where("name ILIKE ?", pattern)
		db = db.Where("(name ILIKE ? OR cas ILIKE ? OR id IN (?))", pattern, pattern, synonymSub)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	if q.Limit == 0 {
		q.Limit = 10
	}

	list := make([]*model.Chemical, 0, q.Limit)
	if err := db.Order("name").Offset(q.Offset).Limit(q.Limit).Find(&list).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}

func (r *chemicalImpl) FindOrCreateByName(ctx context.Context, workgroupID int64, creatorID, name string) (*model.Chemical, error) {
	chem := &model.Chemical{}
	err := r.DBWithContext(ctx).
		Where("workgroup_id = ? AND name = ?", workgroupID, name).
		Take(chem).Error
	if err == nil {
		return chem, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.QueryRecordErr.WithErr(err)
	}

	chem = &model.Chemical{
		WorkgroupID: workgroupID,
		CreatorID:   creatorID,
		Name:        name,
	}
	if err := r.CreateData(ctx, chem); err != nil {
		return nil, err
	}
	return chem, nil
}

func (r *chemicalImpl) CountStocks(ctx context.Context, chemicalID int64) (int64, error) {
	var total int64
	if err := r.DBWithContext(ctx).Model(&model.Stock{}).
		Where("chemical_id = ? AND deleted_at IS NULL", chemicalID).
		Count(&total).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return total, nil
}

func (r *chemicalImpl) GetSynonyms(ctx context.Context, chemicalID int64) ([]*model.ChemicalSynonym, error) {
	list := []*model.ChemicalSynonym{}
	if err := r.DBWithContext(ctx).
		Where("chemical_id = ?", chemicalID).
		Order("name").
		Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

func (r *chemicalImpl) ReconcileSynonyms(ctx context.Context, chemicalID int64, names []string) error {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			wanted[n] = true
		}
	}

	return r.ExecTx(ctx, func(txCtx context.Context) error {
		existing, err := r.GetSynonyms(txCtx, chemicalID)
		if err != nil {
			return err
		}

		current := make(map[string]bool, len(existing))
		for _, syn := range existing {
			current[syn.Name] = true
			if !wanted[syn.Name] {
				if err := r.DBWithContext(txCtx).
					Where("chemical_id = ? AND name = ?", chemicalID, syn.Name).
					Delete(&model.ChemicalSynonym{}).Error; err != nil {
					return code.DeleteDataErr.WithErr(err)
				}
			}
		}

		for name := range wanted {
			if !current[name] {
				if err := r.CreateData(txCtx, &model.ChemicalSynonym{
					ChemicalID: chemicalID,
					Name:       name,
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *chemicalImpl) FindOrCreateDistributor(ctx context.Context, name string) (*model.Distributor, error) {
	dist := &model.Distributor{}
	err := r.DBWithContext(ctx).Where("name = ?", name).Take(dist).Error
	if err == nil {
		return dist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.QueryRecordErr.WithErr(err)
	}

	dist = &model.Distributor{Name: name}
	if err := r.CreateData(ctx, dist); err != nil {
		return nil, err
	}
	return dist, nil
}

func (r *chemicalImpl) GetDistributorByID(ctx context.Context, id int64) (*model.Distributor, error) {
	dist := &model.Distributor{}
	if err := r.DBWithContext(ctx).Where("id = ?", id).Take(dist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.RecordNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return dist, nil
}

func (r *chemicalImpl) SearchDistributors(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	names := []string{}
	if err := r.DBWithContext(ctx).Model(&model.Distributor{}).
		Select("name").
		Where("name ILIKE ?", prefix+"%").
		Order("name").
		Limit(limit).
		Find(&names).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return names, nil
}
