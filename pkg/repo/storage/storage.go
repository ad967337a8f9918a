package storage

import (
	// 外部依赖
	"context"
	"errors"

	gorm "gorm.io/gorm"

	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
)

type storageImpl struct {
	repo.IDOrUUIDTranslate
}

func NewStorageRepo() repo.StorageRepo {
	return &storageImpl{IDOrUUIDTranslate: repo.NewBaseDB()}
}

func (r *storageImpl) CreateStorage(ctx context.Context, data *model.Storage) error {
	return r.CreateData(ctx, data)
}

func (r *storageImpl) GetStorageByID(ctx context.Context, id int64) (*model.Storage, error) {
	node := &model.Storage{}
	if err := r.DBWithContext(ctx).Where("id = ?", id).Take(node).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.StorageNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return node, nil
}

func (r *storageImpl) ListByWorkgroup(ctx context.Context, workgroupID int64) ([]*model.Storage, error) {
	sharedSub := r.DBWithContext(ctx).Model(&model.StorageShare{}).
		Select("storage_id").
		Where("workgroup_id = ?", workgroupID)

	list := []*model.Storage{}
	if err := r.DBWithContext(ctx).
		Where("workgroup_id = ? OR id IN (?)", workgroupID, sharedSub).
		Order("name").
		Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

func (r *storageImpl) CountChildren(ctx context.Context, id int64) (int64, error) {
	var total int64
	if err := r.DBWithContext(ctx).Model(&model.Storage{}).
		Where("parent_id = ?", id).
		Count(&total).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return total, nil
}

// AncestorChain resolves parents one hop at a time; depth stays small for
// lab storage trees, so no recursive CTE.
func (r *storageImpl) AncestorChain(ctx context.Context, node *model.Storage) ([]*model.Storage, error) {
	chain := []*model.Storage{}
	cur := node
	for cur.ParentID != nil {
		parent, err := r.GetStorageByID(ctx, *cur.ParentID)
		if err != nil {
			return nil, err
		}
		chain = append([]*model.Storage{parent}, chain...)
		cur = parent
	}
	return chain, nil
}

func (r *storageImpl) DeleteStorage(ctx context.Context, id int64) error {
	return r.ExecTx(ctx, func(txCtx context.Context) error {
		if err := r.DBWithContext(txCtx).
			Where("storage_id = ?", id).
			Delete(&model.StorageShare{}).Error; err != nil {
			return code.DeleteDataErr.WithErr(err)
		}
		if err := r.DBWithContext(txCtx).
			Where("id = ?", id).
			Delete(&model.Storage{}).Error; err != nil {
			return code.DeleteDataErr.WithErr(err)
		}
		return nil
	})
}

func (r *storageImpl) FindRootByName(ctx context.Context, workgroupID int64, name string) (*model.Storage, error) {
	node := &model.Storage{}
	err := r.DBWithContext(ctx).
		Where("workgroup_id = ? AND parent_id IS NULL AND name = ?", workgroupID, name).
		Take(node).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.StorageNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return node, nil
}

func (r *storageImpl) SharedWorkgroupIDs(ctx context.Context, storageID int64) ([]int64, error) {
	ids := []int64{}
	if err := r.DBWithContext(ctx).Model(&model.StorageShare{}).
		Select("workgroup_id").
		Where("storage_id = ?", storageID).
		Find(&ids).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return ids, nil
}

func (r *storageImpl) ShareWithWorkgroup(ctx context.Context, storageID, workgroupID int64) error {
	var total int64
	if err := r.DBWithContext(ctx).Model(&model.StorageShare{}).
		Where("storage_id = ? AND workgroup_id = ?", storageID, workgroupID).
		Count(&total).Error; err != nil {
		return code.QueryRecordErr.WithErr(err)
	}
	if total > 0 {
		return nil
	}
	return r.CreateData(ctx, &model.StorageShare{
		StorageID:   storageID,
		WorkgroupID: workgroupID,
	})
}

func (r *storageImpl) SearchSharedWorkgroupNames(ctx context.Context, workgroupID int64, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	// workgroups whose storages are shared with ours, or that our storages
	// are shared with
	names := []string{}
	if err := r.DBWithContext(ctx).Model(&model.Workgroup{}).
		Distinct("workgroup.name").
		Joins("JOIN storage ON storage.workgroup_id = workgroup.id").
		Joins("JOIN storage_share ON storage_share.storage_id = storage.id").
		Where("storage_share.workgroup_id = ? OR storage.workgroup_id = ?", workgroupID, workgroupID).
		Where("workgroup.name ILIKE ?", prefix+"%").
		Order("workgroup.name").
		Limit(limit).
		Find(&names).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return names, nil
}
