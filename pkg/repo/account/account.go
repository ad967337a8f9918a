package account

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

type accountImpl struct {
	repo.IDOrUUIDTranslate
}

func New() repo.Account {
	return &accountImpl{IDOrUUIDTranslate: repo.NewBaseDB()}
}

func (r *accountImpl) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile := &model.Profile{}
	if err := r.DBWithContext(ctx).Where("user_id = ?", userID).Take(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.RecordNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return profile, nil
}

func (r *accountImpl) EnsureProfile(ctx context.Context, userID string, workgroupName string) (*model.Profile, error) {
	profile, err := r.GetProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if code.From(err) != code.RecordNotFound {
		return nil, err
	}

	var out *model.Profile
	err = r.ExecTx(ctx, func(txCtx context.Context) error {
		wg, err := r.FindOrCreateWorkgroup(txCtx, workgroupName)
		if err != nil {
			return err
		}
		out = &model.Profile{UserID: userID, WorkgroupID: wg.ID}
		return r.CreateData(txCtx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *accountImpl) GetWorkgroupByID(ctx context.Context, id int64) (*model.Workgroup, error) {
	wg := &model.Workgroup{}
	if err := r.DBWithContext(ctx).Where("id = ?", id).Take(wg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.RecordNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return wg, nil
}

func (r *accountImpl) FindOrCreateWorkgroup(ctx context.Context, name string) (*model.Workgroup, error) {
	wg := &model.Workgroup{}
	err := r.DBWithContext(ctx).Where("name = ?", name).Take(wg).Error
	if err == nil {
		return wg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.QueryRecordErr.WithErr(err)
	}

	wg = &model.Workgroup{Name: name}
	if err := r.CreateData(ctx, wg); err != nil {
		return nil, err
	}
	return wg, nil
}
