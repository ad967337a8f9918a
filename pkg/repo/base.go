package repo

import (
	// 外部依赖
	"context"

	gorm "gorm.io/gorm"

	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
	uuid "github.com/labsuite/chemmanager/pkg/common/uuid"
	db "github.com/labsuite/chemmanager/pkg/middleware/db"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
)

// IDOrUUIDTranslate is the shared persistence base every repository embeds.
type IDOrUUIDTranslate interface {
	DBWithContext(ctx context.Context) *gorm.DB
	ExecTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateData(ctx context.Context, data any) error
	UpdateData(ctx context.Context, data any, where map[string]any, columns ...string) error
	UUID2ID(ctx context.Context, m any, uuids ...uuid.UUID) map[uuid.UUID]int64
}

type baseDB struct {
	*db.Datastore
}

func NewBaseDB() IDOrUUIDTranslate {
	return &baseDB{Datastore: db.DB()}
}

func (b *baseDB) CreateData(ctx context.Context, data any) error {
	if err := b.DBWithContext(ctx).Create(data).Error; err != nil {
		logger.Errorf(ctx, "CreateData err: %+v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (b *baseDB) UpdateData(ctx context.Context, data any, where map[string]any, columns ...string) error {
	stmt := b.DBWithContext(ctx).Model(data).Where(where)
	if len(columns) > 0 {
		stmt = stmt.Select(columns)
	}
	if err := stmt.Updates(data).Error; err != nil {
		logger.Errorf(ctx, "UpdateData err: %+v", err)
		return code.UpdateDataErr.WithErr(err)
	}
	return nil
}

func (b *baseDB) UUID2ID(ctx context.Context, m any, uuids ...uuid.UUID) map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(uuids))
	if len(uuids) == 0 {
		return out
	}

	rows := make([]struct {
		ID   int64
		UUID uuid.UUID
	}, 0, len(uuids))
	if err := b.DBWithContext(ctx).Model(m).
		Select("id", "uuid").
		Where("uuid IN ?", uuids).
		Find(&rows).Error; err != nil {
		logger.Errorf(ctx, "UUID2ID err: %+v", err)
		return out
	}

	for _, r := range rows {
		out[r.UUID] = r.ID
	}
	return out
}
