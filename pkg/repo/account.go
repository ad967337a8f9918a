package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/labsuite/chemmanager/pkg/model"
)

type Account interface {
	IDOrUUIDTranslate

	// GetProfile returns the user's home-workgroup binding.
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	// EnsureProfile attaches a first-time user to the named workgroup,
	// creating the workgroup when needed.
	EnsureProfile(ctx context.Context, userID string, workgroupName string) (*model.Profile, error)
	GetWorkgroupByID(ctx context.Context, id int64) (*model.Workgroup, error)
	FindOrCreateWorkgroup(ctx context.Context, name string) (*model.Workgroup, error)
}
