package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/labsuite/chemmanager/pkg/model"
)

type StorageRepo interface {
	IDOrUUIDTranslate

	CreateStorage(ctx context.Context, data *model.Storage) error
	GetStorageByID(ctx context.Context, id int64) (*model.Storage, error)
	// ListByWorkgroup returns nodes owned by or shared with the workgroup,
	// siblings ordered by name.
	ListByWorkgroup(ctx context.Context, workgroupID int64) ([]*model.Storage, error)
	CountChildren(ctx context.Context, id int64) (int64, error)
	// AncestorChain walks parent pointers root-first, excluding the node itself.
	AncestorChain(ctx context.Context, node *model.Storage) ([]*model.Storage, error)
	DeleteStorage(ctx context.Context, id int64) error
	FindRootByName(ctx context.Context, workgroupID int64, name string) (*model.Storage, error)

	// SharedWorkgroupIDs lists workgroups the node is shared with (owner excluded).
	SharedWorkgroupIDs(ctx context.Context, storageID int64) ([]int64, error)
	ShareWithWorkgroup(ctx context.Context, storageID, workgroupID int64) error
	// SearchSharedWorkgroupNames feeds the search-parameter autocomplete.
	SearchSharedWorkgroupNames(ctx context.Context, workgroupID int64, prefix string, limit int) ([]string, error)
}
