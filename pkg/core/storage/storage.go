package storage

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/labsuite/chemmanager/pkg/model"
)

// Service manages the storage location tree of a workgroup.
type Service interface {
	// AddRoot creates a top-level location owned by the actor's workgroup.
	AddRoot(ctx context.Context, actor *model.Actor, req *AddRootReq) (*StorageResp, error)
	// AddChild attaches a location under an existing node of the same workgroup.
	AddChild(ctx context.Context, actor *model.Actor, req *AddChildReq) (*StorageResp, error)
	// List returns the visible tree depth-first with display strings resolved.
	List(ctx context.Context, actor *model.Actor) ([]*StorageNode, error)
	// Delete removes a leaf node; only the creator may delete, and a node
	// with children is refused.
	Delete(ctx context.Context, actor *model.Actor, req *DeleteReq) error
	// Share grants another workgroup access to a node by workgroup name.
	Share(ctx context.Context, actor *model.Actor, req *ShareReq) error
	// SearchSharedWorkgroups feeds the search-parameter autocomplete.
	SearchSharedWorkgroups(ctx context.Context, actor *model.Actor, prefix string) ([]string, error)
}
