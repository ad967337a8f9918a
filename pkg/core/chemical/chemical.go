package chemical

import (
	// 外部依赖
	"context"

	// 内部引用
	common "github.com/labsuite/chemmanager/pkg/common"
	model "github.com/labsuite/chemmanager/pkg/model"
)

// Service 定义化学品相关业务接口
//
// 所有方法均接受 context.Context，web 层可直接传入 *gin.Context
// 以便在实现内部获取用户信息、日志、DB会话等。
type Service interface {
	// Create inserts a chemical into the actor's workgroup, enriching empty
	// fields from PubChem when a compound matches. A duplicate name inside
	// the workgroup is rejected as a validation warning.
	Create(ctx context.Context, actor *model.Actor, req *CreateReq) (*ChemicalResp, error)
	// Get returns the detail view including synonyms.
	Get(ctx context.Context, actor *model.Actor, req *GetReq) (*ChemicalResp, error)
	// Update is creator-only and reconciles the synonym list.
	Update(ctx context.Context, actor *model.Actor, req *UpdateReq) error
	// Delete is creator-only and refused while stocks reference the chemical.
	Delete(ctx context.Context, actor *model.Actor, req *DeleteReq) error
	// List applies visibility rules, substring search and pagination.
	List(ctx context.Context, actor *model.Actor, req *ListReq) (*common.PageResp[[]*ChemicalResp], error)
	// QueryCompound looks a compound up by name; a miss is a normal outcome.
	QueryCompound(ctx context.Context, req *CompoundReq) (*CompoundResp, error)
	// SearchDistributors feeds the distributor-name autocomplete.
	SearchDistributors(ctx context.Context, prefix string) ([]string, error)
	// Close drains the background image-download pool.
	Close()
}
