package imports

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/labsuite/chemmanager/pkg/model"
)

// Service stages an uploaded CSV and turns it into chemicals and stocks once
// the caller confirms a column mapping.
type Service interface {
	// Upload stores the file, sniffs the delimiter and records the header.
	Upload(ctx context.Context, actor *model.Actor, req *UploadReq) (*UploadResp, error)
	// Verify returns the mapping form: every header column alongside the
	// selectable target fields, required ones marked.
	Verify(ctx context.Context, actor *model.Actor, req *VerifyReq) (*VerifyResp, error)
	// Commit imports all rows in one transaction. A missing required mapping
	// or an unparsable quantity aborts the whole import.
	Commit(ctx context.Context, actor *model.Actor, req *CommitReq) (*CommitResp, error)
}
