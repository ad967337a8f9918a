package imports

import (
	// 外部依赖
	"github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/labsuite/chemmanager/pkg/common"
	code "github.com/labsuite/chemmanager/pkg/common/code"
	coreImports "github.com/labsuite/chemmanager/pkg/core/imports"
	importsImpl "github.com/labsuite/chemmanager/pkg/core/imports/imports"
	auth "github.com/labsuite/chemmanager/pkg/middleware/auth"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
	repoAccount "github.com/labsuite/chemmanager/pkg/repo/account"
)

type Handle struct {
	svc     coreImports.Service
	account repo.Account
}

func NewHandle() *Handle {
	return &Handle{svc: importsImpl.New(), account: repoAccount.New()}
}

func (h *Handle) actor(ctx *gin.Context) (*model.Actor, error) {
	return auth.ResolveActor(ctx, h.account)
}

// Upload accepts the CSV as multipart field "file".
func (h *Handle) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	file, err := header.Open()
	if err != nil {
		common.ReplyErr(ctx, code.ImportFileErr.WithErr(err))
		return
	}
	defer file.Close()

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.Upload(ctx, actor, &coreImports.UploadReq{
		FileName: header.Filename,
		File:     file,
	})
	common.Reply(ctx, err, resp)
}

func (h *Handle) Verify(ctx *gin.Context) {
	in := &coreImports.VerifyReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.Verify(ctx, actor, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Commit(ctx *gin.Context) {
	in := &coreImports.CommitReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.Commit(ctx, actor, in)
	common.Reply(ctx, err, resp)
}
