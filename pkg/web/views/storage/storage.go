package storage

import (
	// 外部依赖
	"github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/labsuite/chemmanager/pkg/common"
	code "github.com/labsuite/chemmanager/pkg/common/code"
	coreStorage "github.com/labsuite/chemmanager/pkg/core/storage"
	storageImpl "github.com/labsuite/chemmanager/pkg/core/storage/storage"
	auth "github.com/labsuite/chemmanager/pkg/middleware/auth"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
	repoAccount "github.com/labsuite/chemmanager/pkg/repo/account"
)

type Handle struct {
	svc     coreStorage.Service
	account repo.Account
}

func NewHandle() *Handle {
	return &Handle{svc: storageImpl.New(), account: repoAccount.New()}
}

func (h *Handle) actor(ctx *gin.Context) (*model.Actor, error) {
	return auth.ResolveActor(ctx, h.account)
}

func (h *Handle) AddRoot(ctx *gin.Context) {
	in := &coreStorage.AddRootReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.AddRoot(ctx, actor, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) AddChild(ctx *gin.Context) {
	in := &coreStorage.AddChildReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.AddChild(ctx, actor, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) List(ctx *gin.Context) {
	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.List(ctx, actor)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Delete(ctx *gin.Context) {
	in := &coreStorage.DeleteReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	common.Reply(ctx, h.svc.Delete(ctx, actor, in))
}

func (h *Handle) Share(ctx *gin.Context) {
	in := &coreStorage.ShareReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	common.Reply(ctx, h.svc.Share(ctx, actor, in))
}

func (h *Handle) SearchSharedWorkgroups(ctx *gin.Context) {
	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.SearchSharedWorkgroups(ctx, actor, ctx.Query("q"))
	common.Reply(ctx, err, resp)
}
