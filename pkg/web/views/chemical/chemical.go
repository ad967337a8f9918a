package chemical

import (
	// 外部依赖
	"github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/labsuite/chemmanager/pkg/common"
	code "github.com/labsuite/chemmanager/pkg/common/code"
	coreChemical "github.com/labsuite/chemmanager/pkg/core/chemical"
	chemicalImpl "github.com/labsuite/chemmanager/pkg/core/chemical/chemical"
	auth "github.com/labsuite/chemmanager/pkg/middleware/auth"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
	repoAccount "github.com/labsuite/chemmanager/pkg/repo/account"
)

type Handle struct {
	svc     coreChemical.Service
	account repo.Account
}

func NewHandle() *Handle {
	return &Handle{svc: chemicalImpl.New(), account: repoAccount.New()}
}

func (h *Handle) actor(ctx *gin.Context) (*model.Actor, error) {
	return auth.ResolveActor(ctx, h.account)
}

func (h *Handle) Create(ctx *gin.Context) {
	in := &coreChemical.CreateReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.Create(ctx, actor, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Get(ctx *gin.Context) {
	in := &coreChemical.GetReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.Get(ctx, actor, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) List(ctx *gin.Context) {
	in := &coreChemical.ListReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.List(ctx, actor, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Update(ctx *gin.Context) {
	in := &coreChemical.UpdateReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	common.Reply(ctx, h.svc.Update(ctx, actor, in))
}

func (h *Handle) Delete(ctx *gin.Context) {
	in := &coreChemical.DeleteReq{}
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

func (h *Handle) QueryCompound(ctx *gin.Context) {
	in := &coreChemical.CompoundReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	resp, err := h.svc.QueryCompound(ctx, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) SearchDistributors(ctx *gin.Context) {
	resp, err := h.svc.SearchDistributors(ctx, ctx.Query("q"))
	common.Reply(ctx, err, resp)
}
