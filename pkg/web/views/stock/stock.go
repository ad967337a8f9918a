package stock

import (
	// 外部依赖
	"github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/labsuite/chemmanager/pkg/common"
	code "github.com/labsuite/chemmanager/pkg/common/code"
	coreStock "github.com/labsuite/chemmanager/pkg/core/stock"
	stockImpl "github.com/labsuite/chemmanager/pkg/core/stock/stock"
	auth "github.com/labsuite/chemmanager/pkg/middleware/auth"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
	repoAccount "github.com/labsuite/chemmanager/pkg/repo/account"
)

type Handle struct {
	svc     coreStock.Service
	account repo.Account
}

func NewHandle() *Handle {
	return &Handle{svc: stockImpl.New(), account: repoAccount.New()}
}

func (h *Handle) actor(ctx *gin.Context) (*model.Actor, error) {
	return auth.ResolveActor(ctx, h.account)
}

func (h *Handle) Create(ctx *gin.Context) {
	in := &coreStock.CreateReq{}
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
	in := &coreStock.GetReq{}
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

func (h *Handle) ListByChemical(ctx *gin.Context) {
	in := &coreStock.ListReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.ListByChemical(ctx, actor, in)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Update(ctx *gin.Context) {
	in := &coreStock.UpdateReq{}
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
	in := &coreStock.DeleteReq{}
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

// Extract replies with the stock-exhausted advisory while still persisting
// the withdrawal.
func (h *Handle) Extract(ctx *gin.Context) {
	in := &coreStock.ExtractReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	actor, err := h.actor(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	resp, err := h.svc.Extract(ctx, actor, in)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	if resp.Warning != "" {
		common.ReplyWarn(ctx, resp.Warning, resp)
		return
	}
	common.ReplyOk(ctx, resp)
}

func (h *Handle) ListUnits(ctx *gin.Context) {
	resp, err := h.svc.ListUnits(ctx)
	common.Reply(ctx, err, resp)
}
