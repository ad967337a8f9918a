package common

import (
	// 外部依赖
	"net/http"

	gin "github.com/gin-gonic/gin"

	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
)

type Error struct {
	Msg string `json:"msg"`
}

type Resp struct {
	Code    code.Code `json:"code"`
	Data    any       `json:"data,omitempty"`
	Error   *Error    `json:"error,omitempty"`
	Warning string    `json:"warning,omitempty"`
}

func ReplyOk(ctx *gin.Context, data ...any) {
	resp := &Resp{Code: code.Success}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

func ReplyErr(ctx *gin.Context, err error, msgs ...string) {
	c := code.From(err)
	msg := err.Error()
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	ctx.JSON(httpStatus(c), &Resp{
		Code:  c,
		Error: &Error{Msg: msg},
	})
}

// Reply collapses the usual (err, data) tail of a service call into one response.
func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	ReplyOk(ctx, data...)
}

// ReplyWarn succeeds but carries an advisory message, e.g. a stock-exhausted hint.
func ReplyWarn(ctx *gin.Context, warning string, data ...any) {
	resp := &Resp{Code: code.Success, Warning: warning}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

func httpStatus(c code.Code) int {
	switch c {
	case code.UnLogin, code.LoginFormatErr, code.InvalidToken:
		return http.StatusUnauthorized
	case code.PermissionDenied:
		return http.StatusForbidden
	case code.RecordNotFound, code.StockNotFound, code.StorageNotFound,
		code.UnitNotFound, code.CompoundNotFound:
		return http.StatusNotFound
	case code.ParamErr, code.ChemicalDuplicateErr, code.ChemicalInUseErr,
		code.ConversionUnsupported, code.ImportColumnsMissingErr,
		code.ImportRowErr, code.ImportFileErr, code.StorageHasChildrenErr:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
