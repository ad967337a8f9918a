package health

import (
	// 外部依赖
	"net/http"

	gin "github.com/gin-gonic/gin"
)

func Handle(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
