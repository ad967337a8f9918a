package web

import (
	// 外部依赖
	"context"

	cors "github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	// 内部引用
	auth "github.com/labsuite/chemmanager/pkg/middleware/auth"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
	chemical "github.com/labsuite/chemmanager/pkg/web/views/chemical"
	health "github.com/labsuite/chemmanager/pkg/web/views/health"
	imports "github.com/labsuite/chemmanager/pkg/web/views/imports"
	stock "github.com/labsuite/chemmanager/pkg/web/views/stock"
	storage "github.com/labsuite/chemmanager/pkg/web/views/storage"
)

func NewRouter(ctx context.Context, g *gin.Engine) {
	installMiddleware(g)
	InstallURL(ctx, g)
}

func installMiddleware(g *gin.Engine) {
	corsConf := cors.DefaultConfig()
	corsConf.AllowAllOrigins = true
	corsConf.AllowHeaders = append(corsConf.AllowHeaders, "Authorization")

	g.Use(
		cors.New(corsConf),
		otelgin.Middleware("chemmanager"),
		logger.LogWithWriter(),
		gin.Recovery(),
	)
}

func InstallURL(_ context.Context, g *gin.Engine) {
	api := g.Group("/api")
	api.GET("/health", health.Handle)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	chemicalHandle := chemical.NewHandle()
	stockHandle := stock.NewHandle()
	storageHandle := storage.NewHandle()
	importsHandle := imports.NewHandle()

	v1 := api.Group("/v1", auth.AuthWeb())
	{
		chemicals := v1.Group("/chemicals")
		chemicals.POST("", chemicalHandle.Create)
		chemicals.GET("", chemicalHandle.List)
		chemicals.GET("/detail", chemicalHandle.Get)
		chemicals.PUT("", chemicalHandle.Update)
		chemicals.DELETE("", chemicalHandle.Delete)
		chemicals.GET("/compound", chemicalHandle.QueryCompound)

		v1.GET("/distributors", chemicalHandle.SearchDistributors)

		stocks := v1.Group("/stocks")
		stocks.POST("", stockHandle.Create)
		stocks.GET("", stockHandle.ListByChemical)
		stocks.GET("/detail", stockHandle.Get)
		stocks.PUT("", stockHandle.Update)
		stocks.DELETE("", stockHandle.Delete)

		v1.POST("/extractions", stockHandle.Extract)
		v1.GET("/units", stockHandle.ListUnits)

		storages := v1.Group("/storages")
		storages.POST("/root", storageHandle.AddRoot)
		storages.POST("/child", storageHandle.AddChild)
		storages.GET("", storageHandle.List)
		storages.DELETE("", storageHandle.Delete)
		storages.POST("/share", storageHandle.Share)

		v1.GET("/workgroups/shared", storageHandle.SearchSharedWorkgroups)

		importGroup := v1.Group("/imports")
		importGroup.POST("", importsHandle.Upload)
		importGroup.GET("/verify", importsHandle.Verify)
		importGroup.POST("/commit", importsHandle.Commit)
	}
}
