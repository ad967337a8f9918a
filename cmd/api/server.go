package api

import (
	// 外部依赖
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	cobra "github.com/spf13/cobra"

	// 内部引用
	config "github.com/labsuite/chemmanager/internal/config"
	db "github.com/labsuite/chemmanager/pkg/middleware/db"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
	redis "github.com/labsuite/chemmanager/pkg/middleware/redis"
	trace "github.com/labsuite/chemmanager/pkg/middleware/trace"
	utils "github.com/labsuite/chemmanager/pkg/utils"
	web "github.com/labsuite/chemmanager/pkg/web"
)

func NewWeb() *cobra.Command {
	webServer := &cobra.Command{
		Use:  "apiserver",
		Long: `api server start`,

		// stop printing usage when the command errors
		SilenceUsage: true,
		PreRunE:      initWeb,
		RunE:         runWeb,
		PostRunE:     cleanWebResource,
	}

	return webServer
}

func initWeb(cmd *cobra.Command, _ []string) error {
	conf := config.Global()

	if err := config.LoadDynamic(conf.Media.DynamicPath); err != nil {
		return err
	}

	trace.InitTrace(cmd.Context(), &trace.InitConfig{
		ServiceName:     conf.Server.Platform,
		Version:         conf.Trace.Version,
		TraceEndpoint:   conf.Trace.TraceEndpoint,
		MetricEndpoint:  conf.Trace.MetricEndpoint,
		TraceInstanceID: conf.Trace.TraceInstanceID,
	})

	db.InitPostgres(cmd.Context(), &db.Config{
		Host:   conf.Database.Host,
		Port:   conf.Database.Port,
		User:   conf.Database.User,
		PW:     conf.Database.Password,
		DBName: conf.Database.Name,
		LogConf: db.LogConf{
			Level: conf.Log.LogLevel,
		},
	})

	redis.InitRedis(cmd.Context(), &redis.Redis{
		Host:     conf.Redis.Host,
		Port:     conf.Redis.Port,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	return nil
}

func runWeb(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	conf := config.Global()

	if conf.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	g := gin.New()
	web.NewRouter(ctx, g)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Server.Port),
		Handler:           g,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	utils.SafelyGo(func() {
		logger.Infof(ctx, "api server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}, func(err error) {
		errCh <- err
	})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "server shutdown err: %+v", err)
		return err
	}

	logger.Infof(ctx, "api server stopped")
	return nil
}

func cleanWebResource(cmd *cobra.Command, _ []string) error {
	redis.CloseRedis(cmd.Context())
	db.ClosePostgres(cmd.Context())
	trace.CloseTrace()
	return nil
}
