package logger

import (
	// 外部依赖
	"context"
	"os"
	"sync"
	"time"

	gin "github.com/gin-gonic/gin"
	otelzap "github.com/uptrace/opentelemetry-go-extra/otelzap"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path     string
	LogLevel string
	ServiceEnv
}

var (
	base    *zap.Logger
	sugared *otelzap.SugaredLogger
	once    sync.Once
)

func Init(conf *LogConfig) {
	level := zapcore.InfoLevel
	if l, err := zapcore.ParseLevel(conf.LogLevel); err == nil {
		level = l
	}

	encoderConf := zap.NewProductionEncoderConfig()
	encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     14, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConf), fileWriter, level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConf), zapcore.AddSync(os.Stdout), level),
	)

	base = zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.Fields(
			zap.String("platform", conf.Platform),
			zap.String("service", conf.Service),
			zap.String("env", conf.Env),
		))
	sugared = otelzap.New(base, otelzap.WithMinLevel(level)).Sugar()
}

// log returns the global logger, falling back to a dev logger so tests
// and tools work without Init.
func log() *otelzap.SugaredLogger {
	once.Do(func() {
		if sugared == nil {
			base, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
			sugared = otelzap.New(base).Sugar()
		}
	})
	return sugared
}

func Close() {
	if base != nil {
		_ = base.Sync()
	}
}

func Debugf(ctx context.Context, format string, args ...any) {
	log().Ctx(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	log().Ctx(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	log().Ctx(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	log().Ctx(ctx).Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	log().Ctx(ctx).Fatalf(format, args...)
}

// LogWithWriter is the gin access-log middleware.
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path

		ctx.Next()

		Infof(ctx.Request.Context(), "%s %s status=%d latency=%s client=%s",
			ctx.Request.Method,
			path,
			ctx.Writer.Status(),
			time.Since(start),
			ctx.ClientIP(),
		)
	}
}
