package db

import (
	// 外部依赖
	"context"
	"fmt"
	"time"

	postgres "gorm.io/driver/postgres"
	sqlite "gorm.io/driver/sqlite"
	gorm "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	tracing "gorm.io/plugin/opentelemetry/tracing"

	// 内部引用
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
)

type LogConf struct {
	Level string
}

type Config struct {
	Host    string
	Port    int
	User    string
	PW      string
	DBName  string
	LogConf LogConf
}

type Datastore struct {
	db *gorm.DB
}

var dataStore *Datastore

type txKey struct{}

func InitPostgres(ctx context.Context, conf *Config) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		conf.Host, conf.User, conf.PW, conf.DBName, conf.Port)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel(conf.LogConf.Level)),
	})
	if err != nil {
		logger.Fatalf(ctx, "init postgres fail err: %+v", err)
	}

	if err := gdb.Use(tracing.NewPlugin()); err != nil {
		logger.Fatalf(ctx, "init gorm tracing fail err: %+v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Fatalf(ctx, "get sql db fail err: %+v", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	dataStore = &Datastore{db: gdb}
}

// InitSQLite opens a file or in-memory sqlite datastore. Tests use this
// so repository code runs against a real gorm dialect.
func InitSQLite(ctx context.Context, path string) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Fatalf(ctx, "init sqlite fail err: %+v", err)
	}
	dataStore = &Datastore{db: gdb}
}

func ClosePostgres(ctx context.Context) {
	if dataStore == nil {
		return
	}
	sqlDB, err := dataStore.db.DB()
	if err != nil {
		logger.Errorf(ctx, "close db err: %+v", err)
		return
	}
	_ = sqlDB.Close()
}

func DB() *Datastore {
	return dataStore
}

func (d *Datastore) DBIns() *gorm.DB {
	return d.db
}

// DBWithContext returns the transaction bound to ctx when inside ExecTx,
// otherwise a context-scoped session.
func (d *Datastore) DBWithContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return d.db.WithContext(ctx)
}

// ExecTx runs fn inside a transaction; nested calls reuse the outer tx.
func (d *Datastore) ExecTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func logLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
