package redis

import (
	// 外部依赖
	"context"
	"fmt"
	"net"
	"time"

	rediscmd "github.com/redis/go-redis/extra/rediscmd/v9"
	r "github.com/redis/go-redis/v9"

	// 内部引用
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
)

type Redis struct {
	Host     string
	Port     int
	Password string
	DB       int
}

var redisClient *r.Client

func InitRedis(ctx context.Context, conf *Redis) {
	var err error
	redisClient, err = initRedis(conf)
	if err != nil {
		logger.Fatalf(ctx, "init redis fail err: %+v", err)
	}
}

func CloseRedis(_ context.Context) {
	if redisClient != nil {
		redisClient.Close()
	}
}

// GetClient 获取Redis客户端实例
func GetClient() *r.Client {
	return redisClient
}

func initRedis(conf *Redis) (*r.Client, error) {
	client := r.NewClient(&r.Options{
		Addr:         fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password:     conf.Password,
		DB:           conf.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	client.AddHook(&logHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// logHook logs slow commands with rediscmd formatting.
type logHook struct{}

const slowThreshold = 100 * time.Millisecond

func (*logHook) DialHook(next r.DialHook) r.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (*logHook) ProcessHook(next r.ProcessHook) r.ProcessHook {
	return func(ctx context.Context, cmd r.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		if d := time.Since(start); d > slowThreshold {
			logger.Warnf(ctx, "slow redis cmd %s took %s", rediscmd.CmdString(cmd), d)
		}
		return err
	}
}

func (*logHook) ProcessPipelineHook(next r.ProcessPipelineHook) r.ProcessPipelineHook {
	return func(ctx context.Context, cmds []r.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if d := time.Since(start); d > slowThreshold {
			summary, _ := rediscmd.CmdsString(cmds)
			logger.Warnf(ctx, "slow redis pipeline %s took %s", summary, d)
		}
		return err
	}
}
