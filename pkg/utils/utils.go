// nolint: revive
package utils

import (
	// 外部依赖
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalContext returns a context canceled on SIGINT/SIGTERM.
func SetupSignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
		<-ch
		os.Exit(1)
	}()
	return ctx
}

// Or returns the first non-zero value.
func Or[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

// FilterSlice maps src through fn, dropping elements where fn reports false.
func FilterSlice[S, D any](src []S, fn func(S) (D, bool)) []D {
	dst := make([]D, 0, len(src))
	for _, s := range src {
		if d, ok := fn(s); ok {
			dst = append(dst, d)
		}
	}
	return dst
}

// IfErrReturn runs fns in order, stopping at the first error.
func IfErrReturn(fns ...func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
