package main

import (
	"context"
	"log"
	"time"

	"github.com/rpatil524/mlrun/cmd/loops/recurring"
	"github.com/rpatil524/mlrun/cmd/loops/tasks/cachejanitor"
	kca "github.com/rpatil524/mlrun/pkg/configs/api"
	"github.com/rpatil524/mlrun/pkg/domain/mlrun"
	"github.com/rpatil524/mlrun/pkg/loop"
)

type LoggerOptions func(*log.Logger) *log.Logger

func byLogger(l *log.Logger, opt ...LoggerOptions) *log.Logger {
	for _, o := range opt {
		l = o(l)
	}
	return l
}

func Copied() LoggerOptions {
	return func(l *log.Logger) *log.Logger {
		return log.New(l.Writer(), l.Prefix(), l.Flags())
	}
}

func WithPrefix(pre string) LoggerOptions {
	return func(l *log.Logger) *log.Logger {
		l.SetPrefix(pre)
		return l
	}
}

func WithTimestamp() LoggerOptions {
	return func(l *log.Logger) *log.Logger {
		l.SetFlags(l.Flags() | log.Ldate | log.Ltime | log.Lmicroseconds)
		return l
	}
}

// Wrapper for monitoring loop tasks
//
//	Log the start and end of each time a task is executed. Essentially, it executes a task.
func monitor[T any](logger *log.Logger, task loop.Task[T]) loop.Task[T] {
	// counter for execution of the task
	var counter uint64
	return func(ctx context.Context, t T) (ret T, next loop.Next) {
		counter += 1
		timestamp := time.Now()

		logger.Printf("task start: #0x%X: ", counter)

		defer func() {
			logger.Printf(
				"task end: #0x%X (takes %s): %s\n with value = %#v",
				counter, time.Since(timestamp), next, ret,
			)
		}()

		ret, next = task(ctx, t)
		return
	}
}

// Manifest for starting a loop, which determines how the loop should behave.
type LoopManifest struct {
	// Policy for the looping
	Policy recurring.Policy

	// Pagination cache limits the janitor enforces
	Cache kca.CacheConfig
}

// StartCacheJanitorLoop sweeps expired and excess pagination cache
// records until the policy breaks the loop or ctx is done.
func StartCacheJanitorLoop(
	ctx context.Context,
	logger *log.Logger,
	ml mlrun.Mlrun,
	manifest LoopManifest,
) error {
	l := byLogger(logger, Copied(), WithPrefix("[cache janitor loop]"))
	_, err := loop.Start(
		ctx, cachejanitor.Seed(),
		monitor(
			l,
			cachejanitor.Task(
				l,
				ml.PaginationCache(),
				manifest.Cache.TTL.Duration(),
				manifest.Cache.MaxSize,
			).Applied(manifest.Policy),
		),
		loop.WithTimeout(30*time.Second),
	)
	return err
}
