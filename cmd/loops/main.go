package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpatil524/mlrun/cmd/loops/recurring"
	configs "github.com/rpatil524/mlrun/pkg/configs/api"
	"github.com/rpatil524/mlrun/pkg/domain/mlrun"
	"github.com/rpatil524/mlrun/pkg/utils/args"
	"github.com/rpatil524/mlrun/pkg/utils/filewatch"
	"github.com/rpatil524/mlrun/pkg/utils/try"
)

func main() {
	logger := byLogger(log.Default(), WithTimestamp())
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM,
	)
	defer cancel()

	pconfig := flag.String(
		"config", os.Getenv("MLRUN_API_CONFIG"), "path to config file",
	)
	policy := args.Parser(recurring.ParsePolicy)
	flag.Var(
		policy, "policy",
		`loop policy (syntax: forever[:COOLDOWN]|backlog).`+
			` "forever[:COOLDOWN]" = run forever until error. When backlog is over, `+
			`wait COOLDOWN (optional duration. default: cache monitor interval) as interval.`+
			` "backlog" = run until error or backlog is over.`,
	)
	flag.Parse()

	{
		// watch config; restart (by the supervisor) picks changes up
		wctx, cancel, err := filewatch.UntilModifyContext(ctx, *pconfig)
		if err != nil {
			logger.Fatal(err)
		}
		defer cancel()
		ctx = wctx
	}

	conf := try.To(configs.Load(*pconfig)).OrFatal(logger)

	ml := try.To(mlrun.New(ctx, conf, logger)).OrFatal(logger)
	defer ml.Close()

	pol := recurring.Policy(recurring.Forever(conf.Pagination.Cache.MonitorInterval.Duration()))
	if policy.IsSet() {
		pol = policy.Value()
	}

	logger.Printf(`start cache janitor loop /w policy "%s"`, pol.String())

	err := StartCacheJanitorLoop(
		ctx, logger, ml,
		LoopManifest{
			Policy: recurring.UntilError(pol),
			Cache:  conf.Pagination.Cache,
		},
	)

	if err == nil {
		return
	} else if errors.Is(err, context.Canceled) {
		logger.Fatal(err, "(loop context is cancelled by:", context.Cause(ctx), ")")
	}

	logger.Fatal(err)
}
