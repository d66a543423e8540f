package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rpatil524/mlrun/cmd/mlrund/handlers"
	configs "github.com/rpatil524/mlrun/pkg/configs/api"
	"github.com/rpatil524/mlrun/pkg/domain"
	"github.com/rpatil524/mlrun/pkg/domain/mlrun"
	"github.com/rpatil524/mlrun/pkg/domain/pagination"
	"github.com/rpatil524/mlrun/pkg/utils/echoutil"
	"github.com/rpatil524/mlrun/pkg/utils/filewatch"
)

func main() {
	configPath := flag.String("config-path", os.Getenv("MLRUN_API_CONFIG"), "api config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	logger := log.Default()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	conf, err := configs.Load(*configPath)
	if err != nil {
		logger.Fatalf("can not read configuration: %s", err)
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM,
	)
	defer cancel()

	{
		// quit on config change; the supervisor restarts with the new file
		wctx, cancel, err := filewatch.UntilModifyContext(ctx, *configPath)
		if err != nil {
			logger.Fatalf("can not watch configuration: %s", err)
		}
		defer cancel()
		ctx = wctx
	}
	context.AfterFunc(ctx, func() {
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			logger.Printf("error on shutdown: %s", err)
		}
	})

	ml, err := mlrun.New(ctx, conf, logger)
	if err != nil {
		logger.Fatalf("can not reach database: %s", err)
	}
	defer ml.Close()

	// External permission checks plug into the run listing here.
	// Until an authorizer is configured, every caller sees every run.
	authorize := handlers.Authorizer(func(*domain.AuthInfo) pagination.Filter {
		return func(_ context.Context, items []any) ([]any, error) {
			return items, nil
		}
	})

	e.GET("/api/projects/", handlers.ListProjectsHandler(ml.Paginator()))
	e.GET("/api/runs/", handlers.ListRunsHandler(ml.Paginator(), authorize))

	logger.Println("registered routes:")
	for _, r := range e.Routes() {
		logger.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+conf.ServerPort, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + conf.ServerPort))
	}
}
