package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/uw-gac/phenotag/cmd/phenotagd/handlers"
	kcs "github.com/uw-gac/phenotag/pkg/configs/server"
	"github.com/uw-gac/phenotag/pkg/domain/phenotag"
	pgdb "github.com/uw-gac/phenotag/pkg/domain/phenotag/db/postgres"
	"github.com/uw-gac/phenotag/pkg/domain/session"
	redisstore "github.com/uw-gac/phenotag/pkg/domain/session/store/redis"

	"github.com/uw-gac/phenotag/pkg/domain/session/store/memory"
	"github.com/uw-gac/phenotag/pkg/utils/echoutil"
	"github.com/uw-gac/phenotag/pkg/utils/filewatch"
)

func main() {

	configPath := flag.String(
		"config-path", os.Getenv("PHENOTAG_CONFIG"), "server config path",
	)
	schemaRepo := flag.String(
		"schema-repo", os.Getenv("PHENOTAG_SCHEMA"), "schema repository path (overrides config)",
	)
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	conf, err := kcs.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configuration: %s", err)
	}

	// restart (via the supervisor) when the config file changes
	{
		cctx, cwatch, err := filewatch.UntilModifyContext(ctx, *configPath)
		if err != nil {
			log.Fatalf("can not watch configuration: %s", err)
		}
		defer cwatch()
		ctx = cctx
	}

	repository := conf.SchemaRepository
	if *schemaRepo != "" {
		repository = *schemaRepo
	}

	store := buildStore(conf.Session)
	db, err := phenotag.Default(
		ctx, conf.DBURI, store, pgdb.WithSchemaRepository(repository),
	)
	if err != nil {
		log.Fatalf("can not connect to database: %s", err)
	}
	defer db.Close()

	if repository != "" {
		ctx_, ccan := db.Schema().Context(ctx)
		defer ccan()
		ctx = ctx_
	}

	server := buildServer(db, conf, *loglevel)
	for _, r := range server.Routes() {
		server.Logger.Debugf("- mount handler: %s %s", strings.ToUpper(r.Method), r.Path)
	}

	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		addr := ":" + conf.ServerPort
		var err error
		if *pcert != "" && *pkey != "" {
			err = server.StartTLS(addr, *pcert, *pkey)
		} else {
			err = server.Start(addr)
		}
		if err != nil && err != http.ErrServerClosed {
			ch <- err
		}
	}()

	exit := 0
	select {
	case <-ctx.Done():
		if err := ctx.Err(); err != nil {
			server.Logger.Infof("context has been done: %s, cause: %s", err, context.Cause(ctx))
			exit = 1
		}
	case err := <-ch:
		if err != nil {
			server.Logger.Error("server stops with error:", err)
			exit = 1
		}
	}

	{
		server.Logger.Info("shutting down...")
		qctx, qcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer qcancel()

		if err := server.Shutdown(qctx); err != nil {
			server.Logger.Fatalf("Shutdown with error. %+v", err)
			os.Exit(1)
		}
		os.Exit(exit)
	}
}

func buildStore(conf kcs.SessionConfig) session.Store {
	if conf.Redis == "" {
		return memory.New(conf.EffectiveTTL())
	}
	client := redis.NewClient(&redis.Options{Addr: conf.Redis})
	return redisstore.New(client, conf.EffectiveTTL())
}

func buildServer(db phenotag.Phenotag, conf *kcs.ServerConfig, loglevel string) *echo.Echo {
	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	echoutil.SetLevel(e, loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	api := e.Group("/api", handlers.BearerAuth([]byte(conf.Auth.SignKey)))

	{
		api.GET("/tagged-variables/", handlers.FindTaggedVariablesHandler(db.Tagging()))
		api.POST("/tagged-variables/", handlers.TagVariableHandler(db.Traits(), db.Tagging()))
		api.POST("/tagged-variables/bulk/", handlers.BulkTagHandler(db.Traits(), db.Tagging()))
		api.GET("/tagged-variables/:taggedVariableId/", handlers.GetTaggedVariableHandler(db.Tagging()))
		api.DELETE("/tagged-variables/:taggedVariableId/", handlers.DeleteTaggedVariableHandler(db.Tagging()))
		api.GET("/tagged-variables/:taggedVariableId/resolution/", handlers.ResolutionHandler(db.Review()))
	}

	sessions := db.Sessions()
	{
		api.POST("/tagged-variables/:taggedVariableId/dcc-review/", handlers.AddDCCReviewHandler(db.Review(), sessions))
		api.PUT("/tagged-variables/:taggedVariableId/dcc-review/", handlers.UpdateDCCReviewHandler(db.Review(), sessions))
		api.POST("/dcc-reviews/:dccReviewId/study-response/", handlers.AddStudyResponseHandler(db.Review()))
		api.POST("/dcc-reviews/:dccReviewId/dcc-decision/", handlers.AddDCCDecisionHandler(db.Review(), sessions))
		api.PUT("/dcc-reviews/:dccReviewId/dcc-decision/", handlers.UpdateDCCDecisionHandler(db.Review(), sessions))
	}

	{
		api.GET("/review-queue/", handlers.ReviewQueueHandler(db.Review()))

		api.POST("/sessions/:namespace/", handlers.StartSessionHandler(sessions, db.Tagging()))
		api.GET("/sessions/:namespace/current/", handlers.CurrentSessionHandler(sessions, db.Tagging()))
		api.POST("/sessions/:namespace/next/", handlers.AdvanceSessionHandler(sessions, db.Tagging()))
		api.POST("/sessions/:namespace/skip/", handlers.SkipSessionHandler(sessions, db.Tagging()))
		api.DELETE("/sessions/:namespace/", handlers.EndSessionHandler(sessions))
	}

	return e
}
