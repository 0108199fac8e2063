// Package main runs the plantdb REST API.
package main

import (
	"context"
	"errors"
	"flag"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware
	"golang.org/x/sync/errgroup"

	"github.com/herbverse/plantdb"
	"github.com/herbverse/plantdb/catalog"
	"github.com/herbverse/plantdb/restapi"
	"github.com/herbverse/plantdb/restapi/docs"
)

const shutdownTimeout = 10 * time.Second

// @title plantdb API
// @version 1.0
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	plantdb.ConfigureLogging()

	var configFile, listen, store, seedFile string
	var debug bool
	flag.StringVar(&configFile, "config", "", "Path to configuration file (optional)")
	flag.StringVar(&listen, "listen", "", "host:port to serve on, overrides the config file")
	flag.StringVar(&store, "store", "", "Plant table backend: memory, redis, cassandra or s3")
	flag.StringVar(&seedFile, "seed", "", "JSON array of plants loaded into the memory store")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()
	if debug {
		plantdb.SetLogLevel(log.LevelDebug)
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Error("loading config failed", "error", err)
		os.Exit(1)
	}
	if listen != "" {
		config.Listen = listen
	}
	if store != "" {
		config.Store = plantdb.StoreType(store)
	}
	if seedFile != "" {
		config.SeedFile = seedFile
	}
	if err := config.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	if err := run(config); err != nil {
		log.Error("plantdb server stopped", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (plantdb.Config, error) {
	if path == "" {
		return plantdb.DefaultConfig(), nil
	}
	return plantdb.LoadConfig(path)
}

func run(config plantdb.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openStore(ctx, config)
	if err != nil {
		return err
	}
	defer s.close()

	cat, err := catalog.New(s.store, catalog.Options{})
	if err != nil {
		return err
	}
	if _, err := cat.Load(ctx); err != nil {
		return err
	}

	router := gin.Default()
	docs.SwaggerInfo.BasePath = restapi.BasePath
	resolver := restapi.ResolverFromEnv(os.Getenv("PLANTDB_ENV"), os.Getenv)
	if err := restapi.Mount(router, &restapi.Plants{Catalog: cat, Export: s.export}, resolver); err != nil {
		return err
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	srv := &http.Server{
		Addr:    config.Listen,
		Handler: router,
	}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info("plantdb REST API listening", "address", config.Listen, "store", config.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		log.Info("shutting down plantdb REST API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
