package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	"github.com/BruksfildServices01/agendamento-smul/internal/commands"
	"github.com/BruksfildServices01/agendamento-smul/internal/config"
	dbpkg "github.com/BruksfildServices01/agendamento-smul/internal/db"
	"github.com/BruksfildServices01/agendamento-smul/internal/infra/cache"
	"github.com/BruksfildServices01/agendamento-smul/internal/infra/storage"
	"github.com/BruksfildServices01/agendamento-smul/internal/routes"
)

func main() {

	// subcomando de linha de comando
	if len(os.Args) > 1 && os.Args[1] == "validar-planilha" {
		os.Exit(commands.ValidarPlanilha(os.Args[2:], os.Stdout))
	}

	cfg := config.Load()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg)
	dispatcher := audit.NewDispatcher(audit.New(db))

	// ======================================================
	// CACHE
	// ======================================================
	var store cache.Store = cache.NewMemory()
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("[CACHE] redis indisponível (%v), usando memória", err)
		} else {
			defer rdb.Close()
			store = rdb
		}
	}

	// ======================================================
	// ARQUIVO DAS PLANILHAS
	// ======================================================
	var archiver storage.Archiver = storage.Nop{}
	if cfg.S3Bucket != "" {
		s3, err := storage.NewS3(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Printf("[STORAGE] %v, arquivamento desativado", err)
		} else {
			archiver = s3
		}
	}

	api := apiclient.NewCached(
		apiclient.New(cfg.BackendURL(), cfg.APITimeout),
		store,
		cfg.CacheTTL,
	)

	r := gin.Default()
	r.MaxMultipartMemory = 12 << 20

	err := routes.RegisterRoutes(r, cfg, routes.Deps{
		DB:       db,
		API:      api,
		Cache:    store,
		Archiver: archiver,
		Audit:    dispatcher,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	})
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s (base %q)", cfg.Addr(), cfg.Path("/"))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	// grava os eventos de auditoria que ainda estão na fila
	dispatcher.Close()
}
