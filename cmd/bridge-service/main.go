// cmd/bridge-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storebridge/internal/bridge"
	"storebridge/internal/shopify"
	"storebridge/pkg/config"
	"storebridge/pkg/logger"
	"storebridge/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	addr := cfg.HTTPAddr
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			fmt.Fprintf(os.Stderr, "invalid port number: %s\n", os.Args[1])
			fmt.Fprintln(os.Stderr, "usage: bridge-service [port]")
			os.Exit(1)
		}
		addr = ":" + strconv.Itoa(port)
	}

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	client := shopify.New(cfg, log)

	// Startup connectivity check; an unreachable or misauthenticated shop is fatal.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
	shop, err := client.CurrentShop(ctx)
	cancel()
	if err != nil {
		log.Fatalw("shopify connectivity check failed", "shop_url", cfg.ShopURL, "err", err)
	}
	log.Infow("connected to shop", "name", shop.Name, "domain", shop.Domain)

	svc := bridge.NewService(client, log)
	reg := bridge.NewMethodRegistry(svc)
	server := bridge.NewServer(reg, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())
	r.Use(middleware.Tracing())
	server.Routes(r)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		log.Infow("bridge-service listening", "addr", addr, "shop_url", cfg.ShopURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("ListenAndServe", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	fmt.Println("bridge-service stopped")
}
