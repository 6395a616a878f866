package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"google.golang.org/grpc"

	"github.com/RjRDRG/sd2021-tp1/adapters"
	"github.com/RjRDRG/sd2021-tp1/api"
	"github.com/RjRDRG/sd2021-tp1/handlers"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
	"github.com/RjRDRG/sd2021-tp1/rpc"
	"github.com/RjRDRG/sd2021-tp1/service"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting spreadsheets service")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"domain", config.DomainID,
		"binding", config.Binding,
		"endpoint", config.EndpointURI(),
		"discovery_addr", config.DiscoveryAddr,
	)

	// Discovery: this service both announces itself and resolves others
	// (its own Users service and foreign Spreadsheets services).
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	discovery, err := adapters.NewMulticastDiscovery(config.DiscoveryAddr, logger)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to create discovery", "err", err)
		os.Exit(1)
	}
	if err := discovery.StartListening(ctx); err != nil {
		level.Error(logger).Log("msg", "Failed to join discovery group", "err", err)
		os.Exit(1)
	}
	if err := discovery.StartAnnouncing(ctx, config.DomainID, interfaces.ServiceKindSpreadsheets, config.EndpointURI()); err != nil {
		level.Error(logger).Log("msg", "Failed to start discovery announcements", "err", err)
		os.Exit(1)
	}

	factory := adapters.NewClientFactory(discovery, logger)
	engine := service.NewEngine(factory, logger)
	sheetsService := service.NewSpreadsheetsService(config.DomainID, factory, engine, logger)

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	switch config.Binding {
	case bindingREST:
		e := echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		validator, err := service.NewOpenAPIValidator(api.OpenAPI)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to build request validator", "err", err)
			os.Exit(1)
		}
		e.Use(validator)
		handlers.NewSpreadsheetsHTTPServer(sheetsService, logger).Register(e)

		go func() {
			addr := fmt.Sprintf(":%d", config.ServicePort)
			level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
			if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
				level.Error(logger).Log("msg", "HTTP server error", "err", err)
			}
		}()

		<-quit
		level.Info(logger).Log("msg", "Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
		}

	case bindingGRPC:
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.ServicePort))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to listen", "err", err)
			os.Exit(1)
		}

		srv := grpc.NewServer(grpc.UnaryInterceptor(service.ErrorToGRPCInterceptor(logger)))
		rpc.RegisterSpreadsheetsServer(srv, handlers.NewSpreadsheetsGRPCServer(sheetsService, logger))

		go func() {
			level.Info(logger).Log("msg", "Starting gRPC server", "addr", lis.Addr().String())
			if err := srv.Serve(lis); err != nil {
				level.Error(logger).Log("msg", "gRPC server error", "err", err)
			}
		}()

		<-quit
		level.Info(logger).Log("msg", "Shutting down server...")
		srv.GracefulStop()
	}

	level.Info(logger).Log("msg", "Server stopped")
}
