package main

import (
	"net/http"

	"zyracss/common"
	"zyracss/config"
	"zyracss/server"
	"zyracss/zyra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		common.Fatal("invalid-config: %s", err.Message)
	}

	common.Startup("Starting ZyraCSS server v%s", zyra.Version)
	common.Config("Environment: %s", cfg.Env)
	common.Config("Host: %s, Port: %d", cfg.Server.Host, cfg.Server.Port)
	common.Config("Rate limiting: %d req/sec, %d req/min",
		cfg.Server.RequestsPerSecond, cfg.Server.RequestsPerMinute)
	common.Config("Cache enabled: %t", cfg.Engine.Cache)

	engine, engErr := zyra.New(cfg.Engine)
	if engErr != nil {
		common.Fatal("invalid-config: %s", engErr.Message)
	}

	srv := server.New(cfg, engine)
	if serveErr := srv.Start(); serveErr != nil && serveErr != http.ErrServerClosed {
		common.Fatal("server failed: %v", serveErr)
	}
}
