package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/config"
	"github.com/styledesk/styledesk/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Log.Level)

	svc, err := bootstrap(cfg)
	if err != nil {
		logger.Fatalf("Failed to bootstrap: %v", err)
	}
	defer svc.shutdown()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	registerRoutes(r, svc)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("styledesk listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
