// @title Placement Prep API
// @version 1.0
// @description Backend server for the placement preparation platform.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"
	"placement_prep_backend/internal/app"
	"placement_prep_backend/internal/config"
	"placement_prep_backend/pkg/configwatcher"
	"placement_prep_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(raw interface{}) {
		if next, ok := raw.(*config.Config); ok {
			application.ApplyConfig(next)
			logger.Log.Info("configuration reloaded")
		}
	})

	application.Run()
}
