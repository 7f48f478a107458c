package main

import (
	"context"
	"log"
	"time"

	"SmartCare360/config"
	"SmartCare360/logger"
	"SmartCare360/routes"

	server "github.com/KanapuramVaishnavi/Core/server"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	startServer = server.Start
	isTest      = false
)

func main() {
	run()
}

func run() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error in loading the ENV")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLog := logger.New(cfg.LogLevel)
	for _, w := range cfg.Warnings() {
		appLog.Security("insecure_config", map[string]interface{}{"warning": w})
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := newApp(context.Background(), cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialise SmartCare360")
	}
	defer a.close()

	defaultopts := server.GetDefaultOptions()

	options := server.Options{
		CacheEnabled:     false,
		MongoEnabled:     false,
		WebServerEnabled: defaultopts.WebServerEnabled,
		WebServerPort:    defaultopts.WebServerPort,

		JobsEnabled: !isTest,
		JobsHandler: func() {
			if isTest {
				return
			}
			a.startJobs()
		},

		WebServerPreHandler: func(r *gin.Engine) {
			r.Use(cors.New(cors.Config{
				AllowOrigins:     cfg.CORSOrigins,
				AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
				AllowCredentials: true,
				MaxAge:           12 * time.Hour,
			}))
			routes.Routes(r, a.ctl)
		},

		MigrationEnabled: !isTest,
		MigrationHandler: func() {
			if isTest {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := a.migrate(ctx); err != nil {
				appLog.WithError(err).Fatal("Migration failed")
			}
			appLog.WithComponent("migrations").Info("Migrations applied")
		},
	}
	startServer(options)
}
