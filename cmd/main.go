package main

import (
	"context"
	"log"

	"github.com/agenciadecir/gympro/config"
	"github.com/agenciadecir/gympro/routes"
	"github.com/agenciadecir/gympro/services"
	"github.com/agenciadecir/gympro/utils"
)

func main() {
	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	var uploader *utils.S3Uploader
	if cfg.S3Bucket != "" {
		uploader, err = utils.NewS3Uploader(context.Background(), cfg.S3Region, cfg.S3Bucket, cfg.CloudFrontURL)
		if err != nil {
			log.Fatalf("s3: %v", err)
		}
	} else {
		log.Println("S3_BUCKET not set, photo upload disabled")
	}

	hub := services.NewRealtimeHub()

	r := routes.SetupRouter(db, hub, uploader, cfg)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
