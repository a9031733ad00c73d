package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"school-site-backend/internal/config"
	"school-site-backend/internal/database"
	"school-site-backend/internal/handlers"
	"school-site-backend/internal/mailer"
	"school-site-backend/internal/middleware"
	"school-site-backend/internal/models"
	"school-site-backend/internal/repository"
	"school-site-backend/internal/routes"
	"school-site-backend/internal/scheduler"
	"school-site-backend/internal/services"
	"school-site-backend/internal/storage"
	"school-site-backend/internal/utils"
)

func main() {
	// load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(err)
	}

	// logger
	logger, _ := utils.NewLogger(cfg.Dev())
	defer func() { _ = logger.Sync() }()

	// Mongo
	db, mc, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}

	// media store
	var store storage.Store
	if cfg.Media.Driver == "s3" {
		store, err = storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint)
	} else {
		store, err = storage.NewLocalStore(cfg.Media.Dir, cfg.Media.URLPrefix)
	}
	if err != nil {
		logger.Fatalf("media store init: %v", err)
	}

	// repositories
	images := repository.NewCollection[models.Image](db.Collection("images"))
	videos := repository.NewCollection[models.Video](db.Collection("videos"))
	galleryPhotos := repository.NewCollection[models.GalleryPhoto](db.Collection("galleryphotos"))
	galleryVideos := repository.NewCollection[models.GalleryVideo](db.Collection("galleryvideos"))
	curriculum := repository.NewCollection[models.CurriculumLevel](db.Collection("curriculum"))
	events := repository.NewCollection[models.AnnualEvent](db.Collection("annualevents"))
	contents := repository.NewSiteContentRepo(db.Collection("sitecontents"))
	feedbacks := repository.NewFeedbackRepo(db.Collection("feedbacks"))
	admins := repository.NewAdminRepo(db.Collection("admins"))
	data := repository.NewDataRepo(db)

	// services
	authSvc := services.NewAuthService(admins, cfg.JWT.Secret, cfg.TokenTTL)
	mediaSvc := services.NewMediaService(store, cfg.Media.MaxImageMB, cfg.Media.MaxVideoMB, logger)
	mail := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.AdminTo, logger)
	feedbackSvc := services.NewFeedbackService(feedbacks, mail, cfg.App.PublicBaseURL, logger)

	// redis is optional; without it feedback submission is not rate limited
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	limiter := middleware.NewRateLimiter(rdb, "fb", cfg.Redis.FeedbackPerHour, time.Hour)

	// fiber app & routes
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    services.RequestBodyLimit(cfg.Media.MaxVideoMB),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: corsOrigins(cfg)}))
	app.Use(middleware.RequestLogger(logger))
	if cfg.Media.Driver != "s3" {
		app.Static(cfg.Media.URLPrefix, cfg.Media.Dir)
	}
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	h := &routes.Handlers{
		Auth:          handlers.NewAuthHandler(authSvc),
		Images:        handlers.NewImageHandler(images, mediaSvc),
		Videos:        handlers.NewVideoHandler(videos, mediaSvc),
		GalleryPhotos: handlers.NewGalleryPhotoHandler(galleryPhotos, mediaSvc),
		GalleryVideos: handlers.NewGalleryVideoHandler(galleryVideos, mediaSvc),
		Curriculum:    handlers.NewCurriculumHandler(curriculum),
		Events:        handlers.NewEventHandler(events),
		Content:       handlers.NewContentHandler(contents),
		Feedback:      handlers.NewFeedbackHandler(feedbackSvc, feedbacks),
		Data:          handlers.NewDataHandler(data, db),
	}
	routes.Setup(app, h, authSvc, limiter)

	// feedback cleanup job
	sched := scheduler.New(feedbackSvc, cfg.Cleanup.RetentionMonth, logger)
	if err := sched.Start(cfg.Cleanup.CronSpec); err != nil {
		logger.Fatalf("scheduler start: %v", err)
	}

	// start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("starting school site backend on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown requested")
	timeoutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	sched.Stop()
	_ = app.Shutdown()
	_ = mc.Disconnect(timeoutCtx)
	if rdb != nil {
		_ = rdb.Close()
	}
	logger.Info("shutdown completed")
}

func corsOrigins(cfg *config.Config) string {
	if cfg.App.CORSOrigins != "" {
		return cfg.App.CORSOrigins
	}
	return "*"
}
