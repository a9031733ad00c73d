package routes

import (
	"github.com/gofiber/fiber/v2"

	"school-site-backend/internal/handlers"
	"school-site-backend/internal/middleware"
	"school-site-backend/internal/services"
)

// Handlers bundles everything route registration needs.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Images        *handlers.ImageHandler
	Videos        *handlers.VideoHandler
	GalleryPhotos *handlers.GalleryPhotoHandler
	GalleryVideos *handlers.GalleryVideoHandler
	Curriculum    *handlers.CurriculumHandler
	Events        *handlers.EventHandler
	Content       *handlers.ContentHandler
	Feedback      *handlers.FeedbackHandler
	Data          *handlers.DataHandler
}

// Setup registers the public read API and the token-gated admin API.
func Setup(app *fiber.App, h *Handlers, auth *services.AuthService, limiter *middleware.RateLimiter) {
	api := app.Group("/api")

	// public: active documents only
	api.Get("/images", h.Images.List)
	api.Get("/videos", h.Videos.List)
	api.Get("/gallery", h.GalleryPhotos.List)
	api.Get("/video-gallery", h.GalleryVideos.List)
	api.Get("/curriculum", h.Curriculum.List)
	api.Get("/annual-events", h.Events.List)
	api.Get("/content/:key", h.Content.GetByKey)
	api.Post("/feedback", limiter.ByIP(), h.Feedback.Submit)
	api.Get("/feedback/:id/mark-read/:token", h.Feedback.MarkReadByToken)

	admin := api.Group("/admin")
	admin.Post("/setup", h.Auth.Setup)
	admin.Post("/login", h.Auth.Login)

	gate := middleware.JWTAuth(auth)
	admin.Use(gate)
	admin.Get("/verify", h.Auth.Verify)
	admin.Post("/reset", h.Auth.Reset)

	admin.Get("/images", h.Images.AdminList)
	admin.Get("/images/:id", h.Images.Get)
	admin.Post("/images", h.Images.Create)
	admin.Put("/images/:id", h.Images.Update)
	admin.Delete("/images/:id", h.Images.Delete)
	admin.Post("/images/batch-upload", h.Images.BatchUpload)

	admin.Get("/videos", h.Videos.AdminList)
	admin.Get("/videos/:id", h.Videos.Get)
	admin.Post("/videos", h.Videos.Create)
	admin.Put("/videos/:id", h.Videos.Update)
	admin.Delete("/videos/:id", h.Videos.Delete)
	admin.Post("/videos/batch-upload", h.Videos.BatchUpload)

	admin.Get("/gallery", h.GalleryPhotos.AdminList)
	admin.Get("/gallery/:id", h.GalleryPhotos.Get)
	admin.Post("/gallery", h.GalleryPhotos.Create)
	admin.Put("/gallery/:id", h.GalleryPhotos.Update)
	admin.Delete("/gallery/:id", h.GalleryPhotos.Delete)
	admin.Post("/gallery/batch-upload", h.GalleryPhotos.BatchUpload)

	admin.Get("/video-gallery", h.GalleryVideos.AdminList)
	admin.Get("/video-gallery/:id", h.GalleryVideos.Get)
	admin.Post("/video-gallery", h.GalleryVideos.Create)
	admin.Put("/video-gallery/:id", h.GalleryVideos.Update)
	admin.Delete("/video-gallery/:id", h.GalleryVideos.Delete)
	admin.Post("/video-gallery/batch-upload", h.GalleryVideos.BatchUpload)

	admin.Get("/curriculum", h.Curriculum.AdminList)
	admin.Get("/curriculum/:id", h.Curriculum.Get)
	admin.Post("/curriculum", h.Curriculum.Create)
	admin.Put("/curriculum/:id", h.Curriculum.Update)
	admin.Delete("/curriculum/:id", h.Curriculum.Delete)

	admin.Get("/annual-events", h.Events.AdminList)
	admin.Get("/annual-events/:id", h.Events.Get)
	admin.Post("/annual-events", h.Events.Create)
	admin.Put("/annual-events/:id", h.Events.Update)
	admin.Delete("/annual-events/:id", h.Events.Delete)

	admin.Get("/content", h.Content.AdminList)
	admin.Post("/content", h.Content.Create)
	admin.Put("/content/:key", h.Content.Update)
	admin.Delete("/content/:key", h.Content.Delete)

	admin.Get("/feedback", h.Feedback.AdminList)
	admin.Put("/feedback/:id/mark-read", h.Feedback.AdminMarkRead)
	admin.Delete("/feedback/:id", h.Feedback.AdminDelete)

	admin.Get("/collections", h.Data.Collections)
	admin.Get("/stats", h.Data.Stats)
	admin.Post("/import/:name", h.Data.Import)
	admin.Get("/export/:name", h.Data.Export)
}
