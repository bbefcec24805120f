package router

import (
	"context"

	"landeed-backend/internal/admins"
	"landeed-backend/internal/chat"
	"landeed-backend/internal/config"
	"landeed-backend/internal/database"
	"landeed-backend/internal/emails"
	"landeed-backend/internal/health"
	"landeed-backend/internal/middleware"
	"landeed-backend/internal/notifications"
	"landeed-backend/internal/properties"
	"landeed-backend/internal/tasks"
	"landeed-backend/internal/verification"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and routes.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	hh := &health.Handlers{Rdb: rdb}
	if db != nil {
		hh.DB = &gormDBPinger{db: db}
	}
	app.Get("/health", hh.JSON)

	if db == nil {
		// Nothing else can be mounted without storage (e.g. config smoke tests).
		return app, db, rdb, nil
	}

	runner := tasks.NewRunner(64)
	var mailer emails.Sender
	if cfg.SendinblueAPIKey != "" {
		mailer = &emails.BrevoClient{APIKey: cfg.SendinblueAPIKey, MailFrom: cfg.MailFrom}
	}

	// Admin module: bootstrap account, login, account management.
	adminService := &admins.Service{DB: db, JWTSecret: cfg.JWTSecret, EmailDomain: cfg.AdminEmailDomain}
	if err := adminService.EnsureDefaultAdmin(context.Background()); err != nil {
		return nil, nil, nil, err
	}
	adminHandlers := &admins.Handlers{Service: adminService}

	// Notifications module.
	notifyService := &notifications.Service{DB: db}
	notifyHandlers := &notifications.Handlers{Service: notifyService}

	// Properties module.
	propertyService := &properties.Service{DB: db}
	propertyHandlers := &properties.Handlers{Service: propertyService}

	// Verification engine (admin decisions + side effects).
	verifyService := &verification.Service{
		DB:            db,
		Notifications: notifyService,
		Emails:        mailer,
		Tasks:         runner,
	}
	verifyHandlers := &verification.Handlers{Service: verifyService}

	// Chat: message store, derived rooms, realtime hub.
	hub := chat.NewHub()
	chatService := &chat.Service{DB: db, Rdb: rdb}
	chatHandlers := &chat.Handlers{Service: chatService, Hub: hub}
	socket := &chat.Socket{Hub: hub, Service: chatService}

	// --- Properties (public surface) ---
	propGroup := app.Group("/api/properties")
	propGroup.Post("/", propertyHandlers.Submit)
	propGroup.Get("/", propertyHandlers.List)
	propGroup.Get("/my-properties", propertyHandlers.ListMine)
	propGroup.Get("/favorites", propertyHandlers.Favorites)
	propGroup.Get("/category/:category", propertyHandlers.ListByCategory)
	propGroup.Get("/:id", propertyHandlers.Get)
	propGroup.Patch("/:id", propertyHandlers.Edit)
	propGroup.Delete("/:id", propertyHandlers.Delete)
	propGroup.Post("/:id/toggle-favorite", propertyHandlers.ToggleFavorite)

	// --- Admin (bearer token) ---
	adminGroup := app.Group("/api/admin")
	adminGroup.Post("/login", adminHandlers.Login)
	adminGroup.Use(admins.RequireAdmin(adminService))
	adminGroup.Get("/dashboard", verifyHandlers.Dashboard)
	adminGroup.Get("/properties/:status", verifyHandlers.ListByStatus)
	adminGroup.Post("/properties/:id/verify", verifyHandlers.Approve)
	adminGroup.Post("/properties/:id/reject", verifyHandlers.Reject)
	adminGroup.Post("/admins", admins.RequireSuperAdmin(), adminHandlers.Create)
	adminGroup.Get("/admins", admins.RequireSuperAdmin(), adminHandlers.List)

	// --- Notifications ---
	notifyGroup := app.Group("/api/notifications")
	notifyGroup.Get("/", notifyHandlers.List)
	notifyGroup.Post("/:id/read", notifyHandlers.MarkRead)

	// --- Chat (HTTP + legacy listing-scoped messages) ---
	chatGroup := app.Group("/api/chat")
	chatGroup.Post("/send", chatHandlers.Send)
	chatGroup.Get("/history/:receiverEmail", chatHandlers.History)
	chatGroup.Get("/rooms", chatHandlers.Rooms)
	chatGroup.Post("/mark-read/:senderEmail", chatHandlers.MarkRead)
	chatGroup.Delete("/rooms/:conversationId", chatHandlers.DeleteConversation)

	msgGroup := app.Group("/api/messages")
	msgGroup.Post("/", chatHandlers.SaveMessage)
	msgGroup.Get("/property/:propertyId", chatHandlers.MessagesForProperty)
	msgGroup.Get("/property/:propertyId/users/:user1/:user2", chatHandlers.MessagesForPropertyBetween)

	// --- Realtime channel ---
	app.Use("/ws/chat", chat.Upgrade)
	app.Get("/ws/chat", websocket.New(socket.Handle))

	log.Info().Msg("Routes registered")
	return app, db, rdb, nil
}
