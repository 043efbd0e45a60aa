package server

import (
	"os"

	cachepackage "member-profile/cache"
	"member-profile/config"
	"member-profile/database"
	"member-profile/errorlog"
	"member-profile/handlers"
	"member-profile/session"
	"member-profile/views"

	utilscache "github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

func StartServer(cfg config.Config) {
	// Initialize logger
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting Member Profile Service...")

	// Initialize database
	dbConn := database.InitializeDatabase(cfg)
	defer dbConn.Close()

	// Initialize cache (only backs sessions)
	var kv utilscache.Cache
	if cfg.SessionType == config.SessionTypeCache {
		kv = cachepackage.InitializeCache(cfg)
		defer kv.Close()
	}

	store, err := session.NewStore(cfg, kv)
	if err != nil {
		logger.Error("Failed to initialize session store", zap.Error(err))
		os.Exit(1)
	}

	errLog, err := errorlog.Open(cfg.ErrorLogPath)
	if err != nil {
		logger.Error("Failed to open error log", zap.Error(err))
		os.Exit(1)
	}
	defer errLog.Close()

	renderer, err := views.NewTemplateRenderer(cfg.TemplatesDir)
	if err != nil {
		logger.Error("Failed to load templates", zap.Error(err))
		os.Exit(1)
	}

	// Initialize handlers
	failures := handlers.NewFailureReporter(errLog, renderer, cfg.ErrorDetail == config.ErrorDetailOpaque)
	lifecycle := handlers.NewLifecycle(dbConn, store, cfg.SessionMirrorProfile, failures)
	profileHandler := handlers.NewProfileHandler(renderer)

	server := httpserver.New(cfg.Port, handlers.CheckSession)

	server.Register(httpserver.Route{
		Name:     "HealthCheck",
		Method:   "GET",
		Path:     "/health",
		AuthType: "none",
	}, httpserver.HandlerFunc(handlers.HealthCheck))

	for _, route := range handlers.Routes(profileHandler) {
		server.Register(httpserver.Route{
			Name:     route.Name,
			Method:   route.Method,
			Path:     route.Path,
			AuthType: route.AuthType,
		}, httpserver.HandlerFunc(lifecycle.Wrap(route.Handler)))
	}

	logger.Info("Member Profile Service started", zap.String("port", cfg.Port))
	logger.Info("Pages: GET / , GET|POST /login , GET|POST /edit , GET /logout")

	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}
