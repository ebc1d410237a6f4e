// Package web wires the fiber application serving the visa catalog api.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/auth"
	"github.com/rizkyprovidervisa/visa-admin/internal/config"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/adminuser"
	countryctrl "github.com/rizkyprovidervisa/visa-admin/internal/db/controller/country"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/setting"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/stats"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/database"
	visacategoryctrl "github.com/rizkyprovidervisa/visa-admin/internal/db/controller/visacategory"
	visadetailctrl "github.com/rizkyprovidervisa/visa-admin/internal/db/controller/visadetail"
	visatypectrl "github.com/rizkyprovidervisa/visa-admin/internal/db/controller/visatype"
	fiberlogger "github.com/rizkyprovidervisa/visa-admin/internal/logger/adapter/fiber"
	"github.com/rizkyprovidervisa/visa-admin/internal/upload"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler/country"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler/dashboard"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler/login"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler/settings"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler/visacategory"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler/visadetail"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler/visatype"
)

const (
	// APIPath is the prefix of every api route.
	APIPath = "/api"

	// MsgNotFound answers unknown routes.
	MsgNotFound = "Not found"

	// MsgTooManyRequests answers a throttled login.
	MsgTooManyRequests = "Too many login attempts, try again later"

	readBufferSize = 8192
)

// ErrDBNil is returned by New without a database handle.
var ErrDBNil = errors.New("database connection is nil")

// Options are the collaborators of the web service.
type Options struct {
	// DB is the opened store. The service closes it on shutdown.
	DB *gorm.DB
	// Images stores country images. Nil disables image uploads.
	Images upload.Store
	// LimiterStorage keeps the login attempt counters. Nil keeps them in memory.
	LimiterStorage fiber.Storage
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and stops the service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown fails the check alive endpoint for the configured grace time,
// stops the http server and closes the database.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	s.alive.Store(false)

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("failed to stop http server")
	}

	if err := database.Close(s.db); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates the web service and registers every route.
func New(cfg *config.Config, opts Options) (*Service, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	if opts.DB == nil {
		return nil, ErrDBNil
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: readBufferSize,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      cfg.Webserver.BodyLimit,
			ErrorHandler:   errorHandler,
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
		db:           opts.DB,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: cfg.Webserver.CheckAliveURI,
		MetricsURI:    cfg.Webserver.MetricsPath,
		UserLocal:     auth.LocalUsername,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(cfg.Webserver.CORSAllowOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get(cfg.Webserver.CheckAliveURI, service.checkAlive)

	if cfg.Webserver.MetricsPath != "" {
		app.Get(cfg.Webserver.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	if cfg.Upload.Backend == config.UploadBackendDisk {
		app.Static(cfg.Upload.PublicPath, cfg.Upload.Dir, fiber.Static{Browse: false})
	}

	api := app.Group(APIPath)
	gate := auth.RequireBearer(cfg.Auth.JWTSecret)

	for _, svc := range services(cfg, opts) {
		svc.Register(api, gate)
	}

	api.Use(func(c *fiber.Ctx) error {
		return handler.Message(c, fiber.StatusNotFound, MsgNotFound)
	})

	return service, nil
}

// services builds the api handlers on top of the gorm repositories.
func services(cfg *config.Config, opts Options) []handler.Service {
	authenticator := auth.NewAuthenticator(adminuser.New(opts.DB), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var loginMiddleware []fiber.Handler
	if cfg.Webserver.LoginRateLimit.Enabled {
		loginMiddleware = append(loginMiddleware, loginLimiter(cfg.Webserver.LoginRateLimit, opts.LimiterStorage))
	}

	return []handler.Service{
		login.New(authenticator, loginMiddleware...),
		country.New(countryctrl.New(opts.DB), opts.Images),
		visatype.New(visatypectrl.New(opts.DB)),
		visacategory.New(visacategoryctrl.New(opts.DB)),
		visadetail.New(visadetailctrl.New(opts.DB)),
		settings.New(setting.New(opts.DB)),
		dashboard.New(stats.New(opts.DB)),
	}
}

// loginLimiter throttles sign in attempts per client ip.
func loginLimiter(cfg config.LoginRateLimit, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return handler.Message(c, fiber.StatusTooManyRequests, MsgTooManyRequests)
		},
	})
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// errorHandler answers errors escaping the handlers as json.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	return handler.Message(c, code, msg)
}

func corsOrigins(origins string) string {
	if origins == "" {
		return "*"
	}

	return origins
}
