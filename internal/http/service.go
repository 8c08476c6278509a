package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"

	"github.com/invenhq/inventory-api/internal/auth"
	"github.com/invenhq/inventory-api/internal/config"
	"github.com/invenhq/inventory-api/internal/http/metric"
	"github.com/invenhq/inventory-api/internal/http/middleware"
	"github.com/invenhq/inventory-api/internal/http/swagger"
	"github.com/invenhq/inventory-api/internal/service"
	"github.com/invenhq/inventory-api/internal/storage/db"
	"github.com/invenhq/inventory-api/internal/storage/upload"
	"github.com/invenhq/inventory-api/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	issuer    *auth.Issuer
	validator validator.Validator
	health    db.HealthChecker
	uploads   *upload.Store

	adminSvc       service.AdminService
	categorySvc    service.CategoryService
	productSvc     service.ProductService
	transactionSvc service.TransactionService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	issuer *auth.Issuer,
	v validator.Validator,
	health db.HealthChecker,
	uploads *upload.Store,
	adminSvc service.AdminService,
	categorySvc service.CategoryService,
	productSvc service.ProductService,
	transactionSvc service.TransactionService,
) *Service {
	return &Service{
		cfg:            cfg,
		logger:         log.With(slog.String("service", "http")),
		metrics:        metric.New(),
		issuer:         issuer,
		validator:      v,
		health:         health,
		uploads:        uploads,
		adminSvc:       adminSvc,
		categorySvc:    categorySvc,
		productSvc:     productSvc,
		transactionSvc: transactionSvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.CORSOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	adminHandler := newAdminHandler(s.adminSvc, s.validator)
	categoryHandler := newCategoryHandler(s.categorySvc, s.validator)
	productHandler := newProductHandler(s.productSvc, s.uploads, s.validator)
	transactionHandler := newTransactionHandler(s.transactionSvc, s.validator)

	r.Post("/admin/register", s.handle(adminHandler.register))
	r.Post("/admin/login", s.handle(adminHandler.login))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(s.issuer))

		r.Get("/admin/profile", s.handle(adminHandler.profile))
		r.Patch("/admin/profile", s.handle(adminHandler.updateProfile))
		r.Get("/admin", s.handle(adminHandler.list))
		r.Get("/admin/{id}", s.handle(adminHandler.get))
		r.Patch("/admin/{id}", s.handle(adminHandler.updateByID))
		r.Delete("/admin/{id}", s.handle(adminHandler.delete))

		r.Post("/product-categories", s.handle(categoryHandler.create))
		r.Get("/product-categories", s.handle(categoryHandler.list))
		r.Get("/product-categories/{id}", s.handle(categoryHandler.get))
		r.Patch("/product-categories/{id}", s.handle(categoryHandler.update))
		r.Delete("/product-categories/{id}", s.handle(categoryHandler.delete))

		r.Post("/products", s.handle(productHandler.create))
		r.Get("/products", s.handle(productHandler.list))
		r.Get("/products/{id}", s.handle(productHandler.get))
		r.Patch("/products/{id}", s.handle(productHandler.update))
		r.Delete("/products/{id}", s.handle(productHandler.delete))

		r.Post("/transactions", s.handle(transactionHandler.create))
		r.Get("/transactions", s.handle(transactionHandler.list))
		r.Get("/transactions/{id}", s.handle(transactionHandler.get))
	})

	uploadsServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploads.Dir())))
	r.Get("/uploads/*", uploadsServer.ServeHTTP)

	r.Get("/healthz", s.handleHealthz)
	r.Handle(middleware.MetricsPath, s.metrics.Handler())
}

// handle adapts an error-returning handler to http.HandlerFunc with uniform
// error rendering.
func (s *Service) handle(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			writeError(w, r, s.logger, err)
		}
	}
}

func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) {
	healthy, err := s.health.IsHealthy(r.Context())
	if err != nil || !healthy {
		s.logger.ErrorContext(r.Context(), "health check failed", slog.Any("error", err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
