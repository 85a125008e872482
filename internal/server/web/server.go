// Package web serves the storefront over HTTP. It drives the same workflows
// as the terminal client against the shared store, so it represents a single
// storefront session; requests are handled one at a time.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/client/services"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Services are the workflows the HTTP API exposes. The rewards page asks API
// for the balance and falls back to the session; API may be nil.
type Services struct {
	Auth     services.AuthService
	Cart     services.CartService
	Rewards  services.RewardsService
	Checkout services.CheckoutService
	API      services.RewardsAPI
}

type Server struct {
	address string
	svc     Services
	rec     *Recorder
	logger  logging.Logger
	mu      sync.Mutex
	router  *gin.Engine
}

// NewServer builds the router. rec must be the Notifier and Navigator the
// services were built with.
func NewServer(a string, l logging.Logger, svc Services, rec *Recorder) *Server {
	s := &Server{
		address: a,
		svc:     svc,
		rec:     rec,
		logger:  l.With("module", "web_server"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.POST("/signup", s.serialized(s.signup))
		api.POST("/login", s.serialized(s.login))
		api.POST("/logout", s.serialized(s.logout))
		api.PUT("/profile", s.serialized(s.updateProfile))

		api.GET("/menu", s.menu)

		api.GET("/cart", s.serialized(s.getCart))
		api.DELETE("/cart", s.serialized(s.clearCart))
		api.POST("/cart/items", s.serialized(s.addItem))
		api.PATCH("/cart/items/:name", s.serialized(s.updateItem))
		api.DELETE("/cart/items/:name", s.serialized(s.removeItem))

		api.GET("/rewards", s.serialized(s.rewardsPage))
		api.POST("/rewards/redeem", s.serialized(s.redeem))

		api.POST("/checkout", s.serialized(s.checkout))
		api.GET("/orders", s.serialized(s.orders))
		api.GET("/orders/:id", s.serialized(s.order))
		api.PUT("/orders/:id/cancel", s.serialized(s.cancelOrder))
	}
	return r
}

// serialized runs h under the server lock with a clean recorder.
func (s *Server) serialized(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rec.Take()
		h(c)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
