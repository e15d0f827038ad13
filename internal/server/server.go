// Package server exposes the sprite generator over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/charsprite/charsprite"
)

// shutdownTimeout bounds the graceful shutdown of in-flight requests.
const shutdownTimeout = 5 * time.Second

// Options configures the static routes and the transport timeouts.
type Options struct {
	StaticRoot   string
	Favicon      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server wires the resolver and the compositor to the HTTP routes.
type Server struct {
	resolver   *charsprite.Resolver
	compositor *charsprite.Compositor
	logger     *slog.Logger
	opts       Options
	router     *gin.Engine
}

// New creates the server and registers its routes.
func New(r *charsprite.Resolver, c *charsprite.Compositor, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		resolver:   r,
		compositor: c,
		logger:     logger,
		opts:       opts,
		router:     gin.New(),
	}

	s.router.Use(requestLogger(logger), gin.CustomRecovery(s.recovered))

	if opts.StaticRoot != "" {
		s.router.Static("/static", opts.StaticRoot)
	}
	if opts.Favicon != "" {
		s.router.StaticFile("/favicon.ico", opts.Favicon)
	}
	s.router.GET("/healthcheck", healthcheck)
	s.router.GET("/generate", s.generate)

	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down", "addr", addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func healthcheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// generate handles GET /generate?sex=&head=&body=&hat=&wing=[&format=][&scale=].
func (s *Server) generate(c *gin.Context) {
	stack, err := s.resolver.Resolve(charsprite.Params{
		Sex:  c.Query("sex"),
		Head: c.Query("head"),
		Body: c.Query("body"),
		Hat:  c.Query("hat"),
		Wing: c.Query("wing"),
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	out, err := charsprite.ParseOutput(c.Query("format"), c.Query("scale"))
	if err != nil {
		s.fail(c, err)
		return
	}

	img, err := s.compositor.Compose(stack, out)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info("Generated sprite",
		"layers", stack.String(),
		"format", out.Format.String(),
		"scale", out.Scale,
		"size", humanize.Bytes(uint64(len(img.Data))),
	)
	c.Data(http.StatusOK, img.MIME, img.Data)
}

// fail reports err to the client as a single line of plain text.
func (s *Server) fail(c *gin.Context, err error) {
	status := charsprite.StatusCode(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Failed to generate sprite", "query", c.Request.URL.RawQuery, "error", err)
	} else {
		s.logger.Debug("Invalid sprite request", "query", c.Request.URL.RawQuery, "error", err)
	}
	c.String(status, charsprite.Message(err))
}

func (s *Server) recovered(c *gin.Context, recovered any) {
	s.logger.Error("Recovered from panic", "path", c.Request.URL.Path, "panic", recovered)
	c.String(http.StatusInternalServerError, charsprite.Message(charsprite.ErrMergeFailed))
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}
		logger.Debug("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"size", humanize.Bytes(uint64(size)),
			"duration", time.Since(start),
		)
	}
}
