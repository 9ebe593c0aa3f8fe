// Package server delivers icons over HTTP.
//
// It serves an Iconify compatible JSON API, so other instances can use it as
// an API host, and renders single icons as SVG documents.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Service resolves the icons served over HTTP.
type Service interface {
	// Export resolves names of the store key and returns them in the icon set format.
	Export(ctx context.Context, key domain.SetKey, names []string) (*domain.IconSetData, error)
	// RenderSVG resolves an icon and renders it as an SVG document.
	RenderSVG(ctx context.Context, name string, req domain.RenderRequest) (string, error)
}

// Server is the HTTP delivery server.
type Server struct {
	svc     Service
	metrics http.Handler
	logger  ports.Logger
	router  chi.Router
}

// New creates a server. metrics may be nil to disable the /metrics route.
func New(svc Service, metrics http.Handler, logger ports.Logger) *Server {
	s := &Server{svc: svc, metrics: metrics, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	s.Register(r)
	s.router = r
	return s
}

// Register mounts the routes of the server on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.Get("/{prefix}.json", s.handleIconSet)
	r.Get("/{prefix}/{name}.svg", s.handleSVG)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
// ready, when not nil, receives the bound address once the listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	}
	if ready != nil {
		ready(ln.Addr())
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIconSet(w http.ResponseWriter, r *http.Request) {
	key := domain.SetKey{
		Provider: r.URL.Query().Get("provider"),
		Prefix:   chi.URLParam(r, "prefix"),
	}
	names := splitNames(r.URL.Query().Get("icons"))
	if !domain.ValidName(key.Prefix) || len(names) == 0 {
		http.Error(w, "400", http.StatusBadRequest)
		return
	}

	data, err := s.svc.Export(r.Context(), key, names)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(data.Icons) == 0 && len(data.Aliases) == 0 {
		http.Error(w, "404", http.StatusNotFound)
		return
	}

	b, err := json.Marshal(data)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=604800")
	_, _ = w.Write(b)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "prefix") + ":" + chi.URLParam(r, "name")
	if provider := r.URL.Query().Get("provider"); provider != "" {
		name = "@" + provider + ":" + name
	}

	q := r.URL.Query()
	req := domain.RenderRequest{
		Width:  q.Get("width"),
		Height: q.Get("height"),
		Flip:   q.Get("flip"),
		Rotate: q.Get("rotate"),
		Inline: truthy(q.Get("inline")),
		Box:    truthy(q.Get("box")),
	}

	doc, err := s.svc.RenderSVG(r.Context(), name, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64String(doc), 16) + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=604800")
	_, _ = w.Write([]byte(doc))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.HasKind(err, domain.ErrInvalidIconName):
		http.Error(w, "400", http.StatusBadRequest)
	case domain.HasKind(err, domain.ErrIconNotFound):
		http.Error(w, "404", http.StatusNotFound)
	case r.Context().Err() != nil:
		// The client is gone.
	default:
		s.logger.Error(zerr.With(err, "path", r.URL.Path))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
	}
}

func splitNames(v string) []string {
	var names []string
	for name := range strings.SplitSeq(v, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
