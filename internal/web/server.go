package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/conorfennell/sqlgroups/internal/domain"
	"github.com/conorfennell/sqlgroups/internal/storage"
	"github.com/conorfennell/sqlgroups/internal/widget"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

const recentAnswers = 5

// StatsSource reports on the answers given this session.
type StatsSource interface {
	Stats(ctx context.Context) (storage.Stats, error)
	RecentAnswers(ctx context.Context, limit int) ([]storage.Answer, error)
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	widget    *widget.Widget
	stats     StatsSource
	router    *http.ServeMux
	templates *template.Template
	logger    *zap.Logger
}

var funcs = template.FuncMap{
	"percent": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
}

// NewServer creates and configures a new server.
func NewServer(w *widget.Widget, stats StatsSource, logger *zap.Logger) (*Server, error) {
	tpl, err := template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		widget:    w,
		stats:     stats,
		router:    http.NewServeMux(),
		templates: tpl,
		logger:    logger,
	}
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.router.ServeHTTP(rec, r)
	s.logger.Debug("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// routes sets up the routing for the server.
func (s *Server) routes() error {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create sub-filesystem for static assets: %w", err)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	s.router.Handle("/static/", http.StripPrefix("/static/", fileServer))
	s.router.HandleFunc("/", s.handleIndex())
	s.router.HandleFunc("/healthz", s.handleHealth())

	// HTMX-based routes
	s.router.HandleFunc("/classify", s.handlePostClassify())
	s.router.HandleFunc("/select/", s.handlePostSelect())
	s.router.HandleFunc("/quiz", s.handleGetQuiz())
	s.router.HandleFunc("/quiz/toggle", s.handlePostToggle())
	s.router.HandleFunc("/stats", s.handleGetStats())
	return nil
}

// handleIndex renders the full page.
func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		data := map[string]interface{}{
			"Categories": domain.Table(),
			"Render":     s.widget.Current(),
		}
		s.render(w, "index", data)
	}
}

// handlePostClassify classifies the submitted command.
func (s *Server) handlePostClassify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.render(w, "render", s.widget.SubmitCommand(r.PostFormValue("command")))
	}
}

// handlePostSelect shows a category, or answers the quiz when it is running.
func (s *Server) handlePostSelect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		key, ok := domain.ParseKey(strings.TrimPrefix(r.URL.Path, "/select/"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.render(w, "render", s.widget.SelectCategory(key))
	}
}

// handleGetQuiz renders the quiz panel for polling.
func (s *Server) handleGetQuiz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.render(w, "quiz", s.widget.Current().Quiz)
	}
}

// handlePostToggle switches quiz mode and re-renders the panel and the toggle button.
func (s *Server) handlePostToggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		res := s.widget.ToggleQuiz()
		s.render(w, "quiz", res.Quiz)
		s.render(w, "quiz_toggle_oob", res)
	}
}

// handleGetStats renders the session score.
func (s *Server) handleGetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		stats, err := s.stats.Stats(r.Context())
		if err != nil {
			s.logger.Error("failed to get stats", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		recent, err := s.stats.RecentAnswers(r.Context(), recentAnswers)
		if err != nil {
			s.logger.Error("failed to get recent answers", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		data := map[string]interface{}{
			"Stats":  stats,
			"Recent": recent,
		}
		s.render(w, "stats", data)
	}
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
