package daemon

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"framerip/internal/config"
	"framerip/internal/extract"
	"framerip/internal/logger"
	"framerip/internal/sampling"
)

// Server stores all in-memory state and exposes HTTP handlers.
type Server struct {
	mu           sync.RWMutex
	config       Config
	folders      map[string]Folder
	videos       map[string]*Video
	jobs         map[string]*Job
	jobCancel    map[string]context.CancelFunc
	folderByPath map[string]string
	videoByPath  map[string]string
	recordsDir   string
	prober       extract.DurationProber
	capturer     extract.FrameCapturer
	log          logrus.FieldLogger
	wg           sync.WaitGroup
}

// Options wires a Server to its configuration and media backends.
type Options struct {
	Config   *config.Config
	Prober   extract.DurationProber
	Capturer extract.FrameCapturer
	Log      logrus.FieldLogger
}

func NewServer(opts Options) *Server {
	cfg := Config{
		SafetyMargin:  sampling.DefaultMargin,
		MinStep:       sampling.DefaultMinStep,
		DefaultStep:   sampling.DefaultStep,
		Precision:     sampling.DefaultPrecision,
		CaptureFormat: "png",
		FramesRoot:    "frames",
	}
	var recordsDir string
	if c := opts.Config; c != nil {
		cfg.SafetyMargin = c.SafetyMargin
		cfg.MinStep = c.MinStep
		cfg.DefaultStep = c.DefaultStep
		cfg.Precision = c.Precision
		cfg.CaptureFormat = c.CaptureFormat
		cfg.FramesRoot = c.FramesRoot
		recordsDir = c.RecordsDir
	}

	log := opts.Log
	if log == nil {
		log = logger.Log
	}

	return &Server{
		config:       cfg,
		folders:      make(map[string]Folder),
		videos:       make(map[string]*Video),
		jobs:         make(map[string]*Job),
		jobCancel:    make(map[string]context.CancelFunc),
		folderByPath: make(map[string]string),
		videoByPath:  make(map[string]string),
		recordsDir:   recordsDir,
		prober:       opts.Prober,
		capturer:     opts.Capturer,
		log:          log,
	}
}

// Routes returns the HTTP handler for all endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Logging
	r.Use(s.logRequestMiddleware)

	// CORS to allow local client
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger docs
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Config and health
	r.Get("/health", s.handleHealth)
	r.MethodFunc(http.MethodGet, "/config", s.handleConfig)
	r.MethodFunc(http.MethodPut, "/config", s.handleConfig)

	// Plans
	r.MethodFunc(http.MethodPost, "/plans", s.handlePlans)

	// Folders
	r.MethodFunc(http.MethodPost, "/folders", s.handleFolders)

	// Videos
	r.MethodFunc(http.MethodGet, "/videos", s.handleVideos)
	r.MethodFunc(http.MethodPost, "/videos", s.handleVideos)
	r.Route("/videos/{videoID}", func(r chi.Router) {
		r.MethodFunc(http.MethodGet, "/", s.handleGetVideo)
		r.MethodFunc(http.MethodPost, "/rip", s.handleRip)
		r.MethodFunc(http.MethodPost, "/cancel", s.handleCancel)
		r.MethodFunc(http.MethodGet, "/file", s.handleVideoFile)
	})

	// Jobs
	r.MethodFunc(http.MethodGet, "/jobs", s.handleJobs)

	return r
}

// Shutdown cancels every running rip and waits for the job goroutines to exit.
func (s *Server) Shutdown() {
	s.mu.Lock()
	for _, cancel := range s.jobCancel {
		cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// resolver builds a sampling resolver from the current configuration.
func (s *Server) resolver() *sampling.Resolver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := sampling.NewResolver()
	r.Margin = s.config.SafetyMargin
	r.MinStep = s.config.MinStep
	r.DefaultStep = s.config.DefaultStep
	r.Precision = s.config.Precision
	return r
}
