package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/scene"
)

// BuiltinLibraryID names the library compiled into the binary
const BuiltinLibraryID = "showcase"

// Server handles web requests for the material preview
type Server struct {
	port       int
	libraryDir string
}

// NewServer creates a new web server serving libraries from libraryDir
func NewServer(port int, libraryDir string) *Server {
	return &Server{port: port, libraryDir: libraryDir}
}

// RenderRequest represents a render or inspect request from the client
type RenderRequest struct {
	Library      string `json:"library"`      // Library ID
	Width        int    `json:"width"`        // Image width
	Height       int    `json:"height"`       // Image height
	MaxSamples   int    `json:"maxSamples"`   // Samples per pixel
	MaxDepth     int    `json:"maxDepth"`     // Maximum bounce depth
	RRMinBounces int    `json:"rrMinBounces"` // Russian roulette minimum bounces, 0 disables
	Seed         int64  `json:"seed"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	MinSamples       int     `json:"minSamples"`
	MaxSamplesUsed   int     `json:"maxSamplesUsed"`
	DiscardedSamples int     `json:"discardedSamples"`
	Tiles            int     `json:"tiles"`
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/libraries", s.handleLibraries)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLibraries lists the built-in library and every library on disk
func (s *Server) handleLibraries(w http.ResponseWriter, r *http.Request) {
	builtin := scene.DefaultLibraryConfig()
	libraries := []scene.LibraryInfo{{
		ID:          BuiltinLibraryID,
		DisplayName: builtin.Name,
		Description: builtin.Description,
		Materials:   len(builtin.Materials),
	}}

	found, err := scene.ListLibraries(s.libraryDir, logAdapter{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	libraries = append(libraries, found...)

	writeJSON(w, http.StatusOK, libraries)
}

// loadLibrary resolves a library ID to a built library. Only IDs returned by
// the directory listing are accepted, so request input never becomes a path.
func (s *Server) loadLibrary(id string, logger core.Logger) (*scene.Library, error) {
	if id == "" || id == BuiltinLibraryID {
		return scene.BuildLibrary(scene.DefaultLibraryConfig(), logger)
	}

	found, err := scene.ListLibraries(s.libraryDir, logger)
	if err != nil {
		return nil, err
	}
	for _, info := range found {
		if info.ID == id {
			cfg, err := scene.LoadLibraryConfig(info.FilePath)
			if err != nil {
				return nil, err
			}
			return scene.BuildLibrary(cfg, logger)
		}
	}
	return nil, fmt.Errorf("unknown library: %s", id)
}

// parseRenderRequest parses and validates query parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Library: query.Get("library")}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 16, 2000); err != nil {
		return nil, err
	}
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", 50, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 25, 1, 1000); err != nil {
		return nil, err
	}
	if req.RRMinBounces, err = parseIntParam(query, "rrMinBounces", 0, 0, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	if req.Width*req.Height > 800*600 && req.MaxSamples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// logAdapter sends library warnings to the server log
type logAdapter struct{}

func (logAdapter) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}
