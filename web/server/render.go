package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/integrator"
	"github.com/df07/go-scatter/pkg/renderer"
	"github.com/df07/go-scatter/pkg/scene"
)

// RenderResult is sent once the image is finished
type RenderResult struct {
	Library   string `json:"library"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "result", "error", "complete"
	Data string `json:"data"`
}

// handleRender renders the preview scene of a library, streaming console
// output and the finished image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; the handler waits for it before returning
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	result, err := s.render(ctx, req, webLogger)

	// All logging happens on this goroutine, so nothing sends after the close
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)})
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: err.Error()})
		return
	}
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "result", Data: string(data)})
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// setupPreview builds the library and its preview scene
func (s *Server) setupPreview(req *RenderRequest, logger core.Logger) (*scene.Scene, error) {
	lib, err := s.loadLibrary(req.Library, logger)
	if err != nil {
		return nil, err
	}
	return scene.NewPreviewScene(lib, float64(req.Width)/float64(req.Height))
}

// render runs a full render for req
func (s *Server) render(ctx context.Context, req *RenderRequest, logger core.Logger) (*RenderResult, error) {
	startTime := time.Now()

	preview, err := s.setupPreview(req, logger)
	if err != nil {
		return nil, err
	}

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.MaxDepth = req.MaxDepth
	integratorConfig.RussianRouletteMinBounces = req.RRMinBounces
	integratorConfig.Background = preview.Background

	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerPixel = req.MaxSamples
	config.Seed = req.Seed

	r, err := renderer.NewRenderer(config, integrator.NewPathTracingIntegrator(integratorConfig), logger)
	if err != nil {
		return nil, err
	}

	img, stats, err := r.Render(ctx, preview.World, renderer.NewCamera(preview.Camera))
	if err != nil {
		return nil, err
	}

	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &RenderResult{
		Library:   preview.Name,
		Width:     req.Width,
		Height:    req.Height,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:      stats.TotalPixels,
			TotalSamples:     int64(stats.TotalSamples),
			AverageSamples:   stats.AverageSamples,
			MinSamples:       stats.MinSamples,
			MaxSamplesUsed:   stats.MaxSamplesUsed,
			DiscardedSamples: stats.DiscardedSamples,
			Tiles:            stats.Tiles,
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes events until the channel is closed or the client goes away
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}
			s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "console", Data: string(data)})

		case <-ctx.Done():
			return
		}
	}
}

// sendEvent queues an event unless the client has disconnected
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
