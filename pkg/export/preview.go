// This file implements the preview server: it regenerates the strip per
// request so slide and width can be flipped from the browser, with no-cache
// headers so edits show up on refresh.

package export

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/kraitsura/cardreel/pkg/carousel"
	"github.com/kraitsura/cardreel/pkg/model"
)

// PreviewServer serves the deck's SVG strip locally for previewing.
type PreviewServer struct {
	cards  []model.Card
	opts   Options
	port   int
	server *http.Server
}

// NewPreviewServer creates a preview server for the given deck.
func NewPreviewServer(cards []model.Card, opts Options, port int) *PreviewServer {
	return &PreviewServer{
		cards: cards,
		opts:  opts,
		port:  port,
	}
}

// Start starts the preview server and blocks until stopped.
func (p *PreviewServer) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/", noCacheMiddleware(http.HandlerFunc(p.pageHandler)))
	mux.Handle("/strip.svg", noCacheMiddleware(http.HandlerFunc(p.stripHandler)))

	p.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", p.port),
		Handler: mux,
	}

	// Open browser after short delay
	go func() {
		time.Sleep(500 * time.Millisecond)
		url := p.URL()
		if err := openInBrowser(url); err != nil {
			fmt.Printf("Could not open browser: %v\n", err)
			fmt.Printf("Open %s in your browser\n", url)
		}
	}()

	fmt.Printf("\nPreview server running at %s\n", p.URL())
	fmt.Printf("Previewing %d cards\n", len(p.cards))
	fmt.Println("\nPress Ctrl+C to stop")

	return p.server.ListenAndServe()
}

// StartWithGracefulShutdown starts the server with signal handling for clean shutdown.
func (p *PreviewServer) StartWithGracefulShutdown() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := p.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-stop:
		fmt.Println("\nShutting down preview server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return p.server.Shutdown(ctx)
	case err := <-errChan:
		return err
	}
}

// Stop gracefully stops the preview server.
func (p *PreviewServer) Stop() error {
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

// Port returns the port the server is running on.
func (p *PreviewServer) Port() int {
	return p.port
}

// URL returns the full URL of the preview server.
func (p *PreviewServer) URL() string {
	return fmt.Sprintf("http://localhost:%d", p.port)
}

// pageHandler serves a minimal page embedding the strip with prev/next links.
func (p *PreviewServer) pageHandler(w http.ResponseWriter, r *http.Request) {
	opts := p.requestOptions(r)
	count := carousel.SlideCount(len(p.cards), opts.PerView)
	prev := (opts.Slide - 1 + count) % count
	next := (opts.Slide + 1) % count

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!doctype html>
<title>cardreel preview</title>
<body style="background:#1E1F29;text-align:center;font-family:sans-serif">
<p style="color:#F8F8F2">slide %d / %d &middot; <a style="color:#BD93F9" href="/?slide=%d">prev</a> &middot; <a style="color:#BD93F9" href="/?slide=%d">next</a></p>
<img src="/strip.svg?slide=%d" alt="card strip">
</body>
`, opts.Slide+1, count, prev, next, opts.Slide)
}

// stripHandler renders the SVG for the requested slide.
func (p *PreviewServer) stripHandler(w http.ResponseWriter, r *http.Request) {
	opts := p.requestOptions(r)
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := WriteSVG(w, p.cards, opts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// requestOptions overlays slide/width query parameters on the base options.
func (p *PreviewServer) requestOptions(r *http.Request) Options {
	opts := p.opts
	if opts.Width <= 0 {
		opts.Width = 960
	}
	if opts.PerView <= 0 {
		opts.PerView = carousel.ItemsPerView(opts.Width, carousel.DefaultTiers())
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("width")); err == nil && v > 0 {
		opts.Width = v
	}
	count := carousel.SlideCount(len(p.cards), opts.PerView)
	if v, err := strconv.Atoi(r.URL.Query().Get("slide")); err == nil && v >= 0 && v < count {
		opts.Slide = v
	}
	return opts
}

// noCacheMiddleware adds headers to prevent browser caching.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}

// PreviewPortRange defines the range of ports to try.
const (
	PreviewPortRangeStart = 9000
	PreviewPortRangeEnd   = 9100
)

// StartPreview starts a preview server with auto port selection.
func StartPreview(cards []model.Card, opts Options) error {
	port, err := FindAvailablePort(PreviewPortRangeStart, PreviewPortRangeEnd)
	if err != nil {
		return fmt.Errorf("could not find available port: %w", err)
	}
	return NewPreviewServer(cards, opts, port).StartWithGracefulShutdown()
}

func openInBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
