package artwork

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/shared"
	"github.com/sourcegraph/conc/iter"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	maxImageBytes  = 20 << 20
	defaultWorkers = 4
)

// Extractor samples the dominant color of poster images.
type Extractor struct {
	httpClient   *http.Client
	allowedHosts []string
	workers      int
	logger       *log.Logger
}

// NewExtractor builds an extractor from cfg. A nil client gets one with cfg's timeout.
func NewExtractor(cfg shared.ArtworkConfig, client *http.Client, logger *log.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	if logger == nil {
		logger = log.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	hosts := make([]string, 0, len(cfg.AllowedHosts))
	for _, h := range cfg.AllowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts = append(hosts, h)
		}
	}

	return &Extractor{httpClient: client, allowedHosts: hosts, workers: workers, logger: logger}
}

// Allowed reports whether pixels from rawURL may be read back.
//
// Only http and https are allowed. A host matches an entry exactly or as a subdomain of it.
// With no entries every host is allowed.
func (e *Extractor) Allowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}
	if len(e.allowedHosts) == 0 {
		return true
	}

	host := strings.ToLower(u.Hostname())
	for _, allowed := range e.allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

// Extract returns the dominant color of the image at posterURL as "rgb(r, g, b)", or "" when it
// cannot be sampled.
func (e *Extractor) Extract(ctx context.Context, posterURL string) string {
	if posterURL == "" || posterURL == models.NoData {
		return ""
	}
	if !e.Allowed(posterURL) {
		e.logger.Debug("poster host not allowed", "url", posterURL)
		return ""
	}

	img, err := e.fetch(ctx, posterURL)
	if err != nil {
		e.logger.Debug("could not sample poster", "url", posterURL, "error", err)
		return ""
	}

	color, ok := Dominant(img)
	if !ok {
		return ""
	}
	return color
}

// ExtractAsync runs [Extractor.Extract] on its own goroutine. The channel receives exactly one
// value and is then closed.
func (e *Extractor) ExtractAsync(ctx context.Context, posterURL string) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)
		out <- e.Extract(ctx, posterURL)
	}()
	return out
}

// ExtractAll samples every URL with at most the configured number of concurrent downloads.
// Results are index-aligned with posterURLs.
func (e *Extractor) ExtractAll(ctx context.Context, posterURLs []string) []string {
	mapper := iter.Mapper[string, string]{MaxGoroutines: e.workers}
	return mapper.Map(posterURLs, func(u *string) string {
		return e.Extract(ctx, *u)
	})
}

func (e *Extractor) fetch(ctx context.Context, posterURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, posterURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed: %s", resp.Status)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	return img, nil
}

// Dominant scales img down to one pixel and formats it as "rgb(r, g, b)".
func Dominant(img image.Image) (string, bool) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return "", false
	}

	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	px := dst.RGBAAt(0, 0)
	return fmt.Sprintf("rgb(%d, %d, %d)", px.R, px.G, px.B), true
}
