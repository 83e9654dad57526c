// Package assets acquires external images for embedding into a document.
//
// A reference is either a local filesystem path, used as-is, or an HTTP(S)
// URL, downloaded to a temporary file. Every temporary file created during
// one generation run is recorded on the run's Tracker and removed by a
// single Cleanup call at the end of the run.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DownloadTimeout is the hard ceiling on one asset download.
const DownloadTimeout = 30 * time.Second

// userAgent identifies the client on outbound requests.
const userAgent = "Mozilla/5.0 (mcp-pdf/0.1)"

// ErrDownload wraps any network or IO failure while fetching a remote asset.
var ErrDownload = errors.New("assets: download failed")

// IsURL reports whether the reference is a remote asset. Detection is
// purely syntactic.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Tracker acquires assets and owns the temporary files of one generation
// run. It is not safe for concurrent use; each run must own its own Tracker.
type Tracker struct {
	client *http.Client
	log    zerolog.Logger
	files  []string
}

// NewTracker creates a Tracker. A nil client gets a default with the
// standard download timeout.
func NewTracker(client *http.Client, log zerolog.Logger) *Tracker {
	if client == nil {
		client = &http.Client{Timeout: DownloadTimeout}
	}
	return &Tracker{client: client, log: log}
}

// Acquire resolves a reference to a local file path. Local paths pass
// through untouched; their existence is checked at embedding time, not here.
// URLs are downloaded to a fresh temporary file that is tracked for cleanup.
func (t *Tracker) Acquire(ctx context.Context, ref string) (string, error) {
	if !IsURL(ref) {
		return ref, nil
	}
	return t.download(ctx, ref)
}

// Track registers an externally created temporary file (e.g. a rendered
// diagram) for cleanup at the end of the run.
func (t *Tracker) Track(path string) {
	t.files = append(t.files, path)
}

// Cleanup removes every tracked file. Each removal is independently
// best-effort: a failure is logged and does not stop the rest. The list is
// drained so a second call is a no-op.
func (t *Tracker) Cleanup() {
	for _, f := range t.files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			t.log.Warn().Str("path", f).Err(err).Msg("failed to remove temporary asset")
			continue
		}
		t.log.Debug().Str("path", f).Msg("removed temporary asset")
	}
	t.files = nil
}

func (t *Tracker) download(ctx context.Context, rawURL string) (string, error) {
	t.log.Info().Str("url", rawURL).Msg("downloading image")

	dest := filepath.Join(os.TempDir(), "mcp-pdf-"+uuid.NewString()+extFromURL(rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: %s returned status %d", ErrDownload, rawURL, resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}

	t.Track(dest)
	t.log.Info().Str("url", rawURL).Str("path", dest).Msg("downloaded image")
	return dest, nil
}

// extFromURL infers a file extension from the URL path, defaulting to .png.
func extFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".png"
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return ".png"
}
