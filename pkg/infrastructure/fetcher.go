package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"cv-portfolio/internal/domain"
)

// Kind selects the timeout a fetch runs under.
type Kind int

const (
	KindImage Kind = iota
	KindPDF
)

func (k Kind) String() string {
	if k == KindPDF {
		return "pdf"
	}
	return "image"
}

// maxAttachmentBytes caps a single attachment read.
const maxAttachmentBytes = 32 << 20

var errEmptyAttachment = errors.New("attachment is empty")

// Fetcher reads attachment bytes from local media or a remote URL. It never
// returns an error: every failure is logged and reported as ok=false.
type Fetcher struct {
	client       *http.Client
	mediaRoot    string
	imageTimeout time.Duration
	pdfTimeout   time.Duration
}

func NewFetcher(mediaRoot string, imageTimeout, pdfTimeout time.Duration) *Fetcher {
	return &Fetcher{
		client:       &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		mediaRoot:    mediaRoot,
		imageTimeout: imageTimeout,
		pdfTimeout:   pdfTimeout,
	}
}

// Fetch returns the bytes behind r. A zero resource is not an error, just absent.
func (f *Fetcher) Fetch(ctx context.Context, r domain.Resource, kind Kind) ([]byte, bool) {
	if r.IsZero() {
		return nil, false
	}
	var (
		b   []byte
		err error
	)
	if r.IsRemote() {
		b, err = f.get(ctx, r.URL, kind)
	} else {
		b, err = f.readLocal(r.Path)
	}
	if err != nil {
		slog.WarnContext(ctx, "attachment fetch failed", "name", r.Name, "kind", kind.String(), "error", err)
		return nil, false
	}
	return b, true
}

func (f *Fetcher) timeout(kind Kind) time.Duration {
	if kind == KindPDF {
		return f.pdfTimeout
	}
	return f.imageTimeout
}

func (f *Fetcher) get(ctx context.Context, url string, kind Kind) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout(kind))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return readCapped(resp.Body)
}

func (f *Fetcher) readLocal(path string) ([]byte, error) {
	if f.mediaRoot != "" {
		root, err := filepath.Abs(f.mediaRoot)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
			return nil, fmt.Errorf("%s is outside the media root", path)
		}
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return readCapped(fh)
}

func readCapped(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxAttachmentBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxAttachmentBytes {
		return nil, fmt.Errorf("attachment larger than %d bytes", maxAttachmentBytes)
	}
	if len(b) == 0 {
		return nil, errEmptyAttachment
	}
	return b, nil
}
