package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/dealerhub/invsync/internal/domain"
)

// allowedExtensions is the fetcher allow-list: the feed archive or data file,
// plus the image formats the media resolver probes.
var allowedExtensions = map[string]bool{
	".zip":  true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

func NewFetcher(limiter *rate.Limiter) *Fetcher {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(time.Second), 2)
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
		limiter: limiter,
	}
}

// Fetch downloads rawURL into a fresh scratch directory, keeping the remote
// base name so archive siblings can be derived from it. The extension check
// runs before any network or disk I/O.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrIncompatibleFileType, rawURL)
	}

	ext := strings.ToLower(filepath.Ext(u.Path))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", domain.ErrIncompatibleFileType, ext)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status code %d", rawURL, resp.StatusCode)
	}

	dir, err := os.MkdirTemp("", "invsync-")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	localPath := filepath.Join(dir, filepath.Base(u.Path))
	out, err := os.Create(localPath)
	if err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	written, err := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		// Do not leave a partial download behind.
		os.RemoveAll(dir)
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	log.Debug().Str("url", rawURL).Str("path", localPath).Int64("bytes", written).Msg("feed fetched")
	return localPath, nil
}
