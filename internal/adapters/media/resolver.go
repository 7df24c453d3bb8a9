package media

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"
	"unicode"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/dealerhub/invsync/internal/domain"
)

// Resolver derives remote image URLs for feed images and attaches them to
// catalog products. The remote store shards images into one-character folders
// by the first character of the filename; digit-leading names share a literal
// "#" folder, URL-encoded as %23.
type Resolver struct {
	repo    domain.ProductRepo
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewResolver(repo domain.ProductRepo, baseURL string, limiter *rate.Limiter) *Resolver {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(time.Second), 2)
	}
	return &Resolver{
		repo:    repo,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

// Shard returns the remote folder token for a normalized image filename.
func Shard(fileName string) string {
	runes := []rune(fileName)
	if len(runes) == 0 {
		return ""
	}
	if unicode.IsDigit(runes[0]) {
		return "%23"
	}
	return strings.ToUpper(string(runes[0]))
}

// RemoteURL builds {base}/{shard}/{filename} for a normalized filename.
func (r *Resolver) RemoteURL(fileName string) string {
	return fmt.Sprintf("%s/%s/%s", r.baseURL, Shard(fileName), fileName)
}

// ResolveAndAttach attaches the feed image to the product. Re-imports reuse
// the existing attachment and only refresh its metadata, so a product never
// accumulates duplicate assets across runs.
func (r *Resolver) ResolveAndAttach(ctx context.Context, productID uuid.UUID, imageFile, title string) (uuid.UUID, error) {
	name := domain.NormalizeImageFile(imageFile)
	if name == "" {
		return uuid.Nil, fmt.Errorf("empty image filename")
	}

	remote := r.RemoteURL(name)

	existing, err := r.repo.Images(ctx, productID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("load attachments: %w", err)
	}

	if len(existing) > 0 {
		asset := existing[0]
		asset.FileName = name
		asset.RemoteURL = remote
		asset.ExternallyHosted = true
		asset.Alt = title
		if err := r.repo.SaveImage(ctx, &asset); err != nil {
			return uuid.Nil, fmt.Errorf("refresh attachment: %w", err)
		}
		return asset.ID, nil
	}

	asset := domain.MediaAsset{
		ID:               uuid.New(),
		ProductID:        productID,
		FileName:         name,
		RemoteURL:        remote,
		ExternallyHosted: true,
		Alt:              title,
	}

	if w, h, err := r.probeDimensions(ctx, remote); err != nil {
		log.Debug().Err(err).Str("url", remote).Msg("image dimensions not obtainable")
	} else {
		asset.Width = w
		asset.Height = h
	}

	if err := r.repo.SaveImage(ctx, &asset); err != nil {
		return uuid.Nil, fmt.Errorf("create attachment: %w", err)
	}
	return asset.ID, nil
}

// probeDimensions reads just enough of the remote image to decode its header.
func (r *Resolver) probeDimensions(ctx context.Context, remoteURL string) (int, int, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return 0, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("status code %d", resp.StatusCode)
	}

	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
