package media

import (
	"fmt"
	"strings"

	"github.com/dealerhub/invsync/internal/domain"
)

// URLResolver answers the platform's asset-URL lookups. Externally hosted
// assets always resolve to their stored remote path, including size-variant
// requests, so local media storage is never consulted for them.
type URLResolver struct {
	localBase string
}

func NewURLResolver(localBase string) URLResolver {
	return URLResolver{localBase: strings.TrimRight(localBase, "/")}
}

func (u URLResolver) URLFor(asset domain.MediaAsset, width int) string {
	if asset.ExternallyHosted {
		return asset.RemoteURL
	}
	base := fmt.Sprintf("%s/%s/%s", u.localBase, asset.ProductID, asset.FileName)
	if width > 0 {
		return fmt.Sprintf("%s?w=%d", base, width)
	}
	return base
}

var _ domain.MediaURLResolver = URLResolver{}
