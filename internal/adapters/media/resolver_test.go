package media

import (
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dealerhub/invsync/internal/domain"
)

type fakeRepo struct {
	assets map[uuid.UUID][]domain.MediaAsset
	saves  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{assets: make(map[uuid.UUID][]domain.MediaAsset)}
}

func (f *fakeRepo) ListBySKU(ctx context.Context, sku string) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeRepo) Save(ctx context.Context, p *domain.Product) error { return nil }

func (f *fakeRepo) Images(ctx context.Context, productID uuid.UUID) ([]domain.MediaAsset, error) {
	return f.assets[productID], nil
}

func (f *fakeRepo) SaveImage(ctx context.Context, img *domain.MediaAsset) error {
	f.saves++
	list := f.assets[img.ProductID]
	for i := range list {
		if list[i].ID == img.ID {
			list[i] = *img
			return nil
		}
	}
	f.assets[img.ProductID] = append(list, *img)
	return nil
}

func TestShard(t *testing.T) {
	cases := []struct{ in, want string }{
		{"7_small.jpg", "%23"},
		{"colt_45.jpg", "C"},
		{"abc123.jpg", "A"},
		{"Zebra.jpg", "Z"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Shard(c.in); got != c.want {
			t.Errorf("Shard(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRemoteURL(t *testing.T) {
	r := NewResolver(newFakeRepo(), "https://img.example.com/", rate.NewLimiter(rate.Inf, 1))
	if got := r.RemoteURL("colt_45.jpg"); got != "https://img.example.com/C/colt_45.jpg" {
		t.Errorf("RemoteURL = %q", got)
	}
	if got := r.RemoteURL("7_small.jpg"); got != "https://img.example.com/%23/7_small.jpg" {
		t.Errorf("RemoteURL = %q", got)
	}
}

func TestResolveAndAttachIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = png.Encode(w, image.NewRGBA(image.Rect(0, 0, 4, 2)))
	}))
	defer srv.Close()

	repo := newFakeRepo()
	r := NewResolver(repo, srv.URL, rate.NewLimiter(rate.Inf, 1))
	productID := uuid.New()

	firstID, err := r.ResolveAndAttach(context.Background(), productID, "abc123.JPG", "Widget")
	if err != nil {
		t.Fatalf("first attach: %v", err)
	}

	secondID, err := r.ResolveAndAttach(context.Background(), productID, "abc123.JPG", "Widget v2")
	if err != nil {
		t.Fatalf("second attach: %v", err)
	}

	if firstID != secondID {
		t.Errorf("re-import created a new asset: %s vs %s", firstID, secondID)
	}
	assets := repo.assets[productID]
	if len(assets) != 1 {
		t.Fatalf("assets = %d, want 1", len(assets))
	}

	a := assets[0]
	if !a.ExternallyHosted {
		t.Error("asset should be flagged externally hosted")
	}
	if a.FileName != "abc123.jpg" {
		t.Errorf("FileName = %q, want abc123.jpg", a.FileName)
	}
	if a.Alt != "Widget v2" {
		t.Errorf("Alt not refreshed on re-import: %q", a.Alt)
	}
	if a.Width != 4 || a.Height != 2 {
		t.Errorf("dimensions = %dx%d, want 4x2", a.Width, a.Height)
	}
	if repo.saves != 2 {
		t.Errorf("saves = %d, want 2 (create + metadata refresh)", repo.saves)
	}
}

func TestResolveAndAttachEmptyFilename(t *testing.T) {
	r := NewResolver(newFakeRepo(), "https://img.example.com", rate.NewLimiter(rate.Inf, 1))
	if _, err := r.ResolveAndAttach(context.Background(), uuid.New(), "  ", "x"); err == nil {
		t.Fatal("expected error for empty filename")
	}
}

func TestURLResolver(t *testing.T) {
	u := NewURLResolver("/media")

	remote := domain.MediaAsset{RemoteURL: "https://img.example.com/A/abc.jpg", ExternallyHosted: true}
	if got := u.URLFor(remote, 0); got != remote.RemoteURL {
		t.Errorf("URLFor external = %q", got)
	}
	if got := u.URLFor(remote, 300); got != remote.RemoteURL {
		t.Errorf("size variant of external asset must keep remote path, got %q", got)
	}

	local := domain.MediaAsset{ProductID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), FileName: "a.jpg"}
	if got := u.URLFor(local, 300); got != "/media/11111111-1111-1111-1111-111111111111/a.jpg?w=300" {
		t.Errorf("URLFor local = %q", got)
	}
}
