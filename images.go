package presskit

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxBannerWidth = 1280
	jpegQuality    = 80
)

// processBanner decodes an image, downscales it to maxBannerWidth if it is
// wider, and re-encodes it as JPEG.
func processBanner(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxBannerWidth {
		newH := h * maxBannerWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxBannerWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// emitBanners normalizes the JPEG banners referenced by routes: each is
// downscaled in place in the build output. Banner paths are not validated;
// a missing or non-JPEG file is left as whatever emitStatic copied.
func (b *Builder) emitBanners(routes []Route) error {
	seen := make(map[string]struct{})
	for _, rt := range routes {
		banner := rt.Doc.Banner
		if banner == "" {
			continue
		}
		if _, ok := seen[banner]; ok {
			continue
		}
		seen[banner] = struct{}{}

		rel, ok := bannerRel(banner)
		if !ok {
			continue
		}
		ext := strings.ToLower(filepath.Ext(rel))
		if ext != ".jpg" && ext != ".jpeg" {
			continue
		}

		src, err := os.Open(filepath.Join(b.cfg.StaticDir, filepath.FromSlash(rel)))
		if err != nil {
			continue // broken banner links surface at view time, not here
		}
		out, err := processBanner(src)
		src.Close()
		if err != nil {
			continue
		}
		dst := filepath.Join(b.cfg.OutputDir, "public", filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, out, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// bannerRel maps an authored banner path to its location under the static
// dir. Authored paths look like "/public/images/x.jpg" or "images/x.jpg".
func bannerRel(banner string) (string, bool) {
	p := strings.TrimPrefix(banner, "/public/")
	p = strings.TrimPrefix(p, "/")
	if p == "" || strings.Contains(p, "..") {
		return "", false
	}
	return p, true
}
