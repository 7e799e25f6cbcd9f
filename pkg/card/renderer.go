// renderer.go — Card composition on a raster drawing context.
//
// Rendering follows a layered approach: background fill, icon blit,
// headline block, banner bar, banner lines. Fonts come from the injected
// provider (memoized); the icon is fetched fresh on every render.
package card

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/kcole93/seo-card-generator/pkg/encode"
	"github.com/kcole93/seo-card-generator/pkg/fontcache"
)

// Ink colors. The headline draws in white over the background; the banner
// draws in near-black over the white bottom bar.
const (
	textColor   = "#FFFFFF"
	barColor    = "#FFFFFF"
	bannerColor = "#2B2B2B"
)

const maxIconBytes = 10 << 20

// Renderer composes share cards. Safe for concurrent use: per-render
// state lives on the stack and the font cache handles its own locking.
type Renderer struct {
	fonts   *fontcache.Provider
	client  *retryablehttp.Client
	encoder encode.Encoder
	log     *slog.Logger
}

// NewRenderer creates a Renderer. client may be nil, in which case a
// default retrying client with a 15s timeout is used.
func NewRenderer(fonts *fontcache.Provider, client *retryablehttp.Client, log *slog.Logger) *Renderer {
	if client == nil {
		client = retryablehttp.NewClient()
		client.RetryMax = 2
		client.HTTPClient.Timeout = 15 * time.Second
		client.Logger = nil
	}
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{fonts: fonts, client: client, encoder: encode.PNG{}, log: log}
}

// Render runs the full pipeline and returns the encoded PNG bytes. Any
// stage failure aborts the render with a typed error; no partial image is
// ever returned.
func (r *Renderer) Render(ctx context.Context, req *RenderRequest) ([]byte, error) {
	img, err := r.RenderImage(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.encoder.Encode(&buf, img); err != nil {
		return nil, &RenderError{Err: fmt.Errorf("encode: %w", err)}
	}
	return buf.Bytes(), nil
}

// RenderImage runs the pipeline up to the finished raster buffer, leaving
// encoding to the caller.
func (r *Renderer) RenderImage(ctx context.Context, req *RenderRequest) (image.Image, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	asset, err := r.fonts.Resolve(ctx, req.FontFamily)
	if err != nil {
		return nil, err
	}

	icon, err := r.fetchIcon(ctx, req.IconURL)
	if err != nil {
		return nil, err
	}

	headlineFace := newFace(asset.Bold, HeadlineSize)
	bannerFace := newFace(asset.Regular, BannerSize)
	defer headlineFace.Close()
	defer bannerFace.Close()

	dc := gg.NewContext(CanvasWidth, CanvasHeight)

	measure := func(face font.Face) MeasureFunc {
		return func(s string) float64 {
			dc.SetFontFace(face)
			w, _ := dc.MeasureString(s)
			return w
		}
	}
	plan := PlanLayout(req, measure(headlineFace), measure(bannerFace))

	// Background.
	dc.SetHexColor(req.BgColor)
	dc.Clear()

	// Icon, resampled into its fixed box.
	dc.DrawImage(scaleIcon(icon), plan.IconX, plan.IconY)

	// Headline block.
	dc.SetFontFace(headlineFace)
	dc.SetHexColor(textColor)
	for i, line := range plan.HeadlineLines {
		y := HeadlineTop + float64(i)*HeadlineLineHeight
		dc.DrawStringAnchored(line, plan.HeadlineX, y, plan.HeadlineAnchor, 0.5)
	}

	// Banner bar, anchored to the bottom edge.
	dc.SetHexColor(barColor)
	dc.DrawRectangle(0, plan.BarTop, CanvasWidth, plan.BarHeight)
	dc.Fill()

	dc.SetFontFace(bannerFace)
	dc.SetHexColor(bannerColor)
	for i, line := range plan.BannerLines {
		y := plan.BarTop + BannerInset + float64(i)*plan.Banner.LineHeight
		dc.DrawStringAnchored(line, plan.BannerX, y, plan.BannerAnchor, 0.5)
	}

	r.log.Debug("card rendered",
		"family", req.FontFamily,
		"dir", string(req.Direction()),
		"headline_lines", len(plan.HeadlineLines),
		"banner_lines", len(plan.BannerLines),
		"elapsed", time.Since(start))

	return dc.Image(), nil
}

// fetchIcon downloads and decodes the icon image. Icons are fetched fresh
// on every render; only fonts are memoized.
func (r *Renderer) fetchIcon(ctx context.Context, rawURL string) (image.Image, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &IconLoadError{URL: rawURL, Err: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &IconLoadError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &IconLoadError{URL: rawURL, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return nil, &IconLoadError{URL: rawURL, Err: fmt.Errorf("decode: %w", err)}
	}
	return img, nil
}

// scaleIcon resamples the icon into the fixed IconSize box.
func scaleIcon(src image.Image) image.Image {
	b := src.Bounds()
	if b.Dx() == IconSize && b.Dy() == IconSize {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// newFace creates a face at size. Measurement and drawing must share the
// same face settings or wrapped widths drift.
func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}
