// Package imagediff implements the perceptual image differ (spec.md §4.5):
// decode both sides to 8-bit RGBA, compare pixels in OkLab+alpha space, and
// render a diff image highlighting the pixels that differ.
package imagediff

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"github.com/semdiff/semdiff/internal/pkg/differ"
	"github.com/semdiff/semdiff/internal/pkg/tree"
)

// Config mirrors spec.md §6's image_max_distance / image_max_diff_ratio.
type Config struct {
	MaxDistance  float64
	MaxDiffRatio float64
}

// Calculator is the image differ's Calculator.
type Calculator struct {
	Config Config
}

var _ differ.Calculator = Calculator{}

func acceptsMIME(m string) bool {
	switch m {
	case "image/png", "image/bmp", "image/gif", "image/jpeg", "image/webp", "image/avif":
		return true
	default:
		return false
	}
}

// decode dispatches on MIME rather than content-sniffing: the tree layer
// already resolved MIME, and forcing it here keeps a mislabeled file from
// silently decoding as the wrong format. image/avif has no decoder anywhere
// in the example pack, so it always falls through to the error return,
// which callers turn into Unsupported (falling back to the binary differ,
// exactly spec.md §4.5's "any decode failure" contract).
func decode(m string, data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	switch m {
	case "image/png":
		return png.Decode(r)
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/gif":
		return gif.Decode(r)
	case "image/bmp":
		return bmp.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	default:
		return nil, differ.ErrUnsupported
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

func (c Calculator) Diff(name string, expected, actual tree.Leaf) (differ.Diff, error) {
	if !acceptsMIME(expected.MIME()) || !acceptsMIME(actual.MIME()) {
		return nil, differ.ErrUnsupported
	}
	eb, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	ab, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	eImg, err := decode(expected.MIME(), eb)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	aImg, err := decode(actual.MIME(), ab)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	return compare(toRGBA(eImg), toRGBA(aImg), c.Config), nil
}

func (c Calculator) Added(name string, actual tree.Leaf) (differ.Diff, error) {
	if !acceptsMIME(actual.MIME()) {
		return nil, differ.ErrUnsupported
	}
	ab, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	aImg, err := decode(actual.MIME(), ab)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	rgba := toRGBA(aImg)
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	return compare(empty, rgba, c.Config), nil
}

func (c Calculator) Deleted(name string, expected tree.Leaf) (differ.Diff, error) {
	if !acceptsMIME(expected.MIME()) {
		return nil, differ.ErrUnsupported
	}
	eb, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	eImg, err := decode(expected.MIME(), eb)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	rgba := toRGBA(eImg)
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	return compare(rgba, empty, c.Config), nil
}

// Diff is the image differ's Diff value.
type Diff struct {
	equal                   bool
	diffPixels, totalPixels int
	diffRatio               float64
	expectedW, expectedH    int
	actualW, actualH        int
	diffImage               *image.RGBA
}

func (d *Diff) Tag() string            { return "image" }
func (d *Diff) Equal() bool            { return d.equal }
func (d *Diff) DiffRatio() float64     { return d.diffRatio }
func (d *Diff) DiffImage() image.Image { return d.diffImage }
func (d *Diff) DiffPixels() int        { return d.diffPixels }
func (d *Diff) TotalPixels() int       { return d.totalPixels }
func (d *Diff) ExpectedSize() (w, h int) { return d.expectedW, d.expectedH }
func (d *Diff) ActualSize() (w, h int)   { return d.actualW, d.actualH }

func compare(e, a *image.RGBA, cfg Config) *Diff {
	ew, eh := e.Bounds().Dx(), e.Bounds().Dy()
	aw, ah := a.Bounds().Dx(), a.Bounds().Dy()

	maxW, maxH := max(ew, aw), max(eh, ah)
	overlapW, overlapH := min(ew, aw), min(eh, ah)

	diffImg := image.NewRGBA(image.Rect(0, 0, maxW, maxH))
	opaqueWhite := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	transparent := color.RGBA{}

	diffPixels := 0
	for y := 0; y < maxH; y++ {
		for x := 0; x < maxW; x++ {
			var differs bool
			if x < overlapW && y < overlapH {
				ec := e.RGBAAt(e.Bounds().Min.X+x, e.Bounds().Min.Y+y)
				ac := a.RGBAAt(a.Bounds().Min.X+x, a.Bounds().Min.Y+y)
				differs = pixelDistance(ec.R, ec.G, ec.B, ec.A, ac.R, ac.G, ac.B, ac.A) > cfg.MaxDistance
			} else {
				differs = true
			}
			if differs {
				diffPixels++
				diffImg.Set(x, y, opaqueWhite)
			} else {
				diffImg.Set(x, y, transparent)
			}
		}
	}

	total := maxW * maxH
	ratio := 0.0
	equal := true
	if total > 0 {
		ratio = float64(diffPixels) / float64(total)
		equal = ratio <= cfg.MaxDiffRatio
	}

	return &Diff{
		equal:        equal,
		diffPixels:   diffPixels,
		totalPixels:  total,
		diffRatio:    ratio,
		expectedW:    ew,
		expectedH:    eh,
		actualW:      aw,
		actualH:      ah,
		diffImage:    diffImg,
	}
}
