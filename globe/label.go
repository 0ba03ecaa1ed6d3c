package globe

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/unicode/norm"
)

// Label bitmap layout in pixels.
const (
	LabelWidth  = 256
	LabelHeight = 128

	titleSize     = 24
	titleBaseline = 30
	subtitleSize  = 18
	subBaseline   = 60
)

var (
	titleColor    = gg.Hex("#ffffff")
	subtitleColor = gg.Hex("#f0f0f0")
)

// Font sources are parsed once and shared read-only by every label.
var labelFonts = sync.OnceValues(func() (fonts [2]*text.FontSource, err error) {
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return fonts, fmt.Errorf("globe: load bold font: %w", err)
	}
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return fonts, fmt.Errorf("globe: load regular font: %w", err)
	}
	return [2]*text.FontSource{bold, regular}, nil
})

// RenderLabel rasterizes the two-line marker caption onto a transparent
// LabelWidth×LabelHeight bitmap, centred horizontally. Strings are
// NFC-normalized first so composed and decomposed input render alike.
func RenderLabel(title, subtitle string) (*image.RGBA, error) {
	fonts, err := labelFonts()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(LabelWidth, LabelHeight)
	defer dc.Close()
	dc.Clear()

	cx := float64(LabelWidth) / 2
	if title = norm.NFC.String(title); title != "" {
		dc.SetFont(fonts[0].Face(titleSize))
		dc.SetRGBA(titleColor.R, titleColor.G, titleColor.B, titleColor.A)
		dc.DrawStringAnchored(title, cx, titleBaseline, 0.5, 0)
	}
	if subtitle = norm.NFC.String(subtitle); subtitle != "" {
		dc.SetFont(fonts[1].Face(subtitleSize))
		dc.SetRGBA(subtitleColor.R, subtitleColor.G, subtitleColor.B, subtitleColor.A)
		dc.DrawStringAnchored(subtitle, cx, subBaseline, 0.5, 0)
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("globe: unexpected label image type %T", dc.Image())
	}
	return img, nil
}
