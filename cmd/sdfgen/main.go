// Command sdfgen renders a font's glyphs into a signed distance field atlas.
//
// Usage:
//
//	sdfgen -size 32 -chars latin1 -out atlas.png -meta atlas.json
//	sdfgen -font MyFont.ttf -chars "0123456789" -atlas 256x256 -out - > digits.png
//	sdfgen -shape ring -out ring.png -preview ring-preview.png
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/term"

	"github.com/gogpu/distfield"
	"github.com/gogpu/distfield/atlas"
	"github.com/gogpu/distfield/glyph"
	"github.com/gogpu/distfield/text"
)

func main() {
	log.SetFlags(0)
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("sdfgen: %v", err)
	}
}

type config struct {
	font    string
	size    float64
	padding int
	upscale int
	chars   string
	shape   string
	text    string
	atlas   string
	out     string
	meta    string
	preview string
	zoom    int
	verbose bool
}

func parseFlags(args []string) (*config, error) {
	var c config
	fs := flag.NewFlagSet("sdfgen", flag.ContinueOnError)
	fs.StringVar(&c.font, "font", "", "TrueType/OpenType font file (default: embedded Go Regular)")
	fs.Float64Var(&c.size, "size", 32, "glyph size in pixels per em")
	fs.IntVar(&c.padding, "padding", 4, "distance field margin in output pixels")
	fs.IntVar(&c.upscale, "upscale", 4, "rasterize at this multiple of -size and downsample")
	fs.StringVar(&c.chars, "chars", "ascii", "character preset (ascii, latin1) or literal characters")
	fs.StringVar(&c.text, "text", "", "also add every glyph used to shape this text")
	fs.StringVar(&c.shape, "shape", "", "render a test shape instead of a font (disc, ring, rrect)")
	fs.StringVar(&c.atlas, "atlas", "512x512", "atlas size WIDTHxHEIGHT")
	fs.StringVar(&c.out, "out", "atlas.png", "output PNG, - for standard output")
	fs.StringVar(&c.meta, "meta", "", "write glyph placement JSON to this file")
	fs.StringVar(&c.preview, "preview", "", "write a thresholded, magnified preview PNG to this file")
	fs.IntVar(&c.zoom, "zoom", 4, "preview magnification")
	fs.BoolVar(&c.verbose, "v", false, "log progress to standard error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.zoom < 1 {
		return nil, fmt.Errorf("invalid -zoom %d", c.zoom)
	}
	return &c, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	c, err := parseFlags(args)
	if err != nil {
		return err
	}
	if c.verbose {
		distfield.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer distfield.SetLogger(nil)
	}

	var img *image.Gray
	if c.shape != "" {
		img, err = renderShape(c.shape)
	} else {
		img, err = renderAtlas(ctx, c)
	}
	if err != nil {
		return err
	}

	if err := writePNG(c.out, img, stdout); err != nil {
		return err
	}
	if c.preview != "" {
		if err := imaging.Save(preview(img, c.zoom), c.preview); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}
	return nil
}

func renderAtlas(ctx context.Context, c *config) (*image.Gray, error) {
	data := goregular.TTF
	if c.font != "" {
		b, err := os.ReadFile(c.font)
		if err != nil {
			return nil, err
		}
		data = b
	}
	face, err := text.ParseFace(data)
	if err != nil {
		return nil, err
	}

	var w, h int
	if _, err := fmt.Sscanf(c.atlas, "%dx%d", &w, &h); err != nil {
		return nil, fmt.Errorf("invalid -atlas %q: want WIDTHxHEIGHT", c.atlas)
	}
	cfg := atlas.DefaultConfig()
	cfg.Width, cfg.Height = w, h
	at, err := atlas.New(cfg)
	if err != nil {
		return nil, err
	}

	b, err := glyph.NewBuilder(face, c.size, at,
		glyph.WithPadding(c.padding),
		glyph.WithUpscale(c.upscale),
	)
	if err != nil {
		return nil, err
	}

	charset, ok := text.Preset(c.chars)
	if !ok {
		charset = text.NewCharset(c.chars)
	}
	rep, err := b.AddRunes(ctx, charset)
	if err != nil {
		return nil, err
	}
	if c.text != "" {
		more, err := b.AddText(ctx, c.text)
		if err != nil {
			return nil, err
		}
		rep.Merge(more)
	}
	if c.verbose || len(rep.Skipped) > 0 {
		log.Printf("sdfgen: %s", summarize(rep))
	}

	if c.meta != "" {
		if err := writeMeta(c.meta, face, c.size, b); err != nil {
			return nil, err
		}
	}
	return at.Image(), nil
}

// summarize describes a build report in one line.
func summarize(rep glyph.Report) string {
	return fmt.Sprintf("%d glyphs placed, %d cached, %d skipped",
		rep.Placed, rep.Cached, len(rep.Skipped))
}

func renderShape(name string) (*image.Gray, error) {
	const size = 256
	var cov *distfield.Grid[float64]
	switch name {
	case "disc":
		cov = distfield.Disc(size, size, size/2, size/2, 80)
	case "ring":
		cov = distfield.Ring(size, size, size/2, size/2, 80, 24)
	case "rrect":
		cov = distfield.RoundedRect(size, size, size/2, size/2, 90, 60, 24)
	default:
		return nil, fmt.Errorf("unknown -shape %q", name)
	}
	field, err := distfield.DistanceField(cov)
	if err != nil {
		return nil, err
	}
	q := distfield.Quantize(field)
	return &image.Gray{Pix: q.Pix, Stride: q.W, Rect: image.Rect(0, 0, q.W, q.H)}, nil
}

func writePNG(path string, img image.Image, stdout io.Writer) error {
	if path != "-" {
		return imaging.Save(img, path)
	}
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return errors.New("refusing to write PNG data to a terminal")
	}
	return imaging.Encode(stdout, img, imaging.PNG)
}

// preview magnifies img bilinearly and thresholds the field at the edge
// value, which is how a shader would draw it.
func preview(img image.Image, zoom int) *image.NRGBA {
	b := img.Bounds()
	big := imaging.Resize(img, b.Dx()*zoom, b.Dy()*zoom, imaging.Linear)
	return imaging.AdjustFunc(big, func(c color.NRGBA) color.NRGBA {
		v := uint8(0)
		if c.R >= 128 {
			v = 255
		}
		return color.NRGBA{R: v, G: v, B: v, A: 255}
	})
}

type metaGlyph struct {
	GID      text.GlyphID `json:"gid"`
	X        int          `json:"x"`
	Y        int          `json:"y"`
	W        int          `json:"w"`
	H        int          `json:"h"`
	BearingX float64      `json:"bearingX"`
	BearingY float64      `json:"bearingY"`
	Advance  float64      `json:"advance"`
}

type meta struct {
	Font       string            `json:"font"`
	Size       float64           `json:"size"`
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	LineHeight float64           `json:"lineHeight"`
	Ascent     float64           `json:"ascent"`
	Descent    float64           `json:"descent"`
	Glyphs     []metaGlyph       `json:"glyphs"`
	Runes      map[string]uint16 `json:"runes"`
}

func writeMeta(path string, face *text.Face, size float64, b *glyph.Builder) error {
	lm, err := face.LineMetrics(size)
	if err != nil {
		return err
	}
	m := meta{
		Font:       face.Name(),
		Size:       size,
		Width:      b.Atlas().Width(),
		Height:     b.Atlas().Height(),
		LineHeight: lm.LineHeight,
		Ascent:     lm.Ascent,
		Descent:    lm.Descent,
		Runes:      make(map[string]uint16),
	}
	for _, e := range b.Entries() {
		m.Glyphs = append(m.Glyphs, metaGlyph{
			GID: e.GID, X: e.Region.X, Y: e.Region.Y, W: e.Region.W, H: e.Region.H,
			BearingX: e.Metrics.BearingX, BearingY: e.Metrics.BearingY, Advance: e.Metrics.Advance,
		})
	}
	for r, gid := range b.RuneMap() {
		m.Runes[string(r)] = uint16(gid)
	}

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
