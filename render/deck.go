// Package render draws a deck as an 8x8 card grid with a share QR code.
package render

import (
	"bytes"
	"context"
	"image"
	"image/color"

	"deckbuilder/composer"
	"deckbuilder/config"
	"deckbuilder/logger"
	"deckbuilder/models"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	TileWidth    = 120
	TileHeight   = 160
	TileGap      = 8
	Margin       = 32
	HeaderHeight = 220
	QRSize       = 200

	downloadConcurrency = 8
)

var (
	backgroundColor = color.NRGBA{R: 0x1b, G: 0x14, B: 0x26, A: 0xff}
	emptySlotColor  = color.NRGBA{R: 0x2e, G: 0x26, B: 0x3b, A: 0xff}

	schoolColors = map[models.School]color.NRGBA{
		models.SchoolFire:    {R: 0xd9, G: 0x4a, B: 0x1e, A: 0xff},
		models.SchoolIce:     {R: 0x6c, G: 0xb4, B: 0xe4, A: 0xff},
		models.SchoolStorm:   {R: 0x7a, G: 0x3f, B: 0xc8, A: 0xff},
		models.SchoolMyth:    {R: 0xe8, G: 0xc5, B: 0x2e, A: 0xff},
		models.SchoolLife:    {R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
		models.SchoolDeath:   {R: 0x5f, G: 0x5f, B: 0x5f, A: 0xff},
		models.SchoolBalance: {R: 0xc2, G: 0x8a, B: 0x4a, A: 0xff},
		models.SchoolAstral:  {R: 0x3a, G: 0x4f, B: 0xa8, A: 0xff},
		models.SchoolShadow:  {R: 0x22, G: 0x1c, B: 0x2a, A: 0xff},
	}
)

// CanvasSize is the size of every rendered deck image
func CanvasSize() (width, height int) {
	grid := config.DeckGridSize
	width = 2*Margin + grid*TileWidth + (grid-1)*TileGap
	height = 2*Margin + HeaderHeight + grid*TileHeight + (grid-1)*TileGap
	return width, height
}

// SchoolColor is the placeholder color of a school's tiles
func SchoolColor(s models.School) color.NRGBA {
	if c, ok := schoolColors[s]; ok {
		return c
	}
	return emptySlotColor
}

// TileOrigin returns the top-left corner of a slot's tile
func TileOrigin(index int) image.Point {
	row, col := composer.SlotPosition(index)
	return image.Pt(
		Margin+col*(TileWidth+TileGap),
		Margin+HeaderHeight+row*(TileHeight+TileGap),
	)
}

type Renderer struct {
	fetcher Fetcher
}

// NewRenderer renders with f; a nil fetcher draws placeholders only
func NewRenderer(f Fetcher) *Renderer {
	return &Renderer{fetcher: f}
}

// DeckImage draws the deck. Cards whose image cannot be fetched keep their school placeholder.
func (r *Renderer) DeckImage(ctx context.Context, spells []models.SpellRef, shareURL string) (image.Image, error) {
	images, err := r.fetchAll(ctx, spells)
	if err != nil {
		return nil, err
	}

	width, height := CanvasSize()
	canvas := imaging.New(width, height, backgroundColor)
	canvas = drawSchoolStrip(canvas, spells)

	if shareURL != "" {
		qr, err := QRImage(shareURL, QRSize)
		if err != nil {
			return nil, err
		}
		canvas = imaging.Paste(canvas, qr, image.Pt(width-Margin-QRSize, Margin))
	}

	for i := 0; i < config.DeckCapacity; i++ {
		var tile image.Image
		if i < len(spells) {
			if img, ok := images[spells[i].ImageURL]; ok {
				tile = imaging.Fill(img, TileWidth, TileHeight, imaging.Center, imaging.Lanczos)
			} else {
				tile = imaging.New(TileWidth, TileHeight, SchoolColor(spells[i].School))
			}
		} else {
			tile = imaging.New(TileWidth, TileHeight, emptySlotColor)
		}
		canvas = imaging.Paste(canvas, tile, TileOrigin(i))
	}
	return canvas, nil
}

// DeckPNG renders the deck and encodes it as PNG
func (r *Renderer) DeckPNG(ctx context.Context, spells []models.SpellRef, shareURL string) ([]byte, error) {
	img, err := r.DeckImage(ctx, spells, shareURL)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fetchAll downloads each distinct image once. Failed downloads are skipped.
func (r *Renderer) fetchAll(ctx context.Context, spells []models.SpellRef) (map[string]image.Image, error) {
	images := map[string]image.Image{}
	if r.fetcher == nil {
		return images, nil
	}

	urls := []string{}
	seen := map[string]struct{}{}
	for _, s := range spells {
		if s.ImageURL == "" {
			continue
		}
		if _, ok := seen[s.ImageURL]; !ok {
			seen[s.ImageURL] = struct{}{}
			urls = append(urls, s.ImageURL)
		}
	}

	results := make([]image.Image, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)
	for i, url := range urls {
		g.Go(func() error {
			img, err := r.fetcher.Fetch(gctx, url)
			if err != nil {
				logger.L().Debug("card image unavailable", zap.String("url", url), zap.Error(err))
				return nil
			}
			results[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, url := range urls {
		if results[i] != nil {
			images[url] = results[i]
		}
	}
	return images, nil
}

// drawSchoolStrip draws one bar per school proportional to its share of the deck
func drawSchoolStrip(canvas *image.NRGBA, spells []models.SpellRef) *image.NRGBA {
	if len(spells) == 0 {
		return canvas
	}
	width, _ := CanvasSize()
	stripWidth := width - 3*Margin - QRSize
	const stripHeight = 24
	y := Margin + HeaderHeight - 2*Margin - stripHeight

	breakdown := composer.New(spells).Breakdown()
	x := Margin
	for i, s := range breakdown.Schools {
		w := stripWidth * s.Count / breakdown.Total
		if i == len(breakdown.Schools)-1 {
			w = Margin + stripWidth - x
		}
		if w <= 0 {
			continue
		}
		bar := imaging.New(w, stripHeight, SchoolColor(s.School))
		canvas = imaging.Paste(canvas, bar, image.Pt(x, y))
		x += w
	}
	return canvas
}
