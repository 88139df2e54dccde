package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"deckbuilder/models"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[url]++
	if url == "https://img/broken.png" {
		return nil, errors.New("404")
	}
	return imaging.New(40, 60, color.NRGBA{R: 0xff, A: 0xff}), nil
}

func tileCenter(index int) (int, int) {
	p := TileOrigin(index)
	return p.X + TileWidth/2, p.Y + TileHeight/2
}

func TestDeckImage(t *testing.T) {
	spells := []models.SpellRef{
		{Name: "Fire Cat", School: models.SchoolFire, PipCost: "1", ImageURL: "https://img/fire_cat.png"},
		{Name: "Frost Beetle", School: models.SchoolIce, PipCost: "1", ImageURL: "https://img/broken.png"},
		{Name: "Fire Cat", School: models.SchoolFire, PipCost: "1", ImageURL: "https://img/fire_cat.png"},
		{Name: "Feint", School: models.SchoolBalance, PipCost: "1"},
	}
	fetcher := &fakeFetcher{}
	img, err := NewRenderer(fetcher).DeckImage(context.Background(), spells, "https://decks.example.com/d/1")
	require.NoError(t, err)

	width, height := CanvasSize()
	assert.Equal(t, image.Rect(0, 0, width, height), img.Bounds())
	assert.Equal(t, 1, fetcher.calls["https://img/fire_cat.png"])

	x, y := tileCenter(0)
	r, g, _, _ := img.At(x, y).RGBA()
	assert.Greater(t, r>>8, uint32(0xf0))
	assert.Less(t, g>>8, uint32(0x10))

	x, y = tileCenter(1)
	assert.Equal(t, SchoolColor(models.SchoolIce), color.NRGBAModel.Convert(img.At(x, y)))

	x, y = tileCenter(3)
	assert.Equal(t, SchoolColor(models.SchoolBalance), color.NRGBAModel.Convert(img.At(x, y)))

	x, y = tileCenter(63)
	assert.Equal(t, emptySlotColor, color.NRGBAModel.Convert(img.At(x, y)))
}

func TestDeckPNGWithoutFetcher(t *testing.T) {
	data, err := NewRenderer(nil).DeckPNG(context.Background(), nil, "")
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	width, height := CanvasSize()
	assert.Equal(t, width, img.Bounds().Dx())
	assert.Equal(t, height, img.Bounds().Dy())
}

func TestDeckImageHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	spells := []models.SpellRef{{Name: "Fire Cat", School: models.SchoolFire, ImageURL: "https://img/fire_cat.png"}}
	_, err := NewRenderer(&fakeFetcher{}).DeckImage(ctx, spells, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQRImage(t *testing.T) {
	img, err := QRImage("https://decks.example.com/d/1", QRSize)
	require.NoError(t, err)
	assert.Equal(t, QRSize, img.Bounds().Dx())

	_, err = QRPNG("", QRSize)
	assert.Error(t, err)
}
