package decks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"deckbuilder/composer"
	"deckbuilder/config"
	"deckbuilder/export"
	"deckbuilder/logger"
	"deckbuilder/models"
	"deckbuilder/render"
	"deckbuilder/utils/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxImportBytes  = 1 << 20
	renderTimeout   = 30 * time.Second
)

// GetBreakdown returns the deck statistics
// @Summary Deck breakdown
// @Tags Decks
// @Produce json
// @Param id path string true "Deck ID"
// @Success 200 {object} BreakdownResponse
// @Failure 404,500 {object} map[string]string
// @Router /decks/{id}/breakdown [get]
func (h *Handler) GetBreakdown(c *gin.Context) {
	deck, ok := h.visibleDeck(c)
	if !ok {
		return
	}
	var b composer.Breakdown
	if _, ok := h.view(c, deck.ID, func(cmp *composer.Composer) { b = cmp.Breakdown() }); !ok {
		return
	}
	c.JSON(http.StatusOK, newBreakdownResponse(deck, b))
}

func newBreakdownResponse(deck *models.Deck, b composer.Breakdown) BreakdownResponse {
	share := func(school models.School) float64 {
		for _, s := range b.Schools {
			if s.School == school {
				return s.Percent
			}
		}
		return 0
	}
	resp := BreakdownResponse{Breakdown: b, SchoolShare: share(deck.School)}
	if deck.WeavingSchool != nil {
		w := share(*deck.WeavingSchool)
		resp.WeavingShare = &w
	}
	return resp
}

// GetGrid returns the 64 slots of the deck with their row and column
// @Summary Deck grid
// @Tags Decks
// @Produce json
// @Param id path string true "Deck ID"
// @Success 200 {array} composer.Slot
// @Failure 404,500 {object} map[string]string
// @Router /decks/{id}/grid [get]
func (h *Handler) GetGrid(c *gin.Context) {
	deck, ok := h.visibleDeck(c)
	if !ok {
		return
	}
	var grid []composer.Slot
	if _, ok := h.view(c, deck.ID, func(cmp *composer.Composer) { grid = cmp.Grid() }); !ok {
		return
	}
	c.JSON(http.StatusOK, grid)
}

// ExportDeck downloads the deck as a text list or a spreadsheet
// @Summary Export deck
// @Tags Decks
// @Produce plain
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Deck ID"
// @Param format query string false "txt or xlsx" default(txt)
// @Success 200 {file} file
// @Failure 400,404,500 {object} map[string]string
// @Router /decks/{id}/export [get]
func (h *Handler) ExportDeck(c *gin.Context) {
	deck, ok := h.visibleDeck(c)
	if !ok {
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", "txt"))
	if format != "txt" && format != "xlsx" {
		response.Error(c, http.StatusBadRequest, ErrInvalidFormat)
		return
	}
	snap, ok := h.view(c, deck.ID, func(*composer.Composer) {})
	if !ok {
		return
	}

	filename := exportFilename(deck.Name, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if format == "txt" {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.Text(deck.Name, snap.Spells)))
		return
	}

	data, err := export.WorkbookBytes(deck, snap.Spells)
	if err != nil {
		c.Writer.Header().Del("Content-Disposition")
		logger.L().Error("xlsx export failed", zap.String("deck_id", deck.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToExport)
		return
	}
	c.Data(http.StatusOK, xlsxContentType, data)
}

func exportFilename(name, ext string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	if clean == "" {
		clean = "deck"
	}
	return clean + "." + ext
}

// shareURL is the public page of a deck encoded in its QR code
func shareURL(deckID string) string {
	return strings.TrimRight(config.PublicDeckUrl, "/") + "/" + deckID
}

// GetDeckImage renders the deck grid as PNG. With upload=true the image is stored and its URL returned.
// @Summary Deck image
// @Tags Decks
// @Produce png
// @Produce json
// @Param id path string true "Deck ID"
// @Param upload query bool false "Upload to the image store and return the URL"
// @Success 200 {file} file
// @Failure 404,500,503 {object} map[string]string
// @Router /decks/{id}/image [get]
func (h *Handler) GetDeckImage(c *gin.Context) {
	deck, ok := h.visibleDeck(c)
	if !ok {
		return
	}
	upload := c.Query("upload") == "true"
	if upload && h.images == nil {
		response.Error(c, http.StatusServiceUnavailable, ErrImageStoreDisabled)
		return
	}
	snap, ok := h.view(c, deck.ID, func(*composer.Composer) {})
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), renderTimeout)
	defer cancel()
	png, err := h.renderer.DeckPNG(ctx, snap.Spells, shareURL(deck.ID))
	if err != nil {
		logger.L().Error("deck render failed", zap.String("deck_id", deck.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToRender)
		return
	}

	if !upload {
		c.Data(http.StatusOK, "image/png", png)
		return
	}
	key := fmt.Sprintf("decks/%s/%d.png", deck.ID, time.Now().Unix())
	url, err := h.images.Upload(ctx, key, "image/png", png)
	if err != nil {
		logger.L().Error("deck image upload failed", zap.String("deck_id", deck.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToUpload)
		return
	}
	c.JSON(http.StatusOK, ImageUploadResponse{URL: url})
}

// GetDeckQR returns the QR code of the deck's share link
// @Summary Deck share QR code
// @Tags Decks
// @Produce png
// @Param id path string true "Deck ID"
// @Success 200 {file} file
// @Failure 404,500 {object} map[string]string
// @Router /decks/{id}/qr [get]
func (h *Handler) GetDeckQR(c *gin.Context) {
	deck, ok := h.visibleDeck(c)
	if !ok {
		return
	}
	png, err := render.QRPNG(shareURL(deck.ID), render.QRSize)
	if err != nil {
		logger.L().Error("qr generation failed", zap.String("deck_id", deck.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToRender)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ImportSpells replaces the deck with a text list or spreadsheet produced by the export
// @Summary Import deck spells
// @Tags Composition
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Deck ID"
// @Param file formData file true "Deck list (.txt or .xlsx)"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/import [post]
// @Security Bearer
func (h *Handler) ImportSpells(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to get file: "+err.Error())
		return
	}
	if file.Size > maxImportBytes {
		response.Error(c, http.StatusBadRequest, "File is too large")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrFailedToImport)
		return
	}
	defer opened.Close()
	data, err := io.ReadAll(io.LimitReader(opened, maxImportBytes))
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrFailedToImport)
		return
	}

	var names []string
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".xlsx":
		names, err = export.ReadWorkbook(bytes.NewReader(data))
	case ".txt", "":
		names, err = export.ParseText(bytes.NewReader(data))
	default:
		response.Error(c, http.StatusBadRequest, ErrInvalidFormat)
		return
	}
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrFailedToImport+": "+err.Error())
		return
	}

	h.resetSpells(c, deck, "import", names)
}
