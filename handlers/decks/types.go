package decks

import (
	"deckbuilder/autosave"
	"deckbuilder/composer"
	"deckbuilder/models"
	"deckbuilder/render"
	"deckbuilder/storage"
)

// Constants for error messages
const (
	ErrDeckNotFound        = "Deck not found"
	ErrLastDeck            = "You cannot delete your last deck"
	ErrInvalidIndex        = "Slot index must be an integer"
	ErrInvalidFormat       = "Unknown export format"
	ErrSpellNotFound       = "Spell not found"
	ErrDeckFull            = "The deck already holds 64 spells"
	ErrTooManySpells       = "A deck holds at most 64 spells"
	ErrCommentsDisabled    = "Comments are disabled on this deck"
	ErrServiceClosing      = "Server is shutting down"
	ErrFailedToGetDecks    = "Failed to get decks"
	ErrFailedToCreateDeck  = "Failed to create deck"
	ErrFailedToUpdateDeck  = "Failed to update deck"
	ErrFailedToDeleteDeck  = "Failed to delete deck"
	ErrFailedToCompose     = "Failed to update the deck spells"
	ErrFailedToSave        = "Failed to save the deck"
	ErrFailedToExport      = "Failed to export the deck"
	ErrFailedToRender      = "Failed to render the deck image"
	ErrFailedToUpload      = "Failed to upload the deck image"
	ErrFailedToImport      = "Failed to read the imported deck"
	ErrFailedToGetComments = "Failed to get comments"
	ErrFailedToPostComment = "Failed to post comment"
	ErrImageStoreDisabled  = "Image upload is not configured"
	DeckDeletedMessage     = "Deck deleted"
	DeckSavedMessage       = "Deck saved"
)

// Handler serves the deck routes
type Handler struct {
	sessions *autosave.Manager
	renderer *render.Renderer
	images   storage.ImageStore
}

// NewHandler wires the deck routes. images may be nil when uploads are disabled.
func NewHandler(sessions *autosave.Manager, renderer *render.Renderer, images storage.ImageStore) *Handler {
	return &Handler{sessions: sessions, renderer: renderer, images: images}
}

// DeckRequest is the body of deck creation and full metadata updates
type DeckRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	School        string  `json:"school" binding:"required"`
	Level         int     `json:"level" binding:"required"`
	WeavingSchool *string `json:"weaving_school"`
	Description   *string `json:"description"`
	IsPve         bool    `json:"is_pve"`
	IsPublic      bool    `json:"is_public"`
	CanComment    bool    `json:"can_comment"`
}

// DeckPatchRequest updates only the fields present
type DeckPatchRequest struct {
	Name          *string `json:"name"`
	School        *string `json:"school"`
	Level         *int    `json:"level"`
	WeavingSchool *string `json:"weaving_school"`
	ClearWeaving  bool    `json:"clear_weaving_school"`
	Description   *string `json:"description"`
	IsPve         *bool   `json:"is_pve"`
	IsPublic      *bool   `json:"is_public"`
	CanComment    *bool   `json:"can_comment"`
}

// PublicDecksResponse is one page of public decks
type PublicDecksResponse struct {
	Decks []models.Deck `json:"decks"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type AddSpellRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
}

type BulkAddRequest struct {
	Names []string `json:"names" binding:"required,min=1"`
}

type SpellRequest struct {
	Name string `json:"name" binding:"required"`
}

type BulkRemoveRequest struct {
	Indices []int `json:"indices" binding:"required"`
}

type BulkReplaceRequest struct {
	Indices []int  `json:"indices" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type MoveRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

type SortRequest struct {
	Key       string `json:"key" binding:"required"`
	Direction string `json:"direction"`
}

// SetSpellsRequest replaces the whole sequence
type SetSpellsRequest struct {
	Names []string `json:"names"`
}

// CompositionResponse is returned by every composition operation
type CompositionResponse struct {
	DeckID  string            `json:"deck_id"`
	Version uint64            `json:"version"`
	Dirty   bool              `json:"dirty"`
	Result  composer.Result   `json:"result"`
	Spells  []models.SpellRef `json:"spells"`
}

// MatchResponse lists the slots matching a filter
type MatchResponse struct {
	DeckID  string `json:"deck_id"`
	Indices []int  `json:"indices"`
}

// BreakdownResponse adds the deck's own school shares to the breakdown
type BreakdownResponse struct {
	composer.Breakdown
	SchoolShare  float64  `json:"school_share"`
	WeavingShare *float64 `json:"weaving_share"`
}

// ImageUploadResponse is returned when the rendered image was uploaded
type ImageUploadResponse struct {
	URL string `json:"url"`
}

type CommentRequest struct {
	Body string `json:"body" binding:"required,max=1000"`
}
