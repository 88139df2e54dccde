package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"deckbuilder/config"
	"deckbuilder/database"
	"deckbuilder/metrics"
	"deckbuilder/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeckInput holds the editable metadata of a deck
type DeckInput struct {
	Name          string
	School        string
	Level         int
	WeavingSchool *string
	Description   *string
	IsPve         bool
	IsPublic      bool
	CanComment    bool
}

// DeckPatch holds a partial metadata update; nil fields are left unchanged
type DeckPatch struct {
	Name          *string
	School        *string
	Level         *int
	WeavingSchool *string
	ClearWeaving  bool
	Description   *string
	IsPve         *bool
	IsPublic      *bool
	CanComment    *bool
}

// PublicDeckFilter narrows the public deck listing
type PublicDeckFilter struct {
	School string
	IsPve  *bool
	Page   int
	Limit  int
}

// CanDeleteDeck reports whether a user owning deckCount decks may delete one of them
func CanDeleteDeck(deckCount int64) bool {
	return deckCount > 1
}

// GetUserDecks returns every deck owned by the user, most recent first
func GetUserDecks(ctx context.Context, userID string) ([]models.Deck, error) {
	defer metrics.RecordDBOperation("select", "decks", time.Now())

	var decks []models.Deck
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&decks).Error
	return decks, err
}

// GetPublicDecks lists public decks with pagination
func GetPublicDecks(ctx context.Context, f PublicDeckFilter) ([]models.Deck, int64, error) {
	defer metrics.RecordDBOperation("select", "decks", time.Now())

	page, limit := normalizePage(f.Page, f.Limit)
	query := database.DB.WithContext(ctx).Model(&models.Deck{}).Where("is_public = ?", true)
	if f.School != "" {
		school, ok := models.ParseSchool(f.School)
		if !ok {
			return nil, 0, ErrInvalidSchool
		}
		query = query.Where("school = ?", school)
	}
	if f.IsPve != nil {
		query = query.Where("is_pve = ?", *f.IsPve)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var decks []models.Deck
	err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&decks).Error
	return decks, total, err
}

// GetOwnedDeck returns the deck only if userID owns it
func GetOwnedDeck(ctx context.Context, userID, deckID string) (*models.Deck, error) {
	if _, err := uuid.Parse(deckID); err != nil {
		return nil, ErrDeckNotFound
	}
	defer metrics.RecordDBOperation("select", "decks", time.Now())

	var deck models.Deck
	err := database.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", deckID, userID).
		First(&deck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeckNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// GetVisibleDeck returns the deck if userID owns it or if it is public.
// userID may be empty for anonymous viewers.
func GetVisibleDeck(ctx context.Context, userID, deckID string) (*models.Deck, error) {
	if _, err := uuid.Parse(deckID); err != nil {
		return nil, ErrDeckNotFound
	}
	defer metrics.RecordDBOperation("select", "decks", time.Now())

	var deck models.Deck
	err := database.DB.WithContext(ctx).Preload("User").First(&deck, "id = ?", deckID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeckNotFound
	}
	if err != nil {
		return nil, err
	}
	if !deck.IsPublic && deck.UserID != userID {
		return nil, ErrDeckNotFound
	}
	return &deck, nil
}

// CreateDeck validates the input and stores a new empty deck
func CreateDeck(ctx context.Context, userID string, in DeckInput) (*models.Deck, error) {
	deck := models.Deck{UserID: userID, Spells: datatypes.JSONSlice[models.SpellRef]{}}
	if err := applyDeckInput(&deck, in); err != nil {
		return nil, err
	}
	defer metrics.RecordDBOperation("insert", "decks", time.Now())

	if err := database.DB.WithContext(ctx).Create(&deck).Error; err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}
	return &deck, nil
}

// UpdateDeck applies a metadata patch to a deck owned by userID
func UpdateDeck(ctx context.Context, userID, deckID string, patch DeckPatch) (*models.Deck, error) {
	deck, err := GetOwnedDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	in := DeckInput{
		Name:        deck.Name,
		School:      string(deck.School),
		Level:       deck.Level,
		Description: deck.Description,
		IsPve:       deck.IsPve,
		IsPublic:    deck.IsPublic,
		CanComment:  deck.CanComment,
	}
	if deck.WeavingSchool != nil {
		w := string(*deck.WeavingSchool)
		in.WeavingSchool = &w
	}
	if patch.Name != nil {
		in.Name = *patch.Name
	}
	if patch.School != nil {
		in.School = *patch.School
	}
	if patch.Level != nil {
		in.Level = *patch.Level
	}
	if patch.ClearWeaving {
		in.WeavingSchool = nil
	} else if patch.WeavingSchool != nil {
		in.WeavingSchool = patch.WeavingSchool
	}
	if patch.Description != nil {
		in.Description = patch.Description
	}
	if patch.IsPve != nil {
		in.IsPve = *patch.IsPve
	}
	if patch.IsPublic != nil {
		in.IsPublic = *patch.IsPublic
	}
	if patch.CanComment != nil {
		in.CanComment = *patch.CanComment
	}
	if err := applyDeckInput(deck, in); err != nil {
		return nil, err
	}

	defer metrics.RecordDBOperation("update", "decks", time.Now())
	// Select keeps false booleans and nil weaving school in the update
	err = database.DB.WithContext(ctx).Model(deck).
		Select("name", "school", "level", "weaving_school", "description", "is_pve", "is_public", "can_comment").
		Updates(deck).Error
	if err != nil {
		return nil, fmt.Errorf("update deck: %w", err)
	}
	return deck, nil
}

// CopyDeck creates a private copy of source, with spells as its sequence, for userID
func CopyDeck(ctx context.Context, userID string, source *models.Deck, spells []models.SpellRef) (*models.Deck, error) {
	name := source.Name + " (copy)"
	if r := []rune(name); len(r) > 100 {
		name = string(r[:100])
	}
	deck := models.Deck{
		Name:          name,
		UserID:        userID,
		School:        source.School,
		Level:         source.Level,
		WeavingSchool: source.WeavingSchool,
		Description:   source.Description,
		IsPve:         source.IsPve,
		Spells:        datatypes.NewJSONSlice(spells),
	}
	if len(spells) > config.DeckCapacity {
		return nil, fmt.Errorf("copy deck: %d spells exceed the deck capacity", len(spells))
	}
	defer metrics.RecordDBOperation("insert", "decks", time.Now())

	if err := database.DB.WithContext(ctx).Create(&deck).Error; err != nil {
		return nil, fmt.Errorf("copy deck: %w", err)
	}
	return &deck, nil
}

// DeleteDeck removes a deck unless it is the last one its owner has
func DeleteDeck(ctx context.Context, userID, deckID string) error {
	if _, err := uuid.Parse(deckID); err != nil {
		return ErrDeckNotFound
	}
	defer metrics.RecordDBOperation("delete", "decks", time.Now())

	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the owner's decks so two concurrent deletes cannot both see two decks
		var ids []string
		if err := tx.Model(&models.Deck{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		owned := false
		for _, id := range ids {
			if id == deckID {
				owned = true
				break
			}
		}
		if !owned {
			return ErrDeckNotFound
		}
		if !CanDeleteDeck(int64(len(ids))) {
			return ErrLastDeck
		}

		if err := tx.Where("deck_id = ?", deckID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", deckID, userID).Delete(&models.Deck{}).Error
	})
}

// applyDeckInput validates in and copies it onto deck
func applyDeckInput(deck *models.Deck, in DeckInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > 100 {
		return ErrInvalidDeckName
	}
	school, ok := models.ParseSchool(in.School)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSchool, in.School)
	}
	if in.Level < config.MinDeckLevel || in.Level > config.MaxDeckLevel {
		return fmt.Errorf("%w: must be between %d and %d", ErrInvalidLevel, config.MinDeckLevel, config.MaxDeckLevel)
	}

	var weaving *models.School
	if in.WeavingSchool != nil && strings.TrimSpace(*in.WeavingSchool) != "" {
		w, ok := models.ParseSchool(*in.WeavingSchool)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidSchool, *in.WeavingSchool)
		}
		weaving = &w
	}

	var description *string
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		d := strings.TrimSpace(*in.Description)
		description = &d
	}

	deck.Name = name
	deck.School = school
	deck.Level = in.Level
	deck.WeavingSchool = weaving
	deck.Description = description
	deck.IsPve = in.IsPve
	deck.IsPublic = in.IsPublic
	// comments only make sense on a deck others can see
	deck.CanComment = in.CanComment && in.IsPublic
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// DeckStore persists deck spell sequences for the autosave manager
type DeckStore struct {
	db *gorm.DB
}

// NewDeckStore creates a store on db
func NewDeckStore(db *gorm.DB) *DeckStore {
	return &DeckStore{db: db}
}

// LoadDeckSpells reads the spell sequence of a deck
func (s *DeckStore) LoadDeckSpells(ctx context.Context, deckID string) ([]models.SpellRef, error) {
	defer metrics.RecordDBOperation("select", "decks", time.Now())

	var deck models.Deck
	err := s.db.WithContext(ctx).Select("id", "spells").First(&deck, "id = ?", deckID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeckNotFound
	}
	if err != nil {
		return nil, err
	}
	return []models.SpellRef(deck.Spells), nil
}

// SaveDeckSpells overwrites the spell sequence of a deck
func (s *DeckStore) SaveDeckSpells(ctx context.Context, deckID string, spells []models.SpellRef) error {
	defer metrics.RecordDBOperation("update", "decks", time.Now())

	if spells == nil {
		spells = []models.SpellRef{}
	}
	res := s.db.WithContext(ctx).Model(&models.Deck{}).
		Where("id = ?", deckID).
		Updates(map[string]interface{}{
			"spells":     datatypes.NewJSONSlice(spells),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDeckNotFound
	}
	return nil
}
