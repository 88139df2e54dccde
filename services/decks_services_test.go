package services

import (
	"context"
	"strings"
	"testing"

	"deckbuilder/config"
	"deckbuilder/database"
	"deckbuilder/models"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanDeleteDeck(t *testing.T) {
	assert.False(t, CanDeleteDeck(0))
	assert.False(t, CanDeleteDeck(1))
	assert.True(t, CanDeleteDeck(2))
}

func TestApplyDeckInput(t *testing.T) {
	ice := "ice"
	blank := "  "
	water := "Water"
	tests := []struct {
		name    string
		in      DeckInput
		wantErr error
	}{
		{"valid", DeckInput{Name: "PvP Fire", School: "fire", Level: 170}, nil},
		{"empty name", DeckInput{Name: "   ", School: "Fire", Level: 10}, ErrInvalidDeckName},
		{"long name", DeckInput{Name: strings.Repeat("é", 101), School: "Fire", Level: 10}, ErrInvalidDeckName},
		{"unknown school", DeckInput{Name: "a", School: "Water", Level: 10}, ErrInvalidSchool},
		{"blank weaving school", DeckInput{Name: "a", School: "Fire", Level: 10, WeavingSchool: &blank}, nil},
		{"unknown weaving school", DeckInput{Name: "a", School: "Fire", Level: 10, WeavingSchool: &water}, ErrInvalidSchool},
		{"level too low", DeckInput{Name: "a", School: "Fire", Level: 0}, ErrInvalidLevel},
		{"level too high", DeckInput{Name: "a", School: "Fire", Level: 171}, ErrInvalidLevel},
		{"weaving", DeckInput{Name: "a", School: "Fire", Level: 50, WeavingSchool: &ice}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var deck models.Deck
			err := applyDeckInput(&deck, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestApplyDeckInputNormalizes(t *testing.T) {
	ice := " ice "
	var deck models.Deck
	require.NoError(t, applyDeckInput(&deck, DeckInput{
		Name:          "  Storm PvE ",
		School:        "STORM",
		Level:         120,
		WeavingSchool: &ice,
		IsPublic:      false,
		CanComment:    true,
	}))

	assert.Equal(t, "Storm PvE", deck.Name)
	assert.Equal(t, models.SchoolStorm, deck.School)
	require.NotNil(t, deck.WeavingSchool)
	assert.Equal(t, models.SchoolIce, *deck.WeavingSchool)
	assert.Nil(t, deck.Description)
	assert.False(t, deck.CanComment, "private decks never accept comments")
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = normalizePage(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, limit)

	_, limit = normalizePage(1, 50)
	assert.Equal(t, 50, limit)
}

func TestDecksIntegration(t *testing.T) {
	newTestDatabase(t)
	ctx := context.Background()

	user, err := RegisterUser(ctx, "Wizard@Example.com", "wizard", "s3cret-pass", "Myth")
	require.NoError(t, err)
	assert.Equal(t, "wizard@example.com", user.Email)

	t.Run("register creates the starter deck", func(t *testing.T) {
		decks, err := GetUserDecks(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, decks, 1)
		assert.Equal(t, config.StarterDeckName, decks[0].Name)
		assert.Equal(t, models.SchoolMyth, decks[0].School)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := RegisterUser(ctx, "wizard@example.com", "other", "s3cret-pass", "")
		assert.ErrorIs(t, err, ErrEmailInUse)
	})

	t.Run("last deck cannot be deleted", func(t *testing.T) {
		decks, err := GetUserDecks(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, decks, 1)

		assert.ErrorIs(t, DeleteDeck(ctx, user.ID, decks[0].ID), ErrLastDeck)

		second, err := CreateDeck(ctx, user.ID, DeckInput{Name: "Second", School: "Fire", Level: 10})
		require.NoError(t, err)
		require.NoError(t, DeleteDeck(ctx, user.ID, decks[0].ID))

		remaining, err := GetUserDecks(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, second.ID, remaining[0].ID)
		assert.ErrorIs(t, DeleteDeck(ctx, user.ID, second.ID), ErrLastDeck)
	})

	t.Run("other users cannot delete or see private decks", func(t *testing.T) {
		other, err := RegisterUser(ctx, "other@example.com", "other", "s3cret-pass", "Ice")
		require.NoError(t, err)

		decks, err := GetUserDecks(ctx, user.ID)
		require.NoError(t, err)
		require.NotEmpty(t, decks)

		assert.ErrorIs(t, DeleteDeck(ctx, other.ID, decks[0].ID), ErrDeckNotFound)
		_, err = GetVisibleDeck(ctx, other.ID, decks[0].ID)
		assert.ErrorIs(t, err, ErrDeckNotFound)
		_, err = GetOwnedDeck(ctx, user.ID, "not-a-uuid")
		assert.ErrorIs(t, err, ErrDeckNotFound)
	})

	t.Run("deck store round trip", func(t *testing.T) {
		deck, err := CreateDeck(ctx, user.ID, DeckInput{Name: "Round trip", School: "Life", Level: 60})
		require.NoError(t, err)

		store := NewDeckStore(database.DB)
		want := []models.SpellRef{
			{Name: "Fire Cat", School: models.SchoolFire, PipCost: "1", CardEffects: []string{"Damage"}},
			{Name: "Satyr", School: models.SchoolLife, PipCost: "4", CardEffects: []string{"Heal"}},
			{Name: "Satyr", School: models.SchoolLife, PipCost: "4", CardEffects: []string{"Heal"}},
		}
		require.NoError(t, store.SaveDeckSpells(ctx, deck.ID, want))

		got, err := store.LoadDeckSpells(ctx, deck.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("LoadDeckSpells mismatch (-want +got):\n%s", diff)
		}

		assert.ErrorIs(t, store.SaveDeckSpells(ctx, uuid.NewString(), want), ErrDeckNotFound)
		_, err = store.LoadDeckSpells(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrDeckNotFound)
	})

	t.Run("copy is private and suffixed", func(t *testing.T) {
		source, err := CreateDeck(ctx, user.ID, DeckInput{Name: "Shared", School: "Death", Level: 90, IsPublic: true, CanComment: true})
		require.NoError(t, err)

		spells := []models.SpellRef{{Name: "Dark Sprite", School: models.SchoolDeath, PipCost: "1"}}
		copied, err := CopyDeck(ctx, user.ID, source, spells)
		require.NoError(t, err)
		assert.Equal(t, "Shared (copy)", copied.Name)
		assert.False(t, copied.IsPublic)
		assert.False(t, copied.CanComment)
		assert.Len(t, copied.Spells, 1)
	})

	t.Run("comments need a public commentable deck", func(t *testing.T) {
		private, err := CreateDeck(ctx, user.ID, DeckInput{Name: "Private", School: "Balance", Level: 30})
		require.NoError(t, err)
		_, err = AddComment(ctx, user.ID, private.ID, "nice deck")
		assert.ErrorIs(t, err, ErrCommentsDisabled)

		public, err := CreateDeck(ctx, user.ID, DeckInput{Name: "Public", School: "Balance", Level: 30, IsPublic: true, CanComment: true})
		require.NoError(t, err)
		_, err = AddComment(ctx, user.ID, public.ID, "   ")
		assert.ErrorIs(t, err, ErrInvalidComment)

		comment, err := AddComment(ctx, user.ID, public.ID, " nice deck ")
		require.NoError(t, err)
		assert.Equal(t, "nice deck", comment.Body)

		comments, err := GetDeckComments(ctx, "", public.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
	})

	t.Run("authenticate", func(t *testing.T) {
		_, err := Authenticate(ctx, "wizard@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		got, err := Authenticate(ctx, " WIZARD@example.com ", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})
}
