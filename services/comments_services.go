package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"deckbuilder/database"
	"deckbuilder/metrics"
	"deckbuilder/models"
)

// GetDeckComments lists the comments of a deck visible to userID, oldest first
func GetDeckComments(ctx context.Context, userID, deckID string) ([]models.Comment, error) {
	deck, err := GetVisibleDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}
	defer metrics.RecordDBOperation("select", "comments", time.Now())

	comments := []models.Comment{}
	err = database.DB.WithContext(ctx).
		Preload("User").
		Where("deck_id = ?", deck.ID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// AddComment posts a comment on a public deck that accepts them
func AddComment(ctx context.Context, userID, deckID, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if n := utf8.RuneCountInString(body); n == 0 || n > 1000 {
		return nil, ErrInvalidComment
	}

	deck, err := GetVisibleDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}
	if !deck.IsPublic || !deck.CanComment {
		return nil, ErrCommentsDisabled
	}

	defer metrics.RecordDBOperation("insert", "comments", time.Now())
	comment := models.Comment{DeckID: deck.ID, UserID: userID, Body: body}
	if err := database.DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
