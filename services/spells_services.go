package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"deckbuilder/database"
	"deckbuilder/logger"
	"deckbuilder/metrics"
	"deckbuilder/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SpellCacheKeyPrefix prefixes every cached catalog query
const SpellCacheKeyPrefix = "spells:"

// SpellFilter narrows a catalog search
type SpellFilter struct {
	School   string
	CardType string
	Effect   string
	Pip      string
	Query    string
	Page     int
	Limit    int
}

// SpellPage is one page of catalog search results
type SpellPage struct {
	Spells []models.Spell `json:"spells"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

func (f SpellFilter) cacheKey() string {
	return fmt.Sprintf("%ssearch:%s|%s|%s|%s|%s|%d|%d", SpellCacheKeyPrefix,
		strings.ToLower(f.School), strings.ToLower(f.CardType), strings.ToLower(f.Effect),
		strings.ToLower(f.Pip), strings.ToLower(f.Query), f.Page, f.Limit)
}

// SearchSpells queries the catalog, reading through the redis cache
func SearchSpells(ctx context.Context, f SpellFilter) (*SpellPage, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)
	f.School = strings.TrimSpace(f.School)
	if f.School != "" {
		school, ok := models.ParseSchool(f.School)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSchool, f.School)
		}
		f.School = string(school)
	}

	key := f.cacheKey()
	var cached SpellPage
	found, err := database.GetFromCache(ctx, key, &cached)
	if err != nil {
		logger.L().Warn("spell cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return &cached, nil
	}

	defer metrics.RecordDBOperation("select", "spells", time.Now())
	query := database.DB.WithContext(ctx).Model(&models.Spell{})
	if f.School != "" {
		query = query.Where("school = ?", f.School)
	}
	if f.CardType != "" {
		query = query.Where("LOWER(card_type) = LOWER(?)", f.CardType)
	}
	if f.Effect != "" {
		query = query.Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(card_effects) AS e WHERE LOWER(e) = LOWER(?))", f.Effect)
	}
	if f.Pip != "" {
		query = query.Where("UPPER(pip_cost) = UPPER(?)", f.Pip)
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	page := SpellPage{Page: f.Page, Limit: f.Limit}
	if err := query.Count(&page.Total).Error; err != nil {
		return nil, err
	}
	if err := query.Order("school ASC, name ASC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&page.Spells).Error; err != nil {
		return nil, err
	}
	if page.Spells == nil {
		page.Spells = []models.Spell{}
	}

	if err := database.SetToCache(ctx, key, page); err != nil {
		logger.L().Warn("spell cache write failed", zap.String("key", key), zap.Error(err))
	}
	return &page, nil
}

// GetSpellByName looks a spell up case-insensitively
func GetSpellByName(ctx context.Context, name string) (*models.Spell, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSpellNotFound
	}

	key := SpellCacheKeyPrefix + "name:" + strings.ToLower(name)
	var spell models.Spell
	if found, _ := database.GetFromCache(ctx, key, &spell); found {
		return &spell, nil
	}

	defer metrics.RecordDBOperation("select", "spells", time.Now())
	err := database.DB.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&spell).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrSpellNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	if err := database.SetToCache(ctx, key, spell); err != nil {
		logger.L().Warn("spell cache write failed", zap.String("key", key), zap.Error(err))
	}
	return &spell, nil
}

// ResolveSpells turns catalog names into deck references, keeping order and duplicates.
// The first unknown name fails the whole batch.
func ResolveSpells(ctx context.Context, names []string) ([]models.SpellRef, error) {
	wanted := make(map[string]struct{}, len(names))
	lowered := make([]string, 0, len(names))
	for _, n := range names {
		l := strings.ToLower(strings.TrimSpace(n))
		if l == "" {
			return nil, ErrSpellNotFound
		}
		if _, ok := wanted[l]; !ok {
			wanted[l] = struct{}{}
			lowered = append(lowered, l)
		}
	}
	if len(lowered) == 0 {
		return []models.SpellRef{}, nil
	}

	defer metrics.RecordDBOperation("select", "spells", time.Now())
	var spells []models.Spell
	if err := database.DB.WithContext(ctx).Where("LOWER(name) IN ?", lowered).Find(&spells).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]models.Spell, len(spells))
	for _, s := range spells {
		byName[strings.ToLower(s.Name)] = s
	}

	refs := make([]models.SpellRef, 0, len(names))
	for _, n := range names {
		s, ok := byName[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSpellNotFound, n)
		}
		refs = append(refs, s.Ref())
	}
	return refs, nil
}

// InvalidateSpellCache drops every cached catalog query
func InvalidateSpellCache(ctx context.Context) error {
	return database.DeleteByPrefix(ctx, SpellCacheKeyPrefix)
}
