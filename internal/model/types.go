// Package model defines shared data structures.
package model

import "time"

// Category names one cosmetic slot of the avatar.
type Category string

// Avatar categories.
const (
	CategoryColor   Category = "color"
	CategoryHat     Category = "hat"
	CategoryGlasses Category = "glasses"
	CategoryShirt   Category = "shirt"
)

// Categories lists avatar categories in store display order.
var Categories = []Category{CategoryHat, CategoryGlasses, CategoryShirt, CategoryColor}

// Default item ids. Each is free and therefore always unlocked.
const (
	DefaultColor = "default-yellow"
	NoneItem     = "none"
)

// StoreItem is one entry of the static cosmetic catalog.
// (ID, Category) is unique; ids repeat across categories ("none").
type StoreItem struct {
	ID       string
	Category Category
	Name     string
	Price    int
	Icon     string
}

// Key returns the category-qualified ownership key, e.g. "hat:crown".
func (i StoreItem) Key() string {
	return ItemKey(i.Category, i.ID)
}

// ItemKey builds a category-qualified ownership key.
func ItemKey(category Category, id string) string {
	return string(category) + ":" + id
}

// AvatarConfig selects one catalog item per category.
type AvatarConfig struct {
	Color   string `json:"color"`
	Hat     string `json:"hat"`
	Glasses string `json:"glasses"`
	Shirt   string `json:"shirt"`
}

// DefaultAvatar returns the always-unlocked starting outfit.
func DefaultAvatar() AvatarConfig {
	return AvatarConfig{
		Color:   DefaultColor,
		Hat:     NoneItem,
		Glasses: NoneItem,
		Shirt:   NoneItem,
	}
}

// Get returns the item id selected for a category.
func (a AvatarConfig) Get(category Category) string {
	switch category {
	case CategoryColor:
		return a.Color
	case CategoryHat:
		return a.Hat
	case CategoryGlasses:
		return a.Glasses
	case CategoryShirt:
		return a.Shirt
	default:
		return ""
	}
}

// With returns a copy of the config with one category replaced.
func (a AvatarConfig) With(category Category, id string) AvatarConfig {
	switch category {
	case CategoryColor:
		a.Color = id
	case CategoryHat:
		a.Hat = id
	case CategoryGlasses:
		a.Glasses = id
	case CategoryShirt:
		a.Shirt = id
	}
	return a
}

// LeaderboardEntry is a frozen record of one completed game.
type LeaderboardEntry struct {
	Name     string       `json:"name"`
	Score    int          `json:"score"`
	PlayedAt time.Time    `json:"date"`
	Avatar   AvatarConfig `json:"avatar"`
	Rank     string       `json:"rank"`
}

// Config defines game settings resolved from flags and the config file.
type Config struct {
	PlayerName      string
	StartDelay      time.Duration
	ShuffleDelay    time.Duration
	RevealDelay     time.Duration
	TransitionDelay time.Duration
	Sound           bool
	Commentary      bool
}
