package economy

import (
	"errors"

	"github.com/verte-zerg/moneydetectives/internal/model"
)

// ErrUnknownItem is returned when an item is not part of the catalog.
var ErrUnknownItem = errors.New("unknown catalog item")

var catalog = []model.StoreItem{
	{ID: model.DefaultColor, Category: model.CategoryColor, Name: "Sunny Yellow", Price: 0, Icon: "🟡"},
	{ID: "sky-blue", Category: model.CategoryColor, Name: "Sky Blue", Price: 1, Icon: "🔵"},
	{ID: "candy-pink", Category: model.CategoryColor, Name: "Candy Pink", Price: 1, Icon: "🔴"},
	{ID: "lime-green", Category: model.CategoryColor, Name: "Lime Green", Price: 1, Icon: "🟢"},
	{ID: "royal-purple", Category: model.CategoryColor, Name: "Royal Purple", Price: 2, Icon: "🟣"},

	{ID: model.NoneItem, Category: model.CategoryHat, Name: "No Hat", Price: 0, Icon: "❌"},
	{ID: "cap", Category: model.CategoryHat, Name: "Blue Cap", Price: 2, Icon: "🧢"},
	{ID: "crown", Category: model.CategoryHat, Name: "Gold Crown", Price: 5, Icon: "👑"},
	{ID: "cowboy", Category: model.CategoryHat, Name: "Cowboy Hat", Price: 3, Icon: "🤠"},
	{ID: "beanie", Category: model.CategoryHat, Name: "Winter Hat", Price: 2, Icon: "🧶"},

	{ID: model.NoneItem, Category: model.CategoryGlasses, Name: "No Glasses", Price: 0, Icon: "❌"},
	{ID: "sunglasses", Category: model.CategoryGlasses, Name: "Cool Shades", Price: 2, Icon: "😎"},
	{ID: "nerd", Category: model.CategoryGlasses, Name: "Reading Specs", Price: 2, Icon: "👓"},
	{ID: "star", Category: model.CategoryGlasses, Name: "Star Eyes", Price: 4, Icon: "⭐"},

	{ID: model.NoneItem, Category: model.CategoryShirt, Name: "Plain Tee", Price: 0, Icon: "👕"},
	{ID: "stripe", Category: model.CategoryShirt, Name: "Striped", Price: 3, Icon: "🦓"},
	{ID: "bowtie", Category: model.CategoryShirt, Name: "Formal", Price: 5, Icon: "🤵"},
	{ID: "super", Category: model.CategoryShirt, Name: "Hero Suit", Price: 6, Icon: "🦸"},
}

// Catalog returns a copy of every store item.
func Catalog() []model.StoreItem {
	out := make([]model.StoreItem, len(catalog))
	copy(out, catalog)
	return out
}

// ItemsIn returns the items of one category in catalog order.
func ItemsIn(category model.Category) []model.StoreItem {
	var out []model.StoreItem
	for _, item := range catalog {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Find looks up an item by category and id.
func Find(category model.Category, id string) (model.StoreItem, bool) {
	for _, item := range catalog {
		if item.Category == category && item.ID == id {
			return item, true
		}
	}
	return model.StoreItem{}, false
}

// Lookup resolves an item, returning ErrUnknownItem when it is missing.
func Lookup(category model.Category, id string) (model.StoreItem, error) {
	item, ok := Find(category, id)
	if !ok {
		return model.StoreItem{}, ErrUnknownItem
	}
	return item, nil
}

// SanitizeAvatar resets every field that does not name an item of its
// category to the default outfit's value.
func SanitizeAvatar(cfg model.AvatarConfig) model.AvatarConfig {
	def := model.DefaultAvatar()
	for _, category := range model.Categories {
		if _, ok := Find(category, cfg.Get(category)); !ok {
			cfg = cfg.With(category, def.Get(category))
		}
	}
	return cfg
}
