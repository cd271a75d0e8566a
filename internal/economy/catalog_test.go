package economy

import (
	"errors"
	"testing"

	"github.com/verte-zerg/moneydetectives/internal/model"
)

func TestCatalogKeysUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, item := range Catalog() {
		if seen[item.Key()] {
			t.Fatalf("duplicate catalog key %s", item.Key())
		}
		seen[item.Key()] = true
		if item.Price < 0 {
			t.Fatalf("negative price for %s", item.Key())
		}
	}
	if len(seen) != 18 {
		t.Fatalf("expected 18 items, got %d", len(seen))
	}
}

func TestDefaultAvatarIsFree(t *testing.T) {
	def := model.DefaultAvatar()
	for _, category := range model.Categories {
		item, ok := Find(category, def.Get(category))
		if !ok {
			t.Fatalf("default %s item missing from catalog", category)
		}
		if item.Price != 0 {
			t.Fatalf("default %s item must be free", category)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	items := Catalog()
	items[0].Price = 999
	if Catalog()[0].Price == 999 {
		t.Fatalf("catalog must not be mutable through Catalog()")
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup(model.CategoryHat, "sunglasses"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	item, err := Lookup(model.CategoryGlasses, "sunglasses")
	if err != nil || item.Price != 2 {
		t.Fatalf("unexpected lookup result: %+v %v", item, err)
	}
}

func TestSanitizeAvatar(t *testing.T) {
	cfg := model.AvatarConfig{Color: "bg-yellow-300", Hat: "crown", Glasses: "crown", Shirt: ""}
	got := SanitizeAvatar(cfg)
	want := model.AvatarConfig{Color: model.DefaultColor, Hat: "crown", Glasses: model.NoneItem, Shirt: model.NoneItem}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestItemsIn(t *testing.T) {
	hats := ItemsIn(model.CategoryHat)
	if len(hats) != 5 || hats[0].ID != model.NoneItem {
		t.Fatalf("unexpected hats: %+v", hats)
	}
}
