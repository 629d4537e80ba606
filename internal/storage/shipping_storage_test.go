package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tagadou/backend/internal/models"
)

func TestFileShippingStore_LoadDefaults(t *testing.T) {
	store := NewFileShippingStore(filepath.Join(t.TempDir(), "shipping.json"))

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defaults := models.DefaultShippingSettings()
	if settings.Tarif1.Price != defaults.Tarif1.Price {
		t.Errorf("expected default tarif1 price %.2f, got %.2f", defaults.Tarif1.Price, settings.Tarif1.Price)
	}
	if settings.Tarif2.Name != defaults.Tarif2.Name {
		t.Errorf("expected default tarif2 name %q, got %q", defaults.Tarif2.Name, settings.Tarif2.Name)
	}
}

func TestFileShippingStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipping.json")
	store := NewFileShippingStore(path)

	custom := models.ShippingSettings{
		Tarif1: models.Tariff{Name: "Lettre verte", Description: "Envoi lent", Price: 2.95, Condition: "stickers-only"},
		Tarif2: models.Tariff{Name: "Colis express", Description: "Envoi rapide", Price: 8.40, Condition: "physical-addon"},
	}

	if err := store.Save(custom); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}
	if loaded != custom {
		t.Errorf("expected %+v, got %+v", custom, loaded)
	}
}

func TestFileShippingStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipping.json")
	store := NewFileShippingStore(path)

	first := models.DefaultShippingSettings()
	if err := store.Save(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := first
	second.Tarif1.Price = 4.10
	if err := store.Save(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Tarif1.Price != 4.10 {
		t.Errorf("expected overwritten price 4.10, got %.2f", loaded.Tarif1.Price)
	}
}

func TestFileShippingStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipping.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileShippingStore(path)
	if _, err := store.Load(); err == nil {
		t.Error("expected an error for a corrupt settings file")
	}
}
