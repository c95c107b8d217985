package notestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/moktagithub005/news-tool/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "notes.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func note(title, url string, relevance int) model.NoteItem {
	return model.NoteItem{
		Title:         title,
		Category:      model.CategoryEconomy,
		Relevance:     relevance,
		PrelimsPoints: []string{"point"},
		Source:        model.SourceRef{URL: url},
	}
}

func TestStore_SaveAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, "2024-06-10", note("RBI cuts rate", "https://example.com/1", 8))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !saved {
		t.Error("Expected first save to write a row")
	}

	if _, err := store.Save(ctx, "2024-06-10", note("Budget tabled", "https://example.com/2", 9)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	items, err := store.ListDay(ctx, "2024-06-10")
	if err != nil {
		t.Fatalf("ListDay failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Budget tabled" {
		t.Errorf("Expected relevance-descending order, got %q first", items[0].Title)
	}
	if len(items[0].PrelimsPoints) != 1 {
		t.Errorf("Expected structured fields round-tripped, got %+v", items[0])
	}
}

func TestStore_SaveDedupesWithinDay(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	item := note("Same headline", "https://example.com/1", 5)

	if _, err := store.Save(ctx, "2024-06-10", item); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	saved, err := store.Save(ctx, "2024-06-10", item)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved {
		t.Error("Expected duplicate save to be a no-op")
	}

	// Same item on another day is a separate row.
	saved, err = store.Save(ctx, "2024-06-11", item)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !saved {
		t.Error("Expected save on a different day to write a row")
	}
}

func TestStore_DeleteDay(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, _ = store.Save(ctx, "2024-06-10", note("a", "u1", 3))
	_, _ = store.Save(ctx, "2024-06-10", note("b", "u2", 4))
	_, _ = store.Save(ctx, "2024-06-11", note("c", "u3", 5))

	deleted, err := store.DeleteDay(ctx, "2024-06-10")
	if err != nil {
		t.Fatalf("DeleteDay failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 rows deleted, got %d", deleted)
	}

	items, err := store.ListDay(ctx, "2024-06-10")
	if err != nil {
		t.Fatalf("ListDay failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty day after delete, got %d", len(items))
	}

	days, err := store.Days(ctx)
	if err != nil {
		t.Fatalf("Days failed: %v", err)
	}
	if len(days) != 1 || days[0] != "2024-06-11" {
		t.Errorf("Expected remaining day 2024-06-11, got %v", days)
	}
}

func TestStore_ListEmptyDay(t *testing.T) {
	store := openTestStore(t)

	items, err := store.ListDay(context.Background(), "2030-01-01")
	if err != nil {
		t.Fatalf("ListDay failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", items)
	}
}
