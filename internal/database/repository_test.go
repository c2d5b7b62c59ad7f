package database

import (
	"context"
	"errors"
	"testing"

	"github.com/helixml/listingllm/domain/repository"
)

type itemModel struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func (itemModel) TableName() string { return "test_items" }

type itemMapper struct{}

func (itemMapper) ToDomain(e itemModel) string { return e.Name }
func (itemMapper) ToModel(d string) itemModel  { return itemModel{Name: d} }

func newItemRepository(t *testing.T, names ...string) Repository[string, itemModel] {
	t.Helper()
	db := newItemsDB(t)
	for _, name := range names {
		if err := db.Session(context.Background()).Create(&itemModel{Name: name}).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewRepository[string, itemModel](db, itemMapper{}, "item")
}

func TestRepository_Find(t *testing.T) {
	repo := newItemRepository(t, "a", "b", "c")

	got, err := repo.Find(context.Background(), repository.WithOrderDesc("id"), repository.WithLimit(2))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 2 || got[0] != "c" || got[1] != "b" {
		t.Errorf("Find() = %v, want [c b]", got)
	}

	page, err := repo.Find(context.Background(), repository.WithPagination(1, 1)...)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(page) != 1 || page[0] != "b" {
		t.Errorf("Find(page) = %v, want [b]", page)
	}
}

func TestRepository_FindOne(t *testing.T) {
	repo := newItemRepository(t, "a", "b")

	got, err := repo.FindOne(context.Background(), repository.WithCondition("name", "b"))
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if got != "b" {
		t.Errorf("FindOne() = %q, want b", got)
	}

	_, err = repo.FindOne(context.Background(), repository.WithCondition("name", "zzz"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_CountExistsDelete(t *testing.T) {
	ctx := context.Background()
	repo := newItemRepository(t, "a", "b", "b")

	count, err := repo.Count(ctx, repository.WithCondition("name", "b"))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	if err := repo.DeleteBy(ctx, repository.WithCondition("name", "b")); err != nil {
		t.Fatalf("DeleteBy: %v", err)
	}

	exists, err := repo.Exists(ctx, repository.WithCondition("name", "b"))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("expected no b items after DeleteBy")
	}
}
