package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mlehnert/placard/pkg/layout"
)

func sampleLayout() layout.Layout {
	return layout.Layout{
		Width:  100,
		Height: 100,
		Boxes: []layout.Box{
			{ID: "a", Label: "A", X: 0, Y: 0, W: 10, H: 10},
		},
	}
}

func TestFileStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	doc := NewDocument("slide one", sampleLayout())
	if doc.ID == "" {
		t.Fatal("NewDocument assigned no ID")
	}

	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "slide one" {
		t.Errorf("Name = %q, want %q", got.Name, "slide one")
	}
	if len(got.Layout.Boxes) != 1 || got.Layout.Boxes[0].Label != "A" {
		t.Errorf("layout not preserved: %+v", got.Layout)
	}

	if err := s.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	first := NewDocument("first", sampleLayout())
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second := NewDocument("second", sampleLayout())
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("List returned %d documents, want 2", len(docs))
	}
	if docs[0].Name != "second" || docs[1].Name != "first" {
		t.Errorf("List order = [%s, %s], want newest first", docs[0].Name, docs[1].Name)
	}
}

func TestFileStoreSaveRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	doc := NewDocument("doc", sampleLayout())
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	saved := doc.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if !doc.UpdatedAt.After(saved) {
		t.Error("UpdatedAt not refreshed on Save")
	}
}
