package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"comprobantes/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreate(t *testing.T, s *Store, rec core.Record) int64 {
	t.Helper()
	id, err := s.Create(context.Background(), rec)
	if err != nil {
		t.Fatalf("Create(%+v): %v", rec, err)
	}
	return id
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	s := newTestStore(t)
	rec := core.Record{Name: "Ana Lopez", Date: "2024-03-10", ImageRef: "a.png"}

	first := mustCreate(t, s, rec)
	second := mustCreate(t, s, rec)
	if second <= first {
		t.Fatalf("ids not increasing: %d then %d", first, second)
	}
}

func TestCreateRejectsInvalidRecord(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Create(context.Background(), core.Record{Date: "2024-01-01", ImageRef: "x.png"}); err == nil {
		t.Fatal("record without name should be rejected")
	}
}

func TestCreateThenListRoundTrip(t *testing.T) {
	s := newTestStore(t)
	rec := core.Record{
		Name:        "Ana Lopez",
		Date:        "2024-03-10",
		Amount:      "150.00",
		Description: "rent",
		ImageRef:    "/uploads/recibo.png",
	}
	id := mustCreate(t, s, rec)

	got, err := s.List(context.Background(), core.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	r := got[0]
	if r.ID != id || r.Name != rec.Name || r.Date != rec.Date ||
		r.Amount != rec.Amount || r.Description != rec.Description || r.ImageRef != rec.ImageRef {
		t.Fatalf("round trip mismatch: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt should be store-defaulted")
	}
}

func TestListOrdersByDateDescending(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, core.Record{Name: "a", Date: "2024-01-01", ImageRef: "a.png"})
	mustCreate(t, s, core.Record{Name: "b", Date: "2024-02-01", ImageRef: "b.png"})
	mustCreate(t, s, core.Record{Name: "c", Date: "2024-01-15", ImageRef: "c.png"})

	got, err := s.List(context.Background(), core.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var dates []string
	for _, r := range got {
		dates = append(dates, r.Date)
	}
	want := []string{"2024-02-01", "2024-01-15", "2024-01-01"}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("dates = %v, want %v", dates, want)
		}
	}
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, core.Record{Name: "Ana Lopez", Date: "2024-01-01", Amount: "150.00", Description: "rent", ImageRef: "a.png"})
	mustCreate(t, s, core.Record{Name: "Pedro Gil", Date: "2024-02-01", Amount: "99.50", Description: "food", ImageRef: "b.png"})

	tests := []struct {
		name      string
		filter    core.Filter
		wantNames []string
	}{
		{"no filter", core.Filter{}, []string{"Pedro Gil", "Ana Lopez"}},
		{"name substring", core.Filter{Term: "Ana", Field: core.FieldName}, []string{"Ana Lopez"}},
		{"amount substring", core.Filter{Term: "99", Field: core.FieldAmount}, []string{"Pedro Gil"}},
		{"description substring", core.Filter{Term: "ren", Field: core.FieldDescription}, []string{"Ana Lopez"}},
		{"exact date", core.Filter{Date: "2024-01-01"}, []string{"Ana Lopez"}},
		{"term and date both match", core.Filter{Term: "Ana", Field: core.FieldName, Date: "2024-01-01"}, []string{"Ana Lopez"}},
		{"term and date conflict", core.Filter{Term: "Ana", Field: core.FieldName, Date: "2024-02-01"}, nil},
		{"no match", core.Filter{Term: "zzz", Field: core.FieldName}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("len = %d, want %d (%+v)", len(got), len(tt.wantNames), got)
			}
			for i, want := range tt.wantNames {
				if got[i].Name != want {
					t.Fatalf("names[%d] = %q, want %q", i, got[i].Name, want)
				}
			}
		})
	}
}

func TestListIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, core.Record{Name: "a", Date: "2024-01-01", ImageRef: "a.png"})
	mustCreate(t, s, core.Record{Name: "b", Date: "2024-02-01", ImageRef: "b.png"})

	first, err := s.List(context.Background(), core.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	second, err := s.List(context.Background(), core.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("order differs at %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	id := mustCreate(t, s, core.Record{Name: "Ana", Date: "2024-01-01", ImageRef: "a.png"})

	ok, err := s.Delete(context.Background(), id)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !ok {
		t.Fatal("Delete should report the record existed")
	}

	got, err := s.List(context.Background(), core.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, r := range got {
		if r.ID == id {
			t.Fatal("deleted record still listed")
		}
	}

	// Second delete of the same id is not-found, not an error.
	ok, err = s.Delete(context.Background(), id)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if ok {
		t.Fatal("second Delete should report not found")
	}
}
