package rank

import (
	"reflect"
	"testing"

	"github.com/okian/podium/internal/domain/record"
)

func TestMerge_AppendsUnknownName(t *testing.T) {
	out, changed := Merge(nil, "Ann", 100, "2026-01-01T00:00:00Z")
	if !changed {
		t.Fatal("expected a change")
	}
	want := []record.Record{{Name: "Ann", Score: 100, Date: "2026-01-01T00:00:00Z"}}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %+v, want %+v", out, want)
	}
}

func TestMerge_HigherScoreReplaces(t *testing.T) {
	in := []record.Record{{Name: "Ann", Score: 100, Date: "2026-01-01T00:00:00Z"}}
	out, changed := Merge(in, "Ann", 150, "2026-01-02T00:00:00Z")
	if !changed {
		t.Fatal("expected a change")
	}
	if out[0].Score != 150 || out[0].Date != "2026-01-02T00:00:00Z" {
		t.Fatalf("record not replaced: %+v", out[0])
	}
	if len(out) != 1 {
		t.Fatalf("expected one record per name, got %d", len(out))
	}
}

func TestMerge_LowerOrEqualScoreIsNoop(t *testing.T) {
	for _, score := range []int{50, 100} {
		in := []record.Record{{Name: "Ann", Score: 100, Date: "2026-01-01T00:00:00Z"}}
		out, changed := Merge(in, "Ann", score, "2026-01-02T00:00:00Z")
		if changed {
			t.Errorf("score %d: expected no change", score)
		}
		if out[0].Score != 100 || out[0].Date != "2026-01-01T00:00:00Z" {
			t.Errorf("score %d: record mutated: %+v", score, out[0])
		}
	}
}

func TestMerge_NamesAreCaseSensitive(t *testing.T) {
	in := []record.Record{{Name: "Ann", Score: 100, Date: "2026-01-01T00:00:00Z"}}
	out, changed := Merge(in, "ann", 50, "2026-01-02T00:00:00Z")
	if !changed {
		t.Fatal("expected an append for the differently-cased name")
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
}

func TestSort_ScoreDescendingDateAscending(t *testing.T) {
	records := []record.Record{
		{Name: "Cid", Score: 100, Date: "2026-01-03T00:00:00Z"},
		{Name: "Ben", Score: 150, Date: "2026-01-02T00:00:00Z"},
		{Name: "Ann", Score: 100, Date: "2026-01-01T00:00:00Z"},
	}
	Sort(records)

	wantOrder := []string{"Ben", "Ann", "Cid"}
	for i, name := range wantOrder {
		if records[i].Name != name {
			t.Fatalf("position %d: got %s, want %s (full: %+v)", i, records[i].Name, name, records)
		}
	}
}

func TestTruncate(t *testing.T) {
	records := make([]record.Record, 12)
	if got := Truncate(records, record.TopSize); len(got) != record.TopSize {
		t.Fatalf("expected %d records, got %d", record.TopSize, len(got))
	}
	short := make([]record.Record, 3)
	if got := Truncate(short, record.TopSize); len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
}
