package record

import (
	"strings"
	"testing"
)

func TestReadCSVHeaderDiscovery(t *testing.T) {
	src, err := ReadCSV(strings.NewReader("lid,name,location\nA1,Widget,Shelf 3\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	want := []string{"lid", "name", "location"}
	got := src.Fields()
	if len(got) != len(want) {
		t.Fatalf("Fields() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadCSVRecords(t *testing.T) {
	src, err := ReadCSV(strings.NewReader("lid,name\nA1,Widget\nA2,Gadget\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	recs := src.Records()
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].ID() != "A1" || recs[1].ID() != "A2" {
		t.Errorf("record ids = %q, %q, want A1, A2", recs[0].ID(), recs[1].ID())
	}
	if v, ok := recs[1].Get("name"); !ok || v != "Gadget" {
		t.Errorf("recs[1][name] = %q (ok=%v), want Gadget", v, ok)
	}
}

func TestReadCSVReplayable(t *testing.T) {
	src, err := ReadCSV(strings.NewReader("lid\nA1\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	first := src.Records()
	second := src.Records()
	if len(first) != 1 || len(second) != 1 {
		t.Fatal("source is not replayable")
	}
	if first[0].ID() != second[0].ID() {
		t.Error("replayed records differ")
	}
}

func TestReadCSVQuotedHeaders(t *testing.T) {
	src, err := ReadCSV(strings.NewReader("\"lid\", \"name\" \nA1,Widget\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if !src.HasField("lid") || !src.HasField("name") {
		t.Errorf("headers not cleaned: %v", src.Fields())
	}
}

func TestReadCSVRaggedRow(t *testing.T) {
	src, err := ReadCSV(strings.NewReader("lid,name,location\nA1,Widget\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	rec := src.Records()[0]
	if _, ok := rec.Get("location"); ok {
		t.Error("short row should leave trailing field unset")
	}
	if v, _ := rec.Get("name"); v != "Widget" {
		t.Errorf("name = %q, want Widget", v)
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("empty input should fail")
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	src, err := ReadCSV(strings.NewReader("lid,name\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if src.Len() != 0 {
		t.Errorf("Len() = %d, want 0", src.Len())
	}
}
