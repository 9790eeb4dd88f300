package weeklyperf

import (
	"testing"

	"github.com/vbessa/weeklyperf/date"
)

func TestFrameStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	f := NewRawFrame("comdinheiro", ingestDates())
	if err := f.AddColumn("FUND", []string{"0,1", "0,2", "0,3"}); err != nil {
		t.Fatal(err)
	}
	if err := SaveFrame(dir, f); err != nil {
		t.Fatal(err)
	}

	back, err := LoadFrame(dir, "comdinheiro")
	if err != nil {
		t.Fatal(err)
	}
	if back.Source != "comdinheiro" || len(back.Dates) != 3 {
		t.Fatalf("loaded %+v", back)
	}
	if back.Dates[0] != date.MustParse("2025-01-02") {
		t.Errorf("Dates[0]=%s", back.Dates[0])
	}
	if got := back.Columns["FUND"][2]; got != "0,3" {
		t.Errorf("raw token altered by the store: %q", got)
	}
}

func TestLoadFrames(t *testing.T) {
	dir := t.TempDir()
	for _, source := range []string{"yahoo", "comdinheiro"} {
		f := NewRawFrame(source, ingestDates())
		f.AddColumn("X", []string{"1", "2", "3"})
		if err := SaveFrame(dir, f); err != nil {
			t.Fatal(err)
		}
	}
	frames, err := LoadFrames(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames", len(frames))
	}
	if frames[0].Source != "comdinheiro" || frames[1].Source != "yahoo" {
		t.Errorf("order=%s,%s", frames[0].Source, frames[1].Source)
	}
}

func TestSaveFrameRequiresSource(t *testing.T) {
	f := NewRawFrame("", nil)
	if err := SaveFrame(t.TempDir(), f); err == nil {
		t.Error("nameless frame accepted")
	}
}

func TestLoadFrameMissing(t *testing.T) {
	if _, err := LoadFrame(t.TempDir(), "nope"); err == nil {
		t.Error("expected error for missing frame")
	}
}
