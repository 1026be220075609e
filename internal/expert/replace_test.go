package expert

import (
	"reflect"
	"testing"

	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

func TestAlternatives(t *testing.T) {
	e := New(Options{})
	catalog := testCatalog()
	displayed := []string{"p2", "p4", "p3"}

	alts := e.Alternatives(catalog, openPreferences(), displayed)
	got := IDs(alts)
	want := IDs(e.Recommend(catalog, openPreferences(), displayed...))

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Alternatives = %v, want %v", got, want)
	}
	for _, id := range displayed {
		for _, alt := range got {
			if alt == id {
				t.Errorf("displayed %s offered as alternative", id)
			}
		}
	}
}

func TestAutoReplace(t *testing.T) {
	e := New(Options{})
	catalog := testCatalog()
	prefs := openPreferences()

	shortlist := e.Top(catalog, prefs, 3)
	displayed := IDs(shortlist)
	slot := displayed[1]

	rec, ok := e.AutoReplace(catalog, prefs, displayed, slot)
	if !ok {
		t.Fatal("expected a replacement")
	}

	// Best of what is not displayed, which is the 4th overall
	all := e.Recommend(catalog, prefs)
	if rec.PerfumeID != all[3].PerfumeID {
		t.Errorf("replacement = %s, want %s", rec.PerfumeID, all[3].PerfumeID)
	}

	updated := ReplaceSlot(shortlist, slot, rec)
	if updated[1].PerfumeID != rec.PerfumeID {
		t.Errorf("slot not replaced: %v", IDs(updated))
	}
	if updated[0] != shortlist[0] || updated[2] != shortlist[2] {
		t.Errorf("other slots changed: %v", IDs(updated))
	}
	if shortlist[1].PerfumeID != slot {
		t.Error("ReplaceSlot mutated its input")
	}
}

func TestAutoReplace_SlotNotInDisplayed(t *testing.T) {
	e := New(Options{})
	catalog := testCatalog()

	rec, ok := e.AutoReplace(catalog, openPreferences(), []string{"p2"}, "p4")
	if !ok {
		t.Fatal("expected a replacement")
	}
	if rec.PerfumeID == "p2" || rec.PerfumeID == "p4" {
		t.Errorf("replacement %s should not be displayed or the slot itself", rec.PerfumeID)
	}
}

func TestAutoReplace_NothingLeft(t *testing.T) {
	e := New(Options{})
	catalog := testCatalog()[:2]

	if _, ok := e.AutoReplace(catalog, openPreferences(), []string{"p1", "p2"}, "p1"); ok {
		t.Error("expected no replacement when every perfume is displayed")
	}
}

func TestManualReplace(t *testing.T) {
	e := New(Options{})
	catalog := testCatalog()
	prefs := openPreferences()
	displayed := []string{"p4", "p2", "p3"}

	tests := []struct {
		name   string
		slot   string
		chosen string
		wantOK bool
	}{
		{"choose an undisplayed perfume", "p2", "p5", true},
		{"keep the slot's own perfume", "p2", "p2", true},
		{"choose another displayed perfume", "p2", "p4", false},
		{"choose unknown perfume", "p2", "missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := e.ManualReplace(catalog, prefs, displayed, tt.slot, tt.chosen)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && rec.PerfumeID != tt.chosen {
				t.Errorf("PerfumeID = %s, want %s", rec.PerfumeID, tt.chosen)
			}
			if ok && rec.Explanation == "" {
				t.Error("expected an explanation")
			}
		})
	}
}

func TestManualReplace_FilteredOut(t *testing.T) {
	e := New(Options{})
	prefs := openPreferences()
	prefs.DislikedFamilies = []string{"Citrus"}

	if _, ok := e.ManualReplace(testCatalog(), prefs, []string{"p1"}, "p1", "p5"); ok {
		t.Error("expected a filtered-out perfume to be rejected")
	}
}

func TestReplaceSlot_UnknownSlot(t *testing.T) {
	recs := []perfume.Recommendation{{PerfumeID: "a"}, {PerfumeID: "b"}}
	got := ReplaceSlot(recs, "z", perfume.Recommendation{PerfumeID: "c"})
	if !reflect.DeepEqual(got, recs) {
		t.Errorf("ReplaceSlot with unknown slot changed the list: %v", IDs(got))
	}
}
