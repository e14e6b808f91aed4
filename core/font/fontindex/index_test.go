package fontindex

import (
	"testing"

	"github.com/npillmayer/fontconf/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// testEntry builds a disk-backed entry for tests.
func testEntry(family, subfamily, path string, axes font.Axes, cov font.Coverage) *font.Entry {
	full := family
	if subfamily != "" {
		full = family + " " + subfamily
	}
	return &font.Entry{
		Source: font.DiskSource(path, 0),
		Names: font.Names{
			Full:      full,
			Family:    family,
			Subfamily: subfamily,
		},
		Style:    axes,
		Coverage: cov,
	}
}

func latinCoverage() font.Coverage {
	return font.NewCoverage(font.CodeRange{Low: 0x20, High: 0x7e})
}

func cjkCoverage() font.Coverage {
	return font.NewCoverage(
		font.CodeRange{Low: 0x20, High: 0x7e},
		font.CodeRange{Low: 0x4e00, High: 0x9fff},
	)
}

func regular() font.Axes {
	return font.Axes{Weight: font.WeightNormal, Stretch: font.StretchNormal}
}

func TestIndexInsertAndGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.index")
	defer teardown()
	//
	ix := New()
	id := ix.Insert(testEntry("Arial", "Regular", "/fonts/arial.ttf", regular(), latinCoverage()))
	if id.IsZero() {
		t.Fatalf("expected insert to mint an ID")
	}
	e, ok := ix.Get(id)
	if !ok {
		t.Fatalf("expected to get entry back")
	}
	if e.Names.Family != "Arial" {
		t.Errorf("expected family Arial, have %s", e.Names.Family)
	}
	if e.Origin != font.OnDisk {
		t.Errorf("expected disk origin")
	}
	if src, ok := ix.Source(id); !ok || src.Path != "/fonts/arial.ttf" {
		t.Errorf("expected source path to round-trip, have %v", src)
	}
	if ix.Generation() == 0 {
		t.Errorf("expected generation to advance on insert")
	}
}

func TestIndexDedup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.index")
	defer teardown()
	//
	ix := New()
	id1 := ix.Insert(testEntry("Arial", "Regular", "/fonts/arial.ttf", regular(), latinCoverage()))
	id2 := ix.Insert(testEntry("Arial", "Regular", "/fonts/arial.ttf", regular(), latinCoverage()))
	if id1 != id2 {
		t.Errorf("expected same ID for duplicate disk source, have %v and %v", id1, id2)
	}
	if ix.Len() != 1 {
		t.Errorf("expected 1 entry after duplicate insert, have %d", ix.Len())
	}
}

func TestIndexCoverageInvariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.index")
	defer teardown()
	//
	ix := New()
	entry := testEntry("Scrambled", "", "/fonts/scrambled.ttf", regular(),
		font.Coverage{
			{Low: 0x61, High: 0x7a},
			{Low: 0x41, High: 0x5a},
			{Low: 0x50, High: 0x60},
		})
	id := ix.Insert(entry)
	e, _ := ix.Get(id)
	if !e.Coverage.IsWellFormed() {
		t.Errorf("expected insert to normalize coverage, have %v", e.Coverage)
	}
}

func TestIndexListOrdered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.index")
	defer teardown()
	//
	ix := New()
	ix.Insert(testEntry("Zilla", "", "/fonts/zilla.ttf", regular(), latinCoverage()))
	ix.Insert(testEntry("Arial", "", "/fonts/arial.ttf", regular(), latinCoverage()))
	ix.Insert(testEntry("Menlo", "", "/fonts/menlo.ttf", regular(), latinCoverage()))
	infos := ix.List()
	if len(infos) != 3 {
		t.Fatalf("expected 3 infos, have %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if !infos[i-1].ID.Less(infos[i].ID) {
			t.Errorf("expected List to iterate in mint order")
		}
	}
}

func TestIndexFamiliesWithPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.index")
	defer teardown()
	//
	ix := New()
	ix.Insert(testEntry("DejaVu Sans", "", "/fonts/dvs.ttf", regular(), latinCoverage()))
	ix.Insert(testEntry("DejaVu Serif", "", "/fonts/dvr.ttf", regular(), latinCoverage()))
	ix.Insert(testEntry("Arial", "", "/fonts/arial.ttf", regular(), latinCoverage()))
	families := ix.FamiliesWithPrefix("DejaVu")
	if len(families) != 2 {
		t.Errorf("expected 2 DejaVu families, have %v", families)
	}
	if fams := ix.FamiliesWithPrefix("Helvet"); len(fams) != 0 {
		t.Errorf("expected no Helvetica families, have %v", fams)
	}
}

func TestIndexAllMatching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.index")
	defer teardown()
	//
	ix := New()
	mono := regular()
	mono.Monospace = true
	ix.Insert(testEntry("Menlo", "", "/fonts/menlo.ttf", mono, latinCoverage()))
	ix.Insert(testEntry("Arial", "", "/fonts/arial.ttf", regular(), latinCoverage()))
	monos := ix.AllMatching(func(e *font.Entry) bool {
		return e.Style.Monospace
	})
	if len(monos) != 1 || monos[0].Names.Family != "Menlo" {
		t.Errorf("expected exactly Menlo to be monospaced, have %d entries", len(monos))
	}
}
