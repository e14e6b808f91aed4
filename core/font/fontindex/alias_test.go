package fontindex

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGenericFamilies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.index")
	defer teardown()
	//
	for _, generic := range []string{
		"serif", "sans-serif", "monospace", "cursive", "fantasy", "system-ui",
	} {
		if !IsGenericFamily(generic) {
			t.Errorf("expected %s to be a generic family", generic)
		}
		concrete := ExpandGeneric(generic)
		if len(concrete) == 0 {
			t.Errorf("expected %s to expand to concrete families", generic)
		}
		for _, fam := range concrete {
			if IsGenericFamily(fam) {
				t.Errorf("expansion of %s contains the generic %s", generic, fam)
			}
		}
	}
	if IsGenericFamily("arial") {
		t.Errorf("expected 'arial' to not be generic")
	}
	if exp := ExpandGeneric("Arial"); len(exp) != 1 || exp[0] != "Arial" {
		t.Errorf("expected a concrete family to expand to itself, have %v", exp)
	}
}

func TestSystemUIExpansion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.index")
	defer teardown()
	//
	families := ExpandGeneric("system-ui")
	if len(families) < len(genericAliases["sans-serif"]) {
		t.Errorf("expected system-ui to cover the sans-serif list, have %v", families)
	}
	seen := make(map[string]bool)
	for _, fam := range families {
		if seen[fam] {
			t.Errorf("expected no duplicates in the system-ui expansion, have %v", families)
		}
		seen[fam] = true
	}
	if platformUIFamily("darwin") != "Helvetica" || platformUIFamily("windows") != "Arial" {
		t.Errorf("unexpected platform UI family mapping")
	}
}
