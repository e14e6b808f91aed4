package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontconf/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestIsFontFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	for path, want := range map[string]bool{
		"/fonts/DejaVuSans.ttf":  true,
		"/fonts/SourceSans.OTF":  true,
		"/fonts/Helvetica.ttc":   true,
		"/fonts/fonts.dir":       false,
		"/fonts/.hidden.ttf":     false,
		"/fonts/metrics.afm":     false,
		"/fonts/bitmap.pcf.gz":   false,
		"/fonts/type1.pfb":       false,
	} {
		if got := isFontFile(path); got != want {
			t.Errorf("expected isFontFile(%q) = %v, have %v", path, want, got)
		}
	}
}

func TestFontDirectoriesExist(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	for _, dir := range FontDirectories() {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("expected %s to be an existing directory", dir)
		}
	}
}

func TestFixedEnumerator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	sources := Fixed("/fonts/a.ttf", "/fonts/b.otf").Enumerate(font.Discard)
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, have %d", len(sources))
	}
	if sources[0].DisplayPath() != "/fonts/a.ttf" {
		t.Errorf("expected display path to round-trip")
	}
}

func TestScanDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	dir := t.TempDir()
	for _, name := range []string{"one.ttf", "two.otf", "ignore.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "three.ttc"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	rec := &font.Recorder{}
	sources := scanDirectory(dir, make(map[string]bool), nil, rec)
	if len(sources) != 3 {
		t.Errorf("expected 3 font files from the walk, have %d", len(sources))
	}
}
