package scan

import (
	"context"
	"testing"
	"time"

	"github.com/npillmayer/fontconf/core"
	"github.com/npillmayer/fontconf/core/font"
	"github.com/npillmayer/fontconf/core/font/fontindex"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// --- Fakes -----------------------------------------------------------------

// fakeSource serves bytes which fakeParser understands: the payload is
// the family name, or "!" to signal a parse failure.
type fakeSource struct {
	path    string
	payload string
	ioErr   bool
}

func (fs fakeSource) ReadAll() ([]byte, error) {
	if fs.ioErr {
		return nil, core.IOError(nil, "cannot read %s", fs.path)
	}
	return []byte(fs.payload), nil
}

func (fs fakeSource) DisplayPath() string { return fs.path }

type fakeEnumerator []fakeSource

func (fe fakeEnumerator) Enumerate(font.TraceSink) []ByteSource {
	sources := make([]ByteSource, len(fe))
	for i, fs := range fe {
		sources[i] = fs
	}
	return sources
}

// fakeParser treats the byte payload as a single-font family name.
type fakeParser struct {
	delay time.Duration
}

func (fp fakeParser) NumFonts(data []byte) (int, error) {
	if len(data) == 0 || data[0] == '!' {
		return 0, core.ParseError(nil, "fake parse failure")
	}
	return 1, nil
}

func (fp fakeParser) Parse(data []byte, fontIndex int) (*font.ParsedFont, error) {
	if fp.delay > 0 {
		time.Sleep(fp.delay)
	}
	if len(data) == 0 || data[0] == '!' {
		return nil, core.ParseError(nil, "fake parse failure")
	}
	family := string(data)
	return &font.ParsedFont{
		Names: font.Names{
			Full:      family + " Regular",
			Family:    family,
			Subfamily: "Regular",
		},
		Style:    font.Axes{Weight: font.WeightNormal, Stretch: font.StretchNormal},
		Coverage: font.NewCoverage(font.CodeRange{Low: 0x20, High: 0x7e}),
	}, nil
}

func (fp fakeParser) ParseNames(data []byte, fontIndex int) (font.Names, error) {
	if len(data) == 0 || data[0] == '!' {
		return font.Names{}, core.ParseError(nil, "fake parse failure")
	}
	return font.Names{Family: string(data)}, nil
}

// --- Tests -----------------------------------------------------------------

func TestBuildCollectsAndSkips(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	ix := Build(context.Background(), Options{
		Parser: fakeParser{},
		Enumerator: fakeEnumerator{
			{path: "/fonts/bbb.ttf", payload: "Bravo"},
			{path: "/fonts/aaa.ttf", payload: "Alpha"},
			{path: "/fonts/bad.ttf", payload: "!"},
			{path: "/fonts/gone.ttf", payload: "Gone", ioErr: true},
		},
	})
	require.Equal(t, 2, ix.Len(), "two good fonts expected")
	warnings := 0
	for _, tr := range ix.Diagnostics() {
		if tr.Level == font.Warning {
			warnings++
		}
	}
	require.Equal(t, 2, warnings, "one warning per bad file expected")
}

func TestBuildDeterministicOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	enum := fakeEnumerator{
		{path: "/fonts/zeta.ttf", payload: "Zeta"},
		{path: "/fonts/alpha.ttf", payload: "Alpha"},
		{path: "/fonts/mid.ttf", payload: "Mid"},
	}
	ix := Build(context.Background(), Options{Parser: fakeParser{}, Enumerator: enum, Workers: 4})
	infos := ix.List()
	require.Equal(t, 3, len(infos))
	// ids are assigned after sorting by family, so mint order is
	// alphabetical regardless of worker interleaving
	require.Equal(t, "Alpha", infos[0].Family)
	require.Equal(t, "Mid", infos[1].Family)
	require.Equal(t, "Zeta", infos[2].Family)
}

func TestBuildWithFamilies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	enum := fakeEnumerator{
		{path: "/fonts/a.ttf", payload: "Wanted"},
		{path: "/fonts/b.ttf", payload: "Unwanted"},
	}
	ix := BuildWithFamilies(context.Background(),
		Options{Parser: fakeParser{}, Enumerator: enum}, []string{"wanted"})
	require.Equal(t, 1, ix.Len())
	infos := ix.List()
	require.Equal(t, "Wanted", infos[0].Family)
}

func TestBuildFileTimeout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	enum := fakeEnumerator{
		{path: "/fonts/slow.ttf", payload: "Slow"},
	}
	ix := Build(context.Background(), Options{
		Parser:      fakeParser{delay: 200 * time.Millisecond},
		Enumerator:  enum,
		FileTimeout: 20 * time.Millisecond,
	})
	require.Equal(t, 0, ix.Len(), "the slow file must be skipped")
	require.NotEmpty(t, ix.Diagnostics())
	require.Equal(t, font.Timeout, ix.Diagnostics()[0].Reason)
}

func TestBuildDeadline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	var enum fakeEnumerator
	for i := 0; i < 50; i++ {
		enum = append(enum, fakeSource{
			path:    "/fonts/font-" + string(rune('a'+i%26)) + string(rune('a'+i/26)) + ".ttf",
			payload: "Fam",
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	ix := Build(ctx, Options{
		Parser:     fakeParser{delay: 10 * time.Millisecond},
		Enumerator: enum,
		Workers:    1,
	})
	// whatever was inserted is usable; unfinished files are warned about
	timeouts := 0
	for _, tr := range ix.Diagnostics() {
		if tr.Reason == font.Timeout {
			timeouts++
		}
	}
	require.Greater(t, timeouts, 0, "expected warnings for unfinished files")
	require.Less(t, ix.Len(), 50)
}

func TestRegisterMemoryFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	ix := fontindex.New()
	gen := ix.Generation()
	ids := RegisterMemoryFonts(ix, fakeParser{}, []MemoryFont{
		{Data: []byte("InMem"), ExternalID: "app-font"},
		{Data: []byte("!"), ExternalID: "bad"},
	})
	require.Equal(t, 1, len(ids))
	e, ok := ix.Get(ids[0])
	require.True(t, ok)
	require.Equal(t, font.InMemory, e.Origin)
	require.Equal(t, "InMem", e.Names.Family)
	require.Greater(t, ix.Generation(), gen, "registration must advance the generation")
	require.NotEmpty(t, ix.Diagnostics(), "the bad resource must be warned about")
}

func TestBuildSeedsGoFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.scan")
	defer teardown()
	//
	ix := Build(context.Background(), Options{
		Enumerator:  fakeEnumerator{},
		SeedGoFonts: true,
	})
	require.Equal(t, 4, ix.Len(), "the four Go fonts must be registered")
	found := false
	for _, info := range ix.List() {
		if info.Family == "Go Mono" {
			found = true
			require.True(t, info.Style.Monospace)
		}
	}
	require.True(t, found, "expected Go Mono among the seeded fonts")
}
