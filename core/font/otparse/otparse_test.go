package otparse

import (
	"testing"

	"github.com/npillmayer/fontconf/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.fonts")
	defer teardown()
	//
	p := New()
	n, err := p.NumFonts(goregular.TTF)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	parsed, err := p.Parse(goregular.TTF, 0)
	require.NoError(t, err)
	t.Logf("parsed %q / %q", parsed.Names.Family, parsed.Names.Full)
	require.Equal(t, "Go", parsed.Names.Family)
	require.NotEmpty(t, parsed.Names.Full)
	require.False(t, parsed.Style.Italic)
	require.False(t, parsed.Style.Monospace)
	require.Equal(t, font.WeightNormal, parsed.Style.Weight)
	require.True(t, parsed.Coverage.IsWellFormed())
	for _, r := range []rune{'A', 'z', '0', 'ä'} {
		require.True(t, parsed.Coverage.Contains(r), "expected coverage of %#U", r)
	}
	require.False(t, parsed.Coverage.Contains(0x4e2d),
		"Go Regular has no CJK glyphs")
}

func TestParseGoMono(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.fonts")
	defer teardown()
	//
	parsed, err := New().Parse(gomono.TTF, 0)
	require.NoError(t, err)
	require.True(t, parsed.Style.Monospace, "Go Mono must be detected as monospaced")
}

func TestParseNamesFastPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.fonts")
	defer teardown()
	//
	names, err := New().ParseNames(goregular.TTF, 0)
	require.NoError(t, err)
	require.Equal(t, "Go", names.BestFamily())
}

func TestParseGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconf.fonts")
	defer teardown()
	//
	p := New()
	if _, err := p.Parse([]byte("this is not a font"), 0); err == nil {
		t.Errorf("expected garbage input to fail parsing")
	}
	if _, err := p.NumFonts([]byte{0x00}); err == nil {
		t.Errorf("expected truncated input to fail")
	}
	if _, err := p.Parse(goregular.TTF, 3); err == nil {
		t.Errorf("expected out-of-bounds sub-font index to fail")
	}
}
