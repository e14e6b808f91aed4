package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/fontconf/core"
	"github.com/npillmayer/fontconf/core/font"
	"github.com/npillmayer/schuko"
)

// ByteSource produces the bytes of one candidate font resource.
type ByteSource interface {
	ReadAll() ([]byte, error)
	DisplayPath() string
}

// Enumerator yields candidate font resources. Implementations
// encapsulate platform conventions; the core never walks directories
// itself.
type Enumerator interface {
	Enumerate(sink font.TraceSink) []ByteSource
}

// fileSource is a disk-backed ByteSource.
type fileSource struct {
	path string
}

func (fsrc fileSource) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(fsrc.path)
	if err != nil {
		return nil, core.IOError(err, "cannot read %s", fsrc.path)
	}
	return data, nil
}

func (fsrc fileSource) DisplayPath() string {
	return fsrc.path
}

// FontDirectories returns the OS-dependent usual directories for fonts.
// Directories which do not exist are filtered out; on WASM hosts the
// list is empty and fonts have to be registered in memory.
func FontDirectories() []string {
	var dirs []string
	switch runtime.GOOS {
	case "linux", "openbsd", "freebsd", "netbsd", "dragonfly", "solaris", "illumos":
		dirs = []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
		}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs,
				filepath.Join(home, ".fonts"),
				filepath.Join(home, ".local", "share", "fonts"))
		}
		if dataPaths := os.Getenv("XDG_DATA_DIRS"); dataPaths != "" {
			for _, dataPath := range filepath.SplitList(dataPaths) {
				dirs = append(dirs, filepath.Join(dataPath, "fonts"))
			}
		}
	case "darwin":
		dirs = []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
		}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	case "windows":
		sysRoot := os.Getenv("SYSTEMROOT")
		if sysRoot == "" {
			sysRoot = os.Getenv("WINDIR")
		}
		if sysRoot != "" {
			dirs = append(dirs, filepath.Join(sysRoot, "Fonts"))
		}
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			dirs = append(dirs, filepath.Join(profile,
				"AppData", "Local", "Microsoft", "Windows", "Fonts"))
		}
	case "js":
		// no file system to speak of; fonts are registered in memory
		return nil
	}
	var valid []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		dir, err := filepath.Abs(dir)
		if err != nil || seen[dir] {
			continue
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			valid = append(valid, dir)
		}
	}
	sort.Strings(valid)
	return valid
}

// systemEnumerator walks the platform font directories, augmented by
// go-findfont's search paths and by directories configured under the
// key 'font-dirs'.
type systemEnumerator struct {
	conf schuko.Configuration
}

// SystemEnumerator returns the enumerator for the running platform.
// conf may be nil; if set, the configuration key 'font-dirs' adds
// search directories (list-separated).
func SystemEnumerator(conf schuko.Configuration) Enumerator {
	return systemEnumerator{conf: conf}
}

func (se systemEnumerator) Enumerate(sink font.TraceSink) []ByteSource {
	dirs := FontDirectories()
	if se.conf != nil {
		if extra := se.conf.GetString("font-dirs"); extra != "" {
			dirs = append(dirs, filepath.SplitList(extra)...)
		}
	}
	visited := make(map[string]bool)
	var sources []ByteSource
	for _, dir := range dirs {
		sources = scanDirectory(dir, visited, sources, sink)
	}
	// findfont knows additional per-platform search paths
	if paths, err := findfont.List(); err == nil {
		for _, path := range paths {
			if isFontFile(path) && !visited[path] {
				visited[path] = true
				sources = append(sources, fileSource{path: path})
			}
		}
	} else {
		tracer().Infof("findfont listing skipped: %v", err)
	}
	tracer().Infof("enumerated %d candidate font files", len(sources))
	return sources
}

func scanDirectory(dir string, visited map[string]bool, sources []ByteSource,
	sink font.TraceSink) []ByteSource {
	//
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			tracer().Infof("%v", core.EnumerationError(err, "cannot list %s", path))
			sink.Append(font.TraceRecord{
				Level:  font.Warning,
				Path:   path,
				Reason: font.EnumerationFailure,
			})
			return filepath.SkipDir
		}
		if d.IsDir() || visited[path] {
			return nil
		}
		visited[path] = true
		if isFontFile(path) {
			sources = append(sources, fileSource{path: path})
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walkFn); err != nil {
		sink.Append(font.TraceRecord{
			Level:  font.Warning,
			Path:   dir,
			Reason: font.EnumerationFailure,
		})
	}
	return sources
}

// isFontFile accepts the container formats the default parser handles.
func isFontFile(path string) bool {
	name := filepath.Base(path)
	if name == "" || name[0] == '.' {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}

// Fixed is an enumerator over a fixed list of file paths, mainly for
// clients which manage their own font locations.
func Fixed(paths ...string) Enumerator {
	return fixedEnumerator(paths)
}

type fixedEnumerator []string

func (fe fixedEnumerator) Enumerate(font.TraceSink) []ByteSource {
	sources := make([]ByteSource, len(fe))
	for i, path := range fe {
		sources[i] = fileSource{path: path}
	}
	return sources
}
