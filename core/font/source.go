package font

import (
	"fmt"
	"path/filepath"
)

// Origin tells whether a font entry is backed by a file or by memory.
type Origin int8

const (
	OnDisk Origin = iota
	InMemory
)

func (o Origin) String() string {
	if o == InMemory {
		return "memory"
	}
	return "disk"
}

// Source describes where the bytes of a font live. A source is either
// disk-backed (Path set) or memory-backed (Bytes set); FontIndex selects
// the sub-font within a TTC/OTC collection. Sources are never mutated by
// the index, and memory bytes are shared by reference, never copied.
type Source struct {
	Path       string // file path for disk sources
	FontIndex  int    // 0-based sub-font index within a collection
	Bytes      []byte // raw data for memory sources
	ExternalID string // caller-supplied label for memory sources
}

// DiskSource describes a font inside the file at path.
func DiskSource(path string, fontIndex int) Source {
	return Source{Path: path, FontIndex: fontIndex}
}

// MemorySource describes a font inside a caller-owned byte buffer.
func MemorySource(data []byte, fontIndex int, externalID string) Source {
	return Source{Bytes: data, FontIndex: fontIndex, ExternalID: externalID}
}

// Origin returns the source's origin kind.
func (s Source) Origin() Origin {
	if s.Path == "" {
		return InMemory
	}
	return OnDisk
}

// CacheKey returns the deduplication key for disk sources: the canonical
// file path combined with the sub-font index. Memory sources have no
// dedup key and return "".
func (s Source) CacheKey() string {
	if s.Origin() == InMemory {
		return ""
	}
	p := s.Path
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	return fmt.Sprintf("%s#%d", p, s.FontIndex)
}

// Label returns a human-readable source label for trace records.
func (s Source) Label() string {
	if s.Origin() == InMemory {
		if s.ExternalID != "" {
			return "mem:" + s.ExternalID
		}
		return "mem:?"
	}
	if s.FontIndex > 0 {
		return fmt.Sprintf("%s#%d", s.Path, s.FontIndex)
	}
	return s.Path
}
