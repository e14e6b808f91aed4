package scan

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// GoFonts returns the embedded Go fonts as memory fonts. Seeding an
// index with them guarantees at least one usable face on any host,
// including WASM builds without a file system.
func GoFonts() []MemoryFont {
	return []MemoryFont{
		{Data: goregular.TTF, ExternalID: "go-regular"},
		{Data: gobold.TTF, ExternalID: "go-bold"},
		{Data: goitalic.TTF, ExternalID: "go-italic"},
		{Data: gomono.TTF, ExternalID: "go-mono"},
	}
}
