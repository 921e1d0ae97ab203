package keyforms

import (
	"embed"
	"io/fs"
)

//go:embed data
var defaultData embed.FS

// DefaultData returns the language data shipped with the package.
func DefaultData() fs.FS {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default loads the language data shipped with the package.
func Default(opts ...Option) (*Engine, error) {
	return NewFS(DefaultData(), opts...)
}
