package lang

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"
)

//go:embed data
var builtinData embed.FS

var loadBuiltin = sync.OnceValues(func() (*Registry, error) {
	sub, err := fs.Sub(builtinData, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
})

// LoadBuiltin returns the registry built from the embedded rule tables. It
// is constructed on first use and shared for the life of the process.
func LoadBuiltin() (*Registry, error) {
	return loadBuiltin()
}

// Builtin is LoadBuiltin for callers that treat broken embedded tables as a
// programming error.
func Builtin() *Registry {
	reg, err := loadBuiltin()
	if err != nil {
		panic(fmt.Sprintf("lang: embedded rule tables: %v", err))
	}
	return reg
}
