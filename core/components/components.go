package components

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"github.com/dmitrymomot/postcard/core/compiler"
	"github.com/dmitrymomot/postcard/core/runtime"
	"github.com/dmitrymomot/postcard/pkg/naming"
)

//go:embed templates/*.card
var templateFS embed.FS

var (
	once     sync.Once
	registry map[string]*runtime.Definition
)

// Registry returns the built-in definitions keyed by canonical name. The
// map is compiled once per process and shared between renders; callers must
// treat it as read-only and register overrides on their own render instead.
func Registry() map[string]*runtime.Definition {
	once.Do(func() {
		registry = compileAll()
	})
	return registry
}

// Definitions returns the built-ins sorted by name, ready for
// runtime.WithComponents.
func Definitions() []*runtime.Definition {
	reg := Registry()
	defs := make([]*runtime.Definition, 0, len(reg))
	for _, def := range reg {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Lookup resolves a built-in by name or template tag, canonicalizing the
// same way the render registry does.
func Lookup(name string) (*runtime.Definition, bool) {
	def, ok := Registry()[naming.Canonical(name)]
	return def, ok
}

// compileAll compiles every embedded source. The sources ship with the
// binary, so a failure is a packaging bug and panics, mirroring
// template.Must.
func compileAll() map[string]*runtime.Definition {
	paths, err := fs.Glob(templateFS, "templates/*.card")
	if err != nil {
		panic(fmt.Sprintf("components: glob embedded templates: %v", err))
	}

	defs := make(map[string]*runtime.Definition, len(paths))
	for _, p := range paths {
		src, err := templateFS.ReadFile(p)
		if err != nil {
			panic(fmt.Sprintf("components: read %s: %v", p, err))
		}
		def, err := compiler.Compile(path.Base(p), string(src), compiler.WithFilename(p))
		if err != nil {
			panic(fmt.Sprintf("components: compile %s: %v", p, err))
		}
		defs[def.Name] = def
	}
	return defs
}
