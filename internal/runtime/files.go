package runtime

import (
	"github.com/cwbudde/go-xpost/internal/memfile"
	"github.com/cwbudde/go-xpost/internal/object"
)

// Files bundles the two Memory Files a Context owns (spec.md §3.2) and
// resolves which one a composite Object's bank bit refers to. Every
// composite constructor in this package takes a *Files instead of a single
// *memfile.File so it can allocate in either bank.
type Files struct {
	Local  *memfile.File
	Global *memfile.File
}

// Select returns the Memory File owning bank.
func (f *Files) Select(bank object.Bank) *memfile.File {
	if bank == object.Global {
		return f.Global
	}
	return f.Local
}
