package variant

import (
	"git.home.luguber.info/inful/libforge/internal/dimension"
	"git.home.luguber.info/inful/libforge/internal/toolchain"
)

// Binary is the materialized-binary handle for a variant the host can build:
// the linkage to produce plus the toolchain selection that will produce it.
type Binary struct {
	Identity  Identity
	Linkage   dimension.Linkage
	Selection *toolchain.Selection
}

// ArtifactFileName returns the conventional file name of the binary on its
// target platform.
func (b *Binary) ArtifactFileName() string {
	base := b.Identity.BaseName
	windows := b.Identity.OS.Matches(dimension.Windows)
	macos := b.Identity.OS.Matches(dimension.MacOS)
	if b.Linkage == dimension.Static {
		if windows {
			return base + ".lib"
		}
		return "lib" + base + ".a"
	}
	switch {
	case windows:
		return base + ".dll"
	case macos:
		return "lib" + base + ".dylib"
	default:
		return "lib" + base + ".so"
	}
}

// Variant is one matrix entry: an identity plus, when the host can build it,
// a binary handle. A nil Binary means known-but-not-buildable.
type Variant struct {
	Identity Identity
	Binary   *Binary
}

// Buildable reports whether this variant carries a materialized-binary handle.
func (v Variant) Buildable() bool { return v.Binary != nil }

// Publication collects the variants of one resolution pass in matrix order,
// plus the single development binary, when one was designated.
type Publication struct {
	BaseName          string
	Variants          []Variant
	DevelopmentBinary *Binary
}

// AddVariant appends a variant. Order is the resolver's iteration order.
func (p *Publication) AddVariant(v Variant) {
	p.Variants = append(p.Variants, v)
}

// setDevelopmentBinary designates bin for day-to-day tooling use. The
// resolver's selection rule guarantees it is called at most once per pass.
func (p *Publication) setDevelopmentBinary(bin *Binary) {
	p.DevelopmentBinary = bin
}

// BuildableVariants returns the subset of variants the host can materialize.
func (p *Publication) BuildableVariants() []Variant {
	var out []Variant
	for _, v := range p.Variants {
		if v.Buildable() {
			out = append(out, v)
		}
	}
	return out
}
