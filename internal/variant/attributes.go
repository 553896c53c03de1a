package variant

import "git.home.luguber.info/inful/libforge/internal/dimension"

// AttributeUsage distinguishes the two consumption contexts a variant
// publishes attributes for.
type AttributeUsage string

const (
	UsageLink    AttributeUsage = "native-link"
	UsageRuntime AttributeUsage = "native-runtime"
)

// AttributeTag is the fixed-shape attribute record attached to a variant for
// one usage. Every field is always present; there is no dynamic attribute bag.
type AttributeTag struct {
	Usage      AttributeUsage
	Debuggable bool
	Optimized  bool
	Linkage    dimension.Linkage
	OS         dimension.OsFamily
}

// attributesFor builds the link and runtime tags for one (profile, os,
// linkage) triple. The two tags differ only in usage.
func attributesFor(profile dimension.BuildProfile, os dimension.OsFamily, linkage dimension.Linkage) (link, runtime AttributeTag) {
	link = AttributeTag{
		Usage:      UsageLink,
		Debuggable: profile.Debuggable,
		Optimized:  profile.Optimized,
		Linkage:    linkage,
		OS:         os,
	}
	runtime = link
	runtime.Usage = UsageRuntime
	return link, runtime
}
