package variant

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/libforge/internal/dimension"
	ferrors "git.home.luguber.info/inful/libforge/internal/errors"
	"git.home.luguber.info/inful/libforge/internal/logfields"
	"git.home.luguber.info/inful/libforge/internal/metrics"
	"git.home.luguber.info/inful/libforge/internal/toolchain"
	"git.home.luguber.info/inful/libforge/internal/util/sets"
)

// Component is the declarative description of a native-library component:
// what to call it, which dimensions to span, and where its publication
// coordinates come from. Group and Version stay lazy so a pass can run
// before those values are finalized.
type Component struct {
	BaseName         string
	Linkages         []dimension.Linkage
	OperatingSystems []dimension.OsFamily
	Group            StringProvider
	Version          StringProvider
}

// Resolver expands a Component into its full variant matrix. One resolution
// pass runs on one goroutine and populates a fresh Publication; the resolver
// itself holds no per-pass state.
type Resolver struct {
	toolchains toolchain.Selector
	host       dimension.OsFamily
	recorder   metrics.Recorder
}

// NewResolver creates a resolver that classifies buildability against the
// given host OS family and selects toolchains through sel.
func NewResolver(sel toolchain.Selector, host dimension.OsFamily, rec metrics.Recorder) *Resolver {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Resolver{toolchains: sel, host: host, recorder: rec}
}

// Resolve produces the publication for comp: one variant per
// (profile, os, linkage) triple, profiles outermost, linkage innermost.
// Variants for the host OS carry a binary handle; the rest are recorded
// descriptor-only. Fails before building anything when a requested dimension
// set is empty, and whenever the host platform itself has no toolchain.
func (r *Resolver) Resolve(comp Component) (*Publication, error) {
	start := time.Now()

	linkages := dedupe(comp.Linkages)
	osFamilies := dedupe(comp.OperatingSystems)
	if len(linkages) == 0 {
		return nil, ferrors.EmptyDimension("linkage")
	}
	if len(osFamilies) == 0 {
		return nil, ferrors.EmptyDimension("operating system")
	}

	sharedRequested := sets.New(linkages...).Has(dimension.Shared)
	pub := &Publication{BaseName: comp.BaseName}

	for _, profile := range dimension.DefaultBuildProfiles {
		for _, os := range osFamilies {
			for _, linkage := range linkages {
				osSuffix := dimension.Suffix(os.String(), len(osFamilies) > 1)
				linkageSuffix := dimension.Suffix(string(linkage), len(linkages) > 1)
				name := profile.Name + linkageSuffix + osSuffix

				link, runtime := attributesFor(profile, os, linkage)
				identity := NewIdentity(name, comp.BaseName, comp.Group, comp.Version, profile, os, link, runtime)

				if !os.Matches(r.host) {
					// Known, but not buildable on this host.
					pub.AddVariant(Variant{Identity: identity})
					r.recorder.IncVariantResolved(false)
					continue
				}

				// Host variants are mandatory: a missing toolchain here is the
				// consumer's problem, not a skippable one.
				selection, err := r.toolchains.Select(toolchain.Platform{OS: os})
				if err != nil {
					return nil, err
				}

				bin := &Binary{Identity: identity, Linkage: linkage, Selection: selection}
				pub.AddVariant(Variant{Identity: identity, Binary: bin})
				r.recorder.IncVariantResolved(true)

				if profile == dimension.Debug {
					switch {
					case linkage == dimension.Shared:
						// The debug shared library is the development binary.
						pub.setDevelopmentBinary(bin)
					case !sharedRequested:
						// No shared variant anywhere: fall back to debug static.
						pub.setDevelopmentBinary(bin)
					}
				}
			}
		}
	}

	elapsed := time.Since(start)
	r.recorder.ObserveResolveDuration(comp.BaseName, elapsed)
	slog.Debug("Resolved variant matrix",
		logfields.Component(comp.BaseName),
		logfields.Variants(len(pub.Variants)),
		logfields.DurationMS(float64(elapsed.Milliseconds())))
	return pub, nil
}

// dedupe drops repeated values while preserving the consumer's order.
func dedupe[T comparable](vals []T) []T {
	seen := sets.New[T]()
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		if seen.Has(v) {
			continue
		}
		seen.Add(v)
		out = append(out, v)
	}
	return out
}
