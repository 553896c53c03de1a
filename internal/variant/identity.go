package variant

import "git.home.luguber.info/inful/libforge/internal/dimension"

// StringProvider is a deferred string value, evaluated each time it is read.
// Group and version coordinates are routinely finalized after the component
// is declared, so identities must not capture them eagerly.
type StringProvider func() string

// FixedString returns a provider for an already-known value.
func FixedString(s string) StringProvider {
	return func() string { return s }
}

// Identity names one variant and carries its publishable attributes.
// Name is unique within a single resolution pass.
type Identity struct {
	Name              string
	BaseName          string
	Debuggable        bool
	Optimized         bool
	OS                dimension.OsFamily
	LinkAttributes    AttributeTag
	RuntimeAttributes AttributeTag

	group   StringProvider
	version StringProvider
}

// NewIdentity constructs an identity with lazily-resolved group and version.
func NewIdentity(name, baseName string, group, version StringProvider, profile dimension.BuildProfile, os dimension.OsFamily, link, runtime AttributeTag) Identity {
	if group == nil {
		group = FixedString("")
	}
	if version == nil {
		version = FixedString("")
	}
	return Identity{
		Name:              name,
		BaseName:          baseName,
		Debuggable:        profile.Debuggable,
		Optimized:         profile.Optimized,
		OS:                os,
		LinkAttributes:    link,
		RuntimeAttributes: runtime,
		group:             group,
		version:           version,
	}
}

// Group resolves the publication group coordinate at read time.
func (id Identity) Group() string { return id.group() }

// Version resolves the publication version coordinate at read time.
func (id Identity) Version() string { return id.version() }
