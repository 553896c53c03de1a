// Package toolchain defines the toolchain selection contract used during
// variant resolution, plus a selector that probes the host for real tools.
package toolchain

import "git.home.luguber.info/inful/libforge/internal/dimension"

// Platform describes a concrete target platform a binary is produced for.
type Platform struct {
	OS   dimension.OsFamily
	Arch string
}

func (p Platform) String() string {
	if p.Arch == "" {
		return p.OS.String()
	}
	return p.OS.String() + "/" + p.Arch
}

// Toolchain identifies a compiler toolchain located on the host.
type Toolchain struct {
	Name    string // e.g. "clang", "gcc", "msvc"
	Version string // best-effort, may be empty
}

// ToolProvider resolves the concrete tool executables of a selected toolchain.
type ToolProvider interface {
	CompilerPath() string
	ArchiverPath() string
	LinkerPath() string
}

// Selection is the result of a successful toolchain lookup: the resolved
// target platform together with the toolchain and its tools.
type Selection struct {
	TargetPlatform Platform
	Toolchain      Toolchain
	Tools          ToolProvider
}

// Selector locates a toolchain able to produce binaries for a target
// platform. Implementations return a toolchain-category error when no
// suitable toolchain exists; they are only ever consulted for platforms the
// caller believes the host can build for.
type Selector interface {
	Select(target Platform) (*Selection, error)
}
