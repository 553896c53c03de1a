package toolchain

import (
	"fmt"
	"log/slog"
	"os/exec"

	"git.home.luguber.info/inful/libforge/internal/dimension"
	ferrors "git.home.luguber.info/inful/libforge/internal/errors"
	"git.home.luguber.info/inful/libforge/internal/logfields"
)

// candidate pairs a compiler name with the companion tools it implies.
type candidate struct {
	name     string
	compiler string
	archiver string
	linker   string
}

// Probe order matters: first hit wins.
var unixCandidates = []candidate{
	{name: "clang", compiler: "clang", archiver: "ar", linker: "clang"},
	{name: "gcc", compiler: "gcc", archiver: "ar", linker: "gcc"},
}

var windowsCandidates = []candidate{
	{name: "msvc", compiler: "cl", archiver: "lib", linker: "link"},
	{name: "gcc", compiler: "gcc", archiver: "ar", linker: "gcc"},
}

// HostSelector locates toolchains installed on the machine the process runs
// on by probing PATH. It can only ever satisfy lookups for the host platform.
type HostSelector struct {
	host   dimension.OsFamily
	lookup func(file string) (string, error)
}

// NewHostSelector returns a selector for the current host.
func NewHostSelector() *HostSelector {
	return &HostSelector{host: dimension.HostOsFamily(), lookup: exec.LookPath}
}

// NewHostSelectorFor returns a selector with an explicit host family and
// lookup function. Used by tests to simulate other hosts.
func NewHostSelectorFor(host dimension.OsFamily, lookup func(string) (string, error)) *HostSelector {
	if lookup == nil {
		lookup = exec.LookPath
	}
	return &HostSelector{host: host, lookup: lookup}
}

// Host returns the OS family this selector can build for.
func (s *HostSelector) Host() dimension.OsFamily { return s.host }

// Select probes PATH for a toolchain targeting the given platform.
func (s *HostSelector) Select(target Platform) (*Selection, error) {
	if !target.OS.Matches(s.host) {
		return nil, ferrors.ToolchainNotFound(target.String(),
			fmt.Errorf("host %s cannot target %s", s.host, target.OS))
	}

	candidates := unixCandidates
	if s.host.Matches(dimension.Windows) {
		candidates = windowsCandidates
	}

	var probeErr error
	for _, c := range candidates {
		compiler, err := s.lookup(c.compiler)
		if err != nil {
			probeErr = err
			continue
		}
		archiver, err := s.lookup(c.archiver)
		if err != nil {
			probeErr = err
			continue
		}
		linker, err := s.lookup(c.linker)
		if err != nil {
			probeErr = err
			continue
		}
		slog.Debug("Selected host toolchain",
			logfields.Toolchain(c.name),
			logfields.OsFamily(target.OS.String()))
		return &Selection{
			TargetPlatform: target,
			Toolchain:      Toolchain{Name: c.name},
			Tools:          pathTools{compiler: compiler, archiver: archiver, linker: linker},
		}, nil
	}
	return nil, ferrors.ToolchainNotFound(target.String(), probeErr)
}

// pathTools is a ToolProvider backed by absolute paths found on PATH.
type pathTools struct {
	compiler string
	archiver string
	linker   string
}

func (t pathTools) CompilerPath() string { return t.compiler }
func (t pathTools) ArchiverPath() string { return t.archiver }
func (t pathTools) LinkerPath() string   { return t.linker }
