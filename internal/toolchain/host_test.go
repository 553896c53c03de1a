package toolchain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/libforge/internal/dimension"
	ferrors "git.home.luguber.info/inful/libforge/internal/errors"
)

// lookupFrom simulates PATH containing exactly the given tools.
func lookupFrom(available ...string) func(string) (string, error) {
	onPath := map[string]bool{}
	for _, tool := range available {
		onPath[tool] = true
	}
	return func(file string) (string, error) {
		if onPath[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func TestHostSelector_PrefersClang(t *testing.T) {
	s := NewHostSelectorFor(dimension.Linux, lookupFrom("clang", "gcc", "ar"))
	sel, err := s.Select(Platform{OS: dimension.Linux})
	require.NoError(t, err)
	require.Equal(t, "clang", sel.Toolchain.Name)
	require.Equal(t, "/usr/bin/clang", sel.Tools.CompilerPath())
	require.Equal(t, "/usr/bin/ar", sel.Tools.ArchiverPath())
}

func TestHostSelector_FallsBackToGcc(t *testing.T) {
	s := NewHostSelectorFor(dimension.Linux, lookupFrom("gcc", "ar"))
	sel, err := s.Select(Platform{OS: dimension.Linux})
	require.NoError(t, err)
	require.Equal(t, "gcc", sel.Toolchain.Name)
}

func TestHostSelector_WindowsProbesMsvc(t *testing.T) {
	s := NewHostSelectorFor(dimension.Windows, lookupFrom("cl", "lib", "link"))
	sel, err := s.Select(Platform{OS: dimension.Windows})
	require.NoError(t, err)
	require.Equal(t, "msvc", sel.Toolchain.Name)
}

func TestHostSelector_NoToolchainFound(t *testing.T) {
	s := NewHostSelectorFor(dimension.Linux, lookupFrom())
	_, err := s.Select(Platform{OS: dimension.Linux})
	require.Error(t, err)
	require.True(t, ferrors.IsToolchainNotFound(err))
}

func TestHostSelector_IncompleteToolchainRejected(t *testing.T) {
	// A compiler without its archiver is not a usable toolchain.
	s := NewHostSelectorFor(dimension.Linux, lookupFrom("clang"))
	_, err := s.Select(Platform{OS: dimension.Linux})
	require.True(t, ferrors.IsToolchainNotFound(err))
}

func TestHostSelector_RejectsCrossTargets(t *testing.T) {
	s := NewHostSelectorFor(dimension.Linux, lookupFrom("clang", "ar"))
	_, err := s.Select(Platform{OS: dimension.Windows})
	require.True(t, ferrors.IsToolchainNotFound(err))
}

func TestHostSelector_MatchIsCaseInsensitive(t *testing.T) {
	s := NewHostSelectorFor(dimension.Linux, lookupFrom("clang", "ar"))
	sel, err := s.Select(Platform{OS: dimension.OsFamily("LINUX")})
	require.NoError(t, err)
	require.Equal(t, "clang", sel.Toolchain.Name)
}

func TestPlatformString(t *testing.T) {
	require.Equal(t, "linux", Platform{OS: dimension.Linux}.String())
	require.Equal(t, "linux/amd64", Platform{OS: dimension.Linux, Arch: "amd64"}.String())
}
