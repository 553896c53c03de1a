// Package dimension holds the value types for the axes a native-library
// component varies along: build profile, linkage mode, and operating system
// family. All types are value-compared; identity of instances never matters.
package dimension

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BuildProfile is one of the two fixed build profiles. Profiles are not
// consumer-extensible; the matrix always spans exactly DefaultBuildProfiles.
type BuildProfile struct {
	Name       string
	Debuggable bool
	Optimized  bool
}

// Release binaries keep debug info attached; stripping is a packaging concern.
var (
	Debug   = BuildProfile{Name: "debug", Debuggable: true, Optimized: false}
	Release = BuildProfile{Name: "release", Debuggable: true, Optimized: true}

	DefaultBuildProfiles = []BuildProfile{Debug, Release}
)

// Linkage is a library linkage mode requested by the consumer.
type Linkage string

const (
	Static Linkage = "static"
	Shared Linkage = "shared"
)

// ParseLinkage maps a configuration string to a Linkage.
func ParseLinkage(s string) (Linkage, error) {
	switch Linkage(strings.ToLower(strings.TrimSpace(s))) {
	case Static:
		return Static, nil
	case Shared:
		return Shared, nil
	default:
		return "", fmt.Errorf("unknown linkage %q (want static or shared)", s)
	}
}

// OsFamily identifies an operating system family a variant targets.
// Families compare case-insensitively; canonical spelling is lowercase.
type OsFamily string

const (
	Linux   OsFamily = "linux"
	Windows OsFamily = "windows"
	MacOS   OsFamily = "macos"
)

// Matches reports whether two families name the same OS, ignoring case.
func (o OsFamily) Matches(other OsFamily) bool {
	return strings.EqualFold(string(o), string(other))
}

func (o OsFamily) String() string { return string(o) }

// HostOsFamily returns the family of the OS this process is running on.
func HostOsFamily() OsFamily {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	default:
		// Everything else in practice is a linux-family target for our purposes.
		return Linux
	}
}

var titler = cases.Title(language.English)

// Suffix returns the contribution of one dimension value to a variant name:
// the capitalized value when the owning requested set has more than one
// member, otherwise nothing.
func Suffix(value string, visible bool) string {
	if !visible {
		return ""
	}
	return titler.String(strings.ToLower(value))
}
