package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyComponent  = "component"
	KeyVariant    = "variant"
	KeyProfile    = "profile"
	KeyLinkage    = "linkage"
	KeyOsFamily   = "os_family"
	KeyToolchain  = "toolchain"
	KeyTask       = "task"
	KeyPhase      = "phase"
	KeyState      = "state"
	KeyOutcome    = "outcome"
	KeyVariants   = "variants"
	KeyBuildable  = "buildable"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }
func Variant(name string) slog.Attr   { return slog.String(KeyVariant, name) }
func Profile(name string) slog.Attr   { return slog.String(KeyProfile, name) }
func Linkage(l string) slog.Attr      { return slog.String(KeyLinkage, l) }
func OsFamily(os string) slog.Attr    { return slog.String(KeyOsFamily, os) }
func Toolchain(name string) slog.Attr { return slog.String(KeyToolchain, name) }
func Task(name string) slog.Attr      { return slog.String(KeyTask, name) }
func Phase(name string) slog.Attr     { return slog.String(KeyPhase, name) }
func State(s string) slog.Attr        { return slog.String(KeyState, s) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Variants(n int) slog.Attr        { return slog.Int(KeyVariants, n) }
func Buildable(b bool) slog.Attr      { return slog.Bool(KeyBuildable, b) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
