package errors

// Convenience functions for common error patterns

// Configuration errors

func ConfigNotFound(path string) *LibForgeError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *LibForgeError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

// EmptyDimension reports a variant dimension whose requested value set is empty.
// Raised before any variant is built; a partial matrix is never produced.
func EmptyDimension(dimension string) *LibForgeError {
	return New(CategoryConfig, SeverityFatal, "a non-empty "+dimension+" set needs to be specified for the component").
		WithContext("dimension", dimension)
}

func ValidationFailed(field, reason string) *LibForgeError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Toolchain errors

// ToolchainNotFound reports that no toolchain could be located for the target
// platform. Fatal when the target is the host; non-host targets never trigger
// a toolchain lookup in the first place.
func ToolchainNotFound(platform string, cause error) *LibForgeError {
	return Wrap(cause, CategoryToolchain, SeverityFatal, "no toolchain available for target platform").
		WithContext("platform", platform)
}

// Controller state errors

// IllegalState reports a controller operation invoked in a state that does not
// permit it. Programming error; never retried.
func IllegalState(message string) *LibForgeError {
	return New(CategoryState, SeverityFatal, message)
}

// Build execution errors

func TaskFailed(task string, cause error) *LibForgeError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build task failed").
		WithContext("task", task)
}

func LeaseInterrupted(cause error) *LibForgeError {
	return Wrap(cause, CategoryLease, SeverityError, "interrupted while waiting for build lease")
}

// IsIllegalState reports whether err is a state-category programming error.
func IsIllegalState(err error) bool { return IsCategory(err, CategoryState) }

// IsConfiguration reports whether err is a configuration-category error.
func IsConfiguration(err error) bool { return IsCategory(err, CategoryConfig) }

// IsToolchainNotFound reports whether err is a toolchain-category error.
func IsToolchainNotFound(err error) bool { return IsCategory(err, CategoryToolchain) }
