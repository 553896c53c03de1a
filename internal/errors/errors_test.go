package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "missing base name")
	require.Equal(t, "config (fatal): missing base name", err.Error())

	cause := stderrors.New("yaml: line 3")
	wrapped := Wrap(cause, CategoryConfig, SeverityFatal, "failed to parse")
	require.Equal(t, "config (fatal): failed to parse: yaml: line 3", wrapped.Error())
	require.ErrorIs(t, wrapped, cause)
}

func TestIsCategoryUnwrapsChains(t *testing.T) {
	inner := IllegalState("no result has been provided")
	require.True(t, IsIllegalState(inner))
	require.False(t, IsConfiguration(inner))
	require.False(t, IsIllegalState(stderrors.New("plain")))
	require.False(t, IsIllegalState(nil))
}

func TestToolchainNotFound(t *testing.T) {
	cause := stderrors.New("not on PATH")
	err := ToolchainNotFound("linux", cause)
	require.True(t, IsToolchainNotFound(err))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "linux", err.Context["platform"])
}

func TestEmptyDimension(t *testing.T) {
	err := EmptyDimension("linkage")
	require.True(t, IsConfiguration(err))
	require.Contains(t, err.Error(), "linkage")
}

func TestRetryable(t *testing.T) {
	require.False(t, IsRetryable(TaskFailed("compileDebug", stderrors.New("cc1 died"))))
	require.True(t, IsRetryable(WrapRetryable(stderrors.New("canceled"), CategoryBuild, SeverityWarning, "build canceled")))
	require.False(t, IsRetryable(stderrors.New("plain")))
}

func TestWithContext(t *testing.T) {
	err := New(CategoryBuild, SeverityError, "task failed").
		WithContext("task", "linkDebugShared").
		WithContext("exit_code", 1)
	require.Equal(t, "linkDebugShared", err.Context["task"])
	require.Equal(t, 1, err.Context["exit_code"])
}
