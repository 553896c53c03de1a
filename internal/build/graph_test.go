package build

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/libforge/internal/errors"
)

func TestGraphExecute_RunsTasksInOrder(t *testing.T) {
	g := NewGraph("build-1")
	var order []string
	for _, name := range []string{"compileDebug", "linkDebug", "compileRelease"} {
		name := name
		g.AddTask(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, g.Execute(context.Background(), nil))
	require.Equal(t, []string{"compileDebug", "linkDebug", "compileRelease"}, order)
	require.Equal(t, 3, g.ExecutedTasks())
}

func TestGraphExecute_StopsAtFirstFailure(t *testing.T) {
	g := NewGraph("build-1")
	g.AddTask("ok", nil)
	g.AddTask("bad", func(ctx context.Context) error { return errors.New("cc1 not found") })
	reached := false
	g.AddTask("never", func(ctx context.Context) error {
		reached = true
		return nil
	})

	err := g.Execute(context.Background(), nil)
	require.Error(t, err)
	require.True(t, ferrors.IsCategory(err, ferrors.CategoryBuild))
	require.False(t, reached)
	require.Equal(t, 2, g.ExecutedTasks())
}

func TestGraphExecute_HonorsCancellation(t *testing.T) {
	g := NewGraph("build-1")
	ctx, cancel := context.WithCancel(context.Background())
	g.AddTask("first", func(ctx context.Context) error {
		cancel()
		return nil
	})
	ran := false
	g.AddTask("second", func(ctx context.Context) error {
		ran = true
		return nil
	})

	err := g.Execute(ctx, nil)
	require.Error(t, err)
	require.True(t, ferrors.IsRetryable(err))
	require.False(t, ran)
}

func TestGraphExecute_NilActionIsNoop(t *testing.T) {
	g := NewGraph("build-1")
	g.AddTask("placeholder", nil)
	require.NoError(t, g.Execute(context.Background(), nil))
	require.Equal(t, 1, g.ExecutedTasks())
}
