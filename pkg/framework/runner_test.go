package framework

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type funcRunnable struct {
	name string
	fn   func(context.Context) error
}

func (r *funcRunnable) Name() string                  { return r.name }
func (r *funcRunnable) Run(ctx context.Context) error { return r.fn(ctx) }

func waitCanceled(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRunnerFailureStopsGroup(t *testing.T) {
	errBroken := errors.New("broken")
	err := NewRunner().Go(
		&funcRunnable{name: "idle", fn: waitCanceled},
		&funcRunnable{name: "sink", fn: func(context.Context) error { return errBroken }},
	).Wait()
	require.Error(t, err)
	require.EqualError(t, err, "sink: broken")
	var agg *AggregatedError
	require.True(t, errors.As(err, &agg))
	require.True(t, errors.Is(agg.Errors[0], errBroken))
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner().Go(
		&funcRunnable{name: "a", fn: waitCanceled},
		&funcRunnable{name: "b", fn: waitCanceled},
	)
	r.Stop()
	require.NoError(t, r.Wait())
}

func TestRunnerUnnamed(t *testing.T) {
	err := NewRunner().Go(RunnableFunc(func(context.Context) error {
		return errors.New("oops")
	})).Wait()
	require.EqualError(t, err, "0: oops")
}
