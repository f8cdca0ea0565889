package executor

import (
	"bytes"
	"context"
	"testing"

	"github.com/datablast-analytics/blast-redshift/pkg/task"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOperator struct {
	mock.Mock
}

func (d *mockOperator) RunTask(ctx context.Context, t *task.Task) error {
	args := d.Called(ctx, t)
	return args.Error(0)
}

func TestSequential_RunSingleTask(t *testing.T) {
	t.Parallel()

	tsk := &task.Task{
		Name: "task1",
		Type: "test",
	}

	t.Run("simple task is executed successfully", func(t *testing.T) {
		t.Parallel()

		mockOperator := new(mockOperator)
		mockOperator.On("RunTask", mock.Anything, tsk).
			Return(nil)

		l := Sequential{
			TaskTypeMap: map[string]Operator{
				"test": mockOperator,
			},
		}

		err := l.RunSingleTask(context.Background(), tsk)

		assert.NoError(t, err)
		mockOperator.AssertExpectations(t)
	})

	t.Run("missing task is rejected", func(t *testing.T) {
		t.Parallel()

		mockOperator := new(mockOperator)

		l := Sequential{
			TaskTypeMap: map[string]Operator{
				"some-other-task": mockOperator,
			},
		}

		err := l.RunSingleTask(context.Background(), tsk)

		assert.Error(t, err)
		mockOperator.AssertExpectations(t)
	})

	t.Run("operator errors are propagated", func(t *testing.T) {
		t.Parallel()

		mockOperator := new(mockOperator)
		mockOperator.On("RunTask", mock.Anything, tsk).
			Return(errors.New("some error occurred"))

		l := Sequential{
			TaskTypeMap: map[string]Operator{
				"test": mockOperator,
			},
		}

		err := l.RunSingleTask(context.Background(), tsk)

		assert.EqualError(t, err, "some error occurred")
		mockOperator.AssertExpectations(t)
	})
}

func TestSequential_Run(t *testing.T) {
	t.Parallel()

	t1 := &task.Task{Name: "first", Type: "test"}
	t2 := &task.Task{Name: "second", Type: "test"}
	t3 := &task.Task{Name: "third", Type: task.TypeEmpty}

	mockOperator := new(mockOperator)
	mockOperator.On("RunTask", mock.Anything, t1).Return(errors.New("failed")).Once()
	mockOperator.On("RunTask", mock.Anything, t2).Return(nil).Once()

	s := Sequential{
		TaskTypeMap: NewOperatorMap(map[string]Operator{"test": mockOperator}),
	}

	var out bytes.Buffer
	results := s.Run(context.Background(), []*task.Task{t1, t2, t3}, &out)

	require.Len(t, results, 3)
	assert.Same(t, t1, results[0].Task)
	assert.EqualError(t, results[0].Error, "failed")
	assert.NoError(t, results[1].Error)
	assert.NoError(t, results[2].Error)
	assert.Contains(t, out.String(), "Running: first")
	assert.Contains(t, out.String(), "Completed: third")
	mockOperator.AssertExpectations(t)
}

func TestSequential_RunCancelled(t *testing.T) {
	t.Parallel()

	mockOperator := new(mockOperator)
	s := Sequential{TaskTypeMap: map[string]Operator{"test": mockOperator}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := s.Run(ctx, []*task.Task{{Name: "first", Type: "test"}}, &bytes.Buffer{})

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Error, context.Canceled)
	mockOperator.AssertExpectations(t)
}

func TestNewOperatorMap(t *testing.T) {
	t.Parallel()

	custom := new(mockOperator)
	operators := NewOperatorMap(map[string]Operator{task.TypeRedshiftQuery: custom})

	assert.Same(t, custom, operators[task.TypeRedshiftQuery])
	assert.Equal(t, NoOpOperator{}, operators[task.TypeEmpty])
	assert.Equal(t, NoOpOperator{}, DefaultExecutors[task.TypeRedshiftQuery])
}
