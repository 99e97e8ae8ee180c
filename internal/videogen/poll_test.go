package videogen_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankitpatil/director/internal/videogen"
	"github.com/ankitpatil/director/internal/videogen/mock"
)

func TestWaitForOperation_SucceedsAfterPending(t *testing.T) {
	var polls int
	client := &mock.MockClient{
		PollFunc: func(_ context.Context, op string) (videogen.OperationStatus, error) {
			assert.Equal(t, "operations/op-1", op)
			polls++
			if polls < 3 {
				return videogen.OperationStatus{State: videogen.StatePending}, nil
			}
			return videogen.OperationStatus{State: videogen.StateSucceeded}, nil
		},
	}

	err := videogen.WaitForOperation(context.Background(), client, "operations/op-1", time.Millisecond, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, polls)
}

func TestWaitForOperation_BackendFailureStopsImmediately(t *testing.T) {
	var polls int
	client := &mock.MockClient{
		PollFunc: func(context.Context, string) (videogen.OperationStatus, error) {
			polls++
			return videogen.OperationStatus{State: videogen.StateFailed, Error: "prompt rejected"}, nil
		},
	}

	err := videogen.WaitForOperation(context.Background(), client, "operations/op-1", time.Millisecond, time.Second)
	require.ErrorIs(t, err, videogen.ErrRenderFailed)
	assert.Contains(t, err.Error(), "prompt rejected")
	assert.Equal(t, 1, polls)
}

func TestWaitForOperation_TimesOutWhileStillPending(t *testing.T) {
	client := &mock.MockClient{
		PollFunc: func(context.Context, string) (videogen.OperationStatus, error) {
			return videogen.OperationStatus{State: videogen.StatePending}, nil
		},
	}

	err := videogen.WaitForOperation(context.Background(), client, "operations/op-1", time.Millisecond, 20*time.Millisecond)
	require.ErrorIs(t, err, videogen.ErrPollTimeout)
}

func TestWaitForOperation_RetriesTransportBlips(t *testing.T) {
	var polls int
	client := &mock.MockClient{
		PollFunc: func(context.Context, string) (videogen.OperationStatus, error) {
			polls++
			if polls == 1 {
				return videogen.OperationStatus{}, errors.New("connection reset")
			}
			return videogen.OperationStatus{State: videogen.StateSucceeded}, nil
		},
	}

	err := videogen.WaitForOperation(context.Background(), client, "operations/op-1", time.Millisecond, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2, polls)
}
