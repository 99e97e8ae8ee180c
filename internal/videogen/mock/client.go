// Package mock provides a video backend client for testing.
package mock

import (
	"context"

	"github.com/ankitpatil/director/internal/videogen"
)

// Call records one submission made against the mock client.
type Call struct {
	Kind    string // "new" or "extend"
	Request videogen.SubmitRequest
}

// MockClient satisfies videogen.Client for testing. Unset funcs fall back to
// an immediately-succeeding render.
type MockClient struct {
	Calls []Call

	SubmitNewFunc        func(ctx context.Context, req videogen.SubmitRequest) (string, error)
	SubmitExtendFunc     func(ctx context.Context, req videogen.SubmitRequest) (string, error)
	PollFunc             func(ctx context.Context, operationName string) (videogen.OperationStatus, error)
	MaterializeLocalFunc func(ctx context.Context, operationName string) (string, error)
}

func (m *MockClient) SubmitNew(ctx context.Context, req videogen.SubmitRequest) (string, error) {
	m.Calls = append(m.Calls, Call{Kind: "new", Request: req})
	if m.SubmitNewFunc != nil {
		return m.SubmitNewFunc(ctx, req)
	}
	return "operations/mock-op", nil
}

func (m *MockClient) SubmitExtend(ctx context.Context, req videogen.SubmitRequest) (string, error) {
	m.Calls = append(m.Calls, Call{Kind: "extend", Request: req})
	if m.SubmitExtendFunc != nil {
		return m.SubmitExtendFunc(ctx, req)
	}
	return "operations/mock-op-ext", nil
}

func (m *MockClient) Poll(ctx context.Context, operationName string) (videogen.OperationStatus, error) {
	if m.PollFunc != nil {
		return m.PollFunc(ctx, operationName)
	}
	return videogen.OperationStatus{State: videogen.StateSucceeded}, nil
}

func (m *MockClient) MaterializeLocal(ctx context.Context, operationName string) (string, error) {
	if m.MaterializeLocalFunc != nil {
		return m.MaterializeLocalFunc(ctx, operationName)
	}
	return "/tmp/render-output.mp4", nil
}

// Compile-time check that MockClient implements Client.
var _ videogen.Client = (*MockClient)(nil)
