package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock of toolrun.Runner
type MockRunner struct {
	mock.Mock
}

// NewMockRunner returns a runner where only the named tools are on PATH.
// Output expectations are left to the test.
func NewMockRunner(tools ...string) *MockRunner {
	m := &MockRunner{}
	for _, name := range tools {
		m.On("LookPath", name).Return(true).Maybe()
	}
	m.On("LookPath", mock.Anything).Return(false).Maybe()
	return m
}

// LookPath records the call and returns the configured availability
func (m *MockRunner) LookPath(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

// Output records the call and returns the configured stdout
func (m *MockRunner) Output(ctx context.Context, name string, args ...string) string {
	callArgs := make([]interface{}, 0, len(args)+1)
	callArgs = append(callArgs, name)
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	ret := m.Called(callArgs...)
	return ret.String(0)
}

// OutputCalls counts the tool invocations made so far
func (m *MockRunner) OutputCalls() int {
	n := 0
	for _, c := range m.Calls {
		if c.Method == "Output" {
			n++
		}
	}
	return n
}
