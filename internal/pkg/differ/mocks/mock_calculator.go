// Package mocks contains a golang/mock-generated-style mock of
// differ.Calculator, used to test Chain's dispatch-on-ErrUnsupported
// behavior without a real differ's decode/compare logic in the way.
package mocks

import (
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	differ "github.com/semdiff/semdiff/internal/pkg/differ"
	tree "github.com/semdiff/semdiff/internal/pkg/tree"
)

// MockCalculator is a mock of the differ.Calculator interface.
type MockCalculator struct {
	ctrl     *gomock.Controller
	recorder *MockCalculatorMockRecorder
}

// MockCalculatorMockRecorder is the mock recorder for MockCalculator.
type MockCalculatorMockRecorder struct {
	mock *MockCalculator
}

// NewMockCalculator creates a new mock instance.
func NewMockCalculator(ctrl *gomock.Controller) *MockCalculator {
	mock := &MockCalculator{ctrl: ctrl}
	mock.recorder = &MockCalculatorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCalculator) EXPECT() *MockCalculatorMockRecorder {
	return m.recorder
}

// Diff mocks base method.
func (m *MockCalculator) Diff(name string, expected, actual tree.Leaf) (differ.Diff, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Diff", name, expected, actual)
	ret0, _ := ret[0].(differ.Diff)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Diff indicates an expected call of Diff.
func (mr *MockCalculatorMockRecorder) Diff(name, expected, actual interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Diff", reflect.TypeOf((*MockCalculator)(nil).Diff), name, expected, actual)
}

// Added mocks base method.
func (m *MockCalculator) Added(name string, actual tree.Leaf) (differ.Diff, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Added", name, actual)
	ret0, _ := ret[0].(differ.Diff)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Added indicates an expected call of Added.
func (mr *MockCalculatorMockRecorder) Added(name, actual interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Added", reflect.TypeOf((*MockCalculator)(nil).Added), name, actual)
}

// Deleted mocks base method.
func (m *MockCalculator) Deleted(name string, expected tree.Leaf) (differ.Diff, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Deleted", name, expected)
	ret0, _ := ret[0].(differ.Diff)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Deleted indicates an expected call of Deleted.
func (mr *MockCalculatorMockRecorder) Deleted(name, expected interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deleted", reflect.TypeOf((*MockCalculator)(nil).Deleted), name, expected)
}

var _ differ.Calculator = (*MockCalculator)(nil)
