package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/boardstack/boardstack/internal/domain"
)

// MockAnalyticsServiceInterface is a mock of AnalyticsServiceInterface interface
type MockAnalyticsServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockAnalyticsServiceInterfaceMockRecorder
}

// MockAnalyticsServiceInterfaceMockRecorder is the mock recorder for MockAnalyticsServiceInterface
type MockAnalyticsServiceInterfaceMockRecorder struct {
	mock *MockAnalyticsServiceInterface
}

// NewMockAnalyticsServiceInterface creates a new mock instance
func NewMockAnalyticsServiceInterface(ctrl *gomock.Controller) *MockAnalyticsServiceInterface {
	mock := &MockAnalyticsServiceInterface{ctrl: ctrl}
	mock.recorder = &MockAnalyticsServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockAnalyticsServiceInterface) EXPECT() *MockAnalyticsServiceInterfaceMockRecorder {
	return m.recorder
}

// WorkspaceAnalytics mocks base method
func (m *MockAnalyticsServiceInterface) WorkspaceAnalytics(ctx context.Context, workspaceID string) (*domain.Analytics, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WorkspaceAnalytics", ctx, workspaceID)
	ret0, _ := ret[0].(*domain.Analytics)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// WorkspaceAnalytics indicates an expected call of WorkspaceAnalytics
func (mr *MockAnalyticsServiceInterfaceMockRecorder) WorkspaceAnalytics(ctx, workspaceID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WorkspaceAnalytics", reflect.TypeOf((*MockAnalyticsServiceInterface)(nil).WorkspaceAnalytics), ctx, workspaceID)
}

// ProjectAnalytics mocks base method
func (m *MockAnalyticsServiceInterface) ProjectAnalytics(ctx context.Context, projectID string) (*domain.Analytics, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ProjectAnalytics", ctx, projectID)
	ret0, _ := ret[0].(*domain.Analytics)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ProjectAnalytics indicates an expected call of ProjectAnalytics
func (mr *MockAnalyticsServiceInterfaceMockRecorder) ProjectAnalytics(ctx, projectID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ProjectAnalytics", reflect.TypeOf((*MockAnalyticsServiceInterface)(nil).ProjectAnalytics), ctx, projectID)
}
