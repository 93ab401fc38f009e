package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/boardstack/boardstack/internal/domain"
)

// MockProjectServiceInterface is a mock of ProjectServiceInterface interface
type MockProjectServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockProjectServiceInterfaceMockRecorder
}

// MockProjectServiceInterfaceMockRecorder is the mock recorder for MockProjectServiceInterface
type MockProjectServiceInterfaceMockRecorder struct {
	mock *MockProjectServiceInterface
}

// NewMockProjectServiceInterface creates a new mock instance
func NewMockProjectServiceInterface(ctrl *gomock.Controller) *MockProjectServiceInterface {
	mock := &MockProjectServiceInterface{ctrl: ctrl}
	mock.recorder = &MockProjectServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockProjectServiceInterface) EXPECT() *MockProjectServiceInterfaceMockRecorder {
	return m.recorder
}

// CreateProject mocks base method
func (m *MockProjectServiceInterface) CreateProject(ctx context.Context, workspaceID, name, imageURL string) (*domain.Project, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateProject", ctx, workspaceID, name, imageURL)
	ret0, _ := ret[0].(*domain.Project)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateProject indicates an expected call of CreateProject
func (mr *MockProjectServiceInterfaceMockRecorder) CreateProject(ctx, workspaceID, name, imageURL interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateProject", reflect.TypeOf((*MockProjectServiceInterface)(nil).CreateProject), ctx, workspaceID, name, imageURL)
}

// GetProject mocks base method
func (m *MockProjectServiceInterface) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetProject", ctx, id)
	ret0, _ := ret[0].(*domain.Project)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetProject indicates an expected call of GetProject
func (mr *MockProjectServiceInterfaceMockRecorder) GetProject(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetProject", reflect.TypeOf((*MockProjectServiceInterface)(nil).GetProject), ctx, id)
}

// ListProjects mocks base method
func (m *MockProjectServiceInterface) ListProjects(ctx context.Context, workspaceID string) ([]*domain.Project, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListProjects", ctx, workspaceID)
	ret0, _ := ret[0].([]*domain.Project)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListProjects indicates an expected call of ListProjects
func (mr *MockProjectServiceInterfaceMockRecorder) ListProjects(ctx, workspaceID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListProjects", reflect.TypeOf((*MockProjectServiceInterface)(nil).ListProjects), ctx, workspaceID)
}

// UpdateProject mocks base method
func (m *MockProjectServiceInterface) UpdateProject(ctx context.Context, id, name, imageURL string) (*domain.Project, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateProject", ctx, id, name, imageURL)
	ret0, _ := ret[0].(*domain.Project)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateProject indicates an expected call of UpdateProject
func (mr *MockProjectServiceInterfaceMockRecorder) UpdateProject(ctx, id, name, imageURL interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateProject", reflect.TypeOf((*MockProjectServiceInterface)(nil).UpdateProject), ctx, id, name, imageURL)
}

// DeleteProject mocks base method
func (m *MockProjectServiceInterface) DeleteProject(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteProject", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteProject indicates an expected call of DeleteProject
func (mr *MockProjectServiceInterfaceMockRecorder) DeleteProject(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteProject", reflect.TypeOf((*MockProjectServiceInterface)(nil).DeleteProject), ctx, id)
}
