package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/boardstack/boardstack/internal/domain"
)

// MockWorkspaceServiceInterface is a mock of WorkspaceServiceInterface interface
type MockWorkspaceServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockWorkspaceServiceInterfaceMockRecorder
}

// MockWorkspaceServiceInterfaceMockRecorder is the mock recorder for MockWorkspaceServiceInterface
type MockWorkspaceServiceInterfaceMockRecorder struct {
	mock *MockWorkspaceServiceInterface
}

// NewMockWorkspaceServiceInterface creates a new mock instance
func NewMockWorkspaceServiceInterface(ctrl *gomock.Controller) *MockWorkspaceServiceInterface {
	mock := &MockWorkspaceServiceInterface{ctrl: ctrl}
	mock.recorder = &MockWorkspaceServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockWorkspaceServiceInterface) EXPECT() *MockWorkspaceServiceInterfaceMockRecorder {
	return m.recorder
}

// ListWorkspaces mocks base method
func (m *MockWorkspaceServiceInterface) ListWorkspaces(ctx context.Context) ([]*domain.Workspace, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListWorkspaces", ctx)
	ret0, _ := ret[0].([]*domain.Workspace)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListWorkspaces indicates an expected call of ListWorkspaces
func (mr *MockWorkspaceServiceInterfaceMockRecorder) ListWorkspaces(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListWorkspaces", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).ListWorkspaces), ctx)
}

// GetWorkspace mocks base method
func (m *MockWorkspaceServiceInterface) GetWorkspace(ctx context.Context, id string) (*domain.WorkspaceWithMembers, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetWorkspace", ctx, id)
	ret0, _ := ret[0].(*domain.WorkspaceWithMembers)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetWorkspace indicates an expected call of GetWorkspace
func (mr *MockWorkspaceServiceInterfaceMockRecorder) GetWorkspace(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetWorkspace", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).GetWorkspace), ctx, id)
}

// GetWorkspaceInfo mocks base method
func (m *MockWorkspaceServiceInterface) GetWorkspaceInfo(ctx context.Context, id string) (*domain.Workspace, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetWorkspaceInfo", ctx, id)
	ret0, _ := ret[0].(*domain.Workspace)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetWorkspaceInfo indicates an expected call of GetWorkspaceInfo
func (mr *MockWorkspaceServiceInterfaceMockRecorder) GetWorkspaceInfo(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetWorkspaceInfo", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).GetWorkspaceInfo), ctx, id)
}

// CreateWorkspace mocks base method
func (m *MockWorkspaceServiceInterface) CreateWorkspace(ctx context.Context, name, imageURL string) (*domain.Workspace, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateWorkspace", ctx, name, imageURL)
	ret0, _ := ret[0].(*domain.Workspace)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateWorkspace indicates an expected call of CreateWorkspace
func (mr *MockWorkspaceServiceInterfaceMockRecorder) CreateWorkspace(ctx, name, imageURL interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateWorkspace", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).CreateWorkspace), ctx, name, imageURL)
}

// UpdateWorkspace mocks base method
func (m *MockWorkspaceServiceInterface) UpdateWorkspace(ctx context.Context, id, name, imageURL string) (*domain.Workspace, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateWorkspace", ctx, id, name, imageURL)
	ret0, _ := ret[0].(*domain.Workspace)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateWorkspace indicates an expected call of UpdateWorkspace
func (mr *MockWorkspaceServiceInterfaceMockRecorder) UpdateWorkspace(ctx, id, name, imageURL interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateWorkspace", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).UpdateWorkspace), ctx, id, name, imageURL)
}

// DeleteWorkspace mocks base method
func (m *MockWorkspaceServiceInterface) DeleteWorkspace(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteWorkspace", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteWorkspace indicates an expected call of DeleteWorkspace
func (mr *MockWorkspaceServiceInterfaceMockRecorder) DeleteWorkspace(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteWorkspace", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).DeleteWorkspace), ctx, id)
}

// ResetInviteCode mocks base method
func (m *MockWorkspaceServiceInterface) ResetInviteCode(ctx context.Context, id string) (*domain.Workspace, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResetInviteCode", ctx, id)
	ret0, _ := ret[0].(*domain.Workspace)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ResetInviteCode indicates an expected call of ResetInviteCode
func (mr *MockWorkspaceServiceInterfaceMockRecorder) ResetInviteCode(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResetInviteCode", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).ResetInviteCode), ctx, id)
}

// JoinWorkspace mocks base method
func (m *MockWorkspaceServiceInterface) JoinWorkspace(ctx context.Context, id, code string) (*domain.Workspace, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "JoinWorkspace", ctx, id, code)
	ret0, _ := ret[0].(*domain.Workspace)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// JoinWorkspace indicates an expected call of JoinWorkspace
func (mr *MockWorkspaceServiceInterfaceMockRecorder) JoinWorkspace(ctx, id, code interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "JoinWorkspace", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).JoinWorkspace), ctx, id, code)
}

// ListMembers mocks base method
func (m *MockWorkspaceServiceInterface) ListMembers(ctx context.Context, workspaceID string) ([]*domain.MemberWithUser, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMembers", ctx, workspaceID)
	ret0, _ := ret[0].([]*domain.MemberWithUser)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListMembers indicates an expected call of ListMembers
func (mr *MockWorkspaceServiceInterfaceMockRecorder) ListMembers(ctx, workspaceID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMembers", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).ListMembers), ctx, workspaceID)
}

// RemoveMember mocks base method
func (m *MockWorkspaceServiceInterface) RemoveMember(ctx context.Context, memberID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RemoveMember", ctx, memberID)
	ret0, _ := ret[0].(error)
	return ret0
}

// RemoveMember indicates an expected call of RemoveMember
func (mr *MockWorkspaceServiceInterfaceMockRecorder) RemoveMember(ctx, memberID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveMember", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).RemoveMember), ctx, memberID)
}

// UpdateMemberRole mocks base method
func (m *MockWorkspaceServiceInterface) UpdateMemberRole(ctx context.Context, memberID string, role domain.MemberRole) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateMemberRole", ctx, memberID, role)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateMemberRole indicates an expected call of UpdateMemberRole
func (mr *MockWorkspaceServiceInterfaceMockRecorder) UpdateMemberRole(ctx, memberID, role interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateMemberRole", reflect.TypeOf((*MockWorkspaceServiceInterface)(nil).UpdateMemberRole), ctx, memberID, role)
}
