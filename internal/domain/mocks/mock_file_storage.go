package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
)

// MockFileStorage is a mock of FileStorage interface
type MockFileStorage struct {
	ctrl     *gomock.Controller
	recorder *MockFileStorageMockRecorder
}

// MockFileStorageMockRecorder is the mock recorder for MockFileStorage
type MockFileStorageMockRecorder struct {
	mock *MockFileStorage
}

// NewMockFileStorage creates a new mock instance
func NewMockFileStorage(ctrl *gomock.Controller) *MockFileStorage {
	mock := &MockFileStorage{ctrl: ctrl}
	mock.recorder = &MockFileStorageMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockFileStorage) EXPECT() *MockFileStorageMockRecorder {
	return m.recorder
}

// DeleteByURL mocks base method
func (m *MockFileStorage) DeleteByURL(ctx context.Context, fileURL string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteByURL", ctx, fileURL)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteByURL indicates an expected call of DeleteByURL
func (mr *MockFileStorageMockRecorder) DeleteByURL(ctx, fileURL interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteByURL", reflect.TypeOf((*MockFileStorage)(nil).DeleteByURL), ctx, fileURL)
}
