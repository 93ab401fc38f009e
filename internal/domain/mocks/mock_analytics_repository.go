package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/boardstack/boardstack/internal/domain"
)

// MockAnalyticsRepository is a mock of AnalyticsRepository interface
type MockAnalyticsRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAnalyticsRepositoryMockRecorder
}

// MockAnalyticsRepositoryMockRecorder is the mock recorder for MockAnalyticsRepository
type MockAnalyticsRepositoryMockRecorder struct {
	mock *MockAnalyticsRepository
}

// NewMockAnalyticsRepository creates a new mock instance
func NewMockAnalyticsRepository(ctrl *gomock.Controller) *MockAnalyticsRepository {
	mock := &MockAnalyticsRepository{ctrl: ctrl}
	mock.recorder = &MockAnalyticsRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockAnalyticsRepository) EXPECT() *MockAnalyticsRepositoryMockRecorder {
	return m.recorder
}

// CountTasks mocks base method
func (m *MockAnalyticsRepository) CountTasks(ctx context.Context, scope domain.AnalyticsScope, window domain.MonthWindow) (domain.TaskCounts, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountTasks", ctx, scope, window)
	ret0, _ := ret[0].(domain.TaskCounts)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountTasks indicates an expected call of CountTasks
func (mr *MockAnalyticsRepositoryMockRecorder) CountTasks(ctx, scope, window interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountTasks", reflect.TypeOf((*MockAnalyticsRepository)(nil).CountTasks), ctx, scope, window)
}
