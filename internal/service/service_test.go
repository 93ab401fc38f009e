package service

import (
	"context"

	"github.com/golang/mock/gomock"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/internal/domain/mocks"
)

// testLogger returns a logger mock that tolerates any logging from the code
// under test. Tests assert on returned errors, not on log output.
func testLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	l := mocks.NewMockLogger(ctrl)
	l.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(l).AnyTimes()
	l.EXPECT().WithFields(gomock.Any()).Return(l).AnyTimes()
	l.EXPECT().Debug(gomock.Any()).AnyTimes()
	l.EXPECT().Info(gomock.Any()).AnyTimes()
	l.EXPECT().Warn(gomock.Any()).AnyTimes()
	l.EXPECT().Error(gomock.Any()).AnyTimes()
	return l
}

// authedContext builds a request context carrying the given user identity,
// the way the HTTP middleware does.
func authedContext(userID string) context.Context {
	return context.WithValue(context.Background(), domain.UserIDKey, userID)
}
