package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/internal/domain/mocks"
	"github.com/boardstack/boardstack/internal/http/middleware"
)

// testLogger returns a logger mock that tolerates any logging from the code
// under test.
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

// testAuth returns an auth middleware whose verifier accepts the token
// "valid-token" as user u1.
func testAuth(ctrl *gomock.Controller) (*middleware.AuthMiddleware, *mocks.MockAuthService) {
	auth := mocks.NewMockAuthService(ctrl)
	auth.EXPECT().VerifyToken("valid-token").
		Return(&domain.AuthenticatedUser{ID: "u1", Email: "jane@example.com"}, nil).AnyTimes()
	auth.EXPECT().VerifyToken(gomock.Not("valid-token")).
		Return(nil, &domain.ErrUnauthorized{Message: "invalid token"}).AnyTimes()
	return middleware.NewAuthMiddleware(auth), auth
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if authed {
		req.Header.Set("Authorization", "Bearer valid-token")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}
