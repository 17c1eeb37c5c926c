// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytalsudani/console/internal/core"
)

func newTestHandler(t *testing.T) (*Handler, *core.Messages) {
	t.Helper()

	local, _ := newLocal(t)
	sessions, _ := newTestSessions(t)
	msgs := core.NewMessages("en")
	return NewHandler(NewService(local, sessions), sessions, msgs), msgs
}

func postLogin(h http.Handler, form url.Values, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/merchant/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func flashOf(rec *httptest.ResponseRecorder) *core.Flash {
	req := httptest.NewRequest(http.MethodGet, "/merchant/login", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return core.ConsumeFlash(httptest.NewRecorder(), req)
}

func hasCookie(rec *httptest.ResponseRecorder, name string) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return true
		}
	}
	return false
}

func TestLoginBrowserFailureReturnsToLoginView(t *testing.T) {
	h, msgs := newTestHandler(t)
	login := h.Login(RoleMerchant)

	tests := []struct {
		name string
		form url.Values
		want core.MessageID
	}{
		{
			name: "wrong password",
			form: url.Values{"email": {"ahmed@example.com"}, "password": {"nope"}},
			want: core.MsgInvalidCredentials,
		},
		{
			name: "missing password",
			form: url.Values{"email": {"ahmed@example.com"}},
			want: core.MsgMissingCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postLogin(login, tt.form, "")

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/merchant/login", rec.Header().Get("Location"))
			assert.False(t, hasCookie(rec, "console_session"))

			flash := flashOf(rec)
			require.NotNil(t, flash)
			assert.Equal(t, core.FlashError, flash.Kind)
			assert.Equal(t, msgs.Get(tt.want), flash.Message)
		})
	}
}

func TestLoginJSONFailure(t *testing.T) {
	h, msgs := newTestHandler(t)

	rec := postLogin(h.Login(RoleMerchant),
		url.Values{"email": {"ahmed@example.com"}, "password": {"nope"}},
		"application/json")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body core.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, msgs.Get(core.MsgInvalidCredentials), body.Error.Message)
}

func TestLoginBrowserSuccess(t *testing.T) {
	h, msgs := newTestHandler(t)

	rec := postLogin(h.Login(RoleMerchant),
		url.Values{"email": {"ahmed@example.com"}, "password": {"secret"}}, "")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/merchant/dashboard", rec.Header().Get("Location"))
	assert.True(t, hasCookie(rec, "console_session"))

	flash := flashOf(rec)
	require.NotNil(t, flash)
	assert.Equal(t, core.FlashSuccess, flash.Kind)
	assert.Equal(t, msgs.Get(core.MsgLoginSuccess), flash.Message)
}
