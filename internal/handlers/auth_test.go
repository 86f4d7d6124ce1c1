package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"solar_advisor/internal/service"
)

func TestAuthHandlers_SignUpAndSignIn(t *testing.T) {
	auth := &mockAuth{signUpID: 42, genTokenToken: "tok123", parseID: 1}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// sign-up success
	body := bytes.NewBufferString(`{"username":"u","password":"p"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-up status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["id"].(float64)) != 42 {
		t.Fatalf("expected id=42, got %v", m["id"])
	}

	// sign-in success
	body = bytes.NewBufferString(`{"username":"u","password":"p"}`)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/sign-in", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in status=%d, body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}

	// sign-in invalid body → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewBufferString(`{"username":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_ErrorMapping(t *testing.T) {
	cases := []struct {
		name      string
		path      string
		signUpErr error
		genErr    error
		wantCode  int
	}{
		{"sign-up invalid password", "/auth/sign-up", fmt.Errorf("%w: empty", service.ErrInvalidPassword), nil, http.StatusBadRequest},
		{"sign-up duplicate", "/auth/sign-up", service.ErrUserExists, nil, http.StatusConflict},
		{"sign-up storage failure", "/auth/sign-up", errors.New("disk I/O error"), nil, http.StatusInternalServerError},
		{"sign-in unknown user", "/auth/sign-in", nil, service.ErrUserNotFound, http.StatusUnauthorized},
		{"sign-in wrong password", "/auth/sign-in", nil, service.ErrInvalidPassword, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{signUpErr: tc.signUpErr, genTokenErr: tc.genErr}
			r := newTestRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tc.path, bytes.NewBufferString(`{"username":"u","password":"p"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}
}
