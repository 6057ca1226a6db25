package mux

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteAddr(t *testing.T) {
	a := assert.New(t)

	r := &http.Request{RemoteAddr: "127.0.0.1:56000"}
	a.Equal("127.0.0.1", remoteAddr(r))

	r = &http.Request{RemoteAddr: "127.0.0.1"}
	a.Equal("127.0.0.1", remoteAddr(r))

	r = &http.Request{RemoteAddr: "[::1]:56000"}
	a.Equal("[::1]", remoteAddr(r))
}

func TestWriteJSONError(t *testing.T) {
	a := assert.New(t)

	w := httptest.NewRecorder()
	writeJSONError(w, http.StatusBadRequest, errors.New("bad input"))
	a.Equal(http.StatusBadRequest, w.Code)
	a.Contains(w.Body.String(), "bad input")

	// 5xx errors never leak their message
	w = httptest.NewRecorder()
	writeJSONError(w, http.StatusInternalServerError, errors.New("pq: something sensitive"))
	a.Equal(http.StatusInternalServerError, w.Code)
	a.Contains(w.Body.String(), http.StatusText(http.StatusInternalServerError))
	a.NotContains(w.Body.String(), "sensitive")
}

func TestDecodeRequest(t *testing.T) {
	a := assert.New(t)

	var payload struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"test"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.True(decodeRequest(w, r, &payload))
	a.Equal("test", payload.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "text/plain")
	w = httptest.NewRecorder()
	a.False(decodeRequest(w, r, &payload))
	a.Equal(http.StatusUnsupportedMediaType, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{bad json`))
	r.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	a.False(decodeRequest(w, r, &payload))
	a.Equal(http.StatusBadRequest, w.Code)
}
