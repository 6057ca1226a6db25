package mux

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"holdemtables-server/internal/config"
	"holdemtables-server/internal/jwt"
	"holdemtables-server/internal/util"
)

func TestMain(m *testing.M) {
	_ = util.SetEnv("HT_CONFIG_FILE", "testdata/no-such-config.yaml")
	_ = util.SetEnv("HT_JWT_PUBLIC_KEY", "../jwt/testdata/public.pem")
	_ = util.SetEnv("HT_JWT_PRIVATE_KEY", "../jwt/testdata/private.key")

	if err := config.Load(); err != nil {
		panic(err)
	}

	jwt.LoadKeys()

	os.Exit(m.Run())
}

func TestMux_authRequired(t *testing.T) {
	a := assert.New(t)

	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	var errResp errorResponse

	// no credentials
	assertPost(t, ts, "/table", map[string]string{}, &errResp, http.StatusUnauthorized)
	a.Equal(http.StatusText(http.StatusUnauthorized), errResp.Message)

	// garbage credentials
	assertPost(t, ts, "/table", map[string]string{}, &errResp, http.StatusUnauthorized, "not-a-jwt")

	// a malformed Authorization header
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/table/00000000-0000-0000-0000-000000000000", nil)
	a.NoError(err)
	req.Header.Set("Authorization", "garbage")
	assertDo(t, req, &errResp, http.StatusUnauthorized)
}

func TestMux_seatRequestGuard(t *testing.T) {
	a := assert.New(t)

	m := NewMux("test")
	defer m.floor.EndShift()

	// only one seat request per player may be in flight
	a.True(m.beginSeating(1))
	a.False(m.beginSeating(1))

	// other players are unaffected
	a.True(m.beginSeating(2))

	m.endSeating(1)
	a.True(m.beginSeating(1))
}

func TestMux_unknownTableRoute(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	// the uuid pattern guards the table subrouter
	assertGet(t, ts, "/table/not-a-uuid", nil, http.StatusNotFound)
}

// test helpers, shared by the package's handler tests

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	assertDo(t, req, respObj, statusCode, signedJWT...)
}
