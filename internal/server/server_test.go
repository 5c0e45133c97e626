package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/haytac/emotions/internal/emotion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://static.example.com"

func setupTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	tr := emotion.New(emotion.WithTable(emotion.MapTable{
		"smile": "\U0001F604",
		"heart": "❤",
		"boy":   "\U0001F466",
	}))
	if opts.AssetBaseURL == "" {
		opts.AssetBaseURL = testBaseURL
	}
	srv := httptest.NewServer(New(tr, opts).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postText(t *testing.T, srv *httptest.Server, path, text string) (int, string) {
	t.Helper()
	body, err := json.Marshal(textPayload{Text: text})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out textPayload
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out.Text
}

func TestConvertEndpoints(t *testing.T) {
	srv := setupTestServer(t, Options{})

	tests := []struct {
		path string
		in   string
		want string
	}{
		{"/v1/unicode", "hi :smile:", "hi \U0001F604"},
		{"/v1/unicode", ":heart:", "❤️"},
		{"/v1/aliases", "hi \U0001F466\U0001F3FF", "hi :boy:"},
		{"/v1/strip", "a [em01] b :smile: c :unknownthing: d", "a  b  c :unknownthing: d"},
		{"/v1/render", "plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, got := postText(t, srv, tt.path, tt.in)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderEndpoint(t *testing.T) {
	srv := setupTestServer(t, Options{})

	status, got := postText(t, srv, "/v1/render", "hello :smile: :huaji:")
	require.Equal(t, http.StatusOK, status)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(got))
	require.NoError(t, err)
	imgs := doc.Find("img.emoji")
	require.Equal(t, 2, imgs.Length())
	assert.Equal(t, testBaseURL+"/emoji/graphics/smile.png", imgs.Eq(0).AttrOr("src", ""))
	assert.Equal(t, testBaseURL+"/emoji/graphics/huaji.gif", imgs.Eq(1).AttrOr("src", ""))
}

func TestRenderSanitizesInput(t *testing.T) {
	srv := setupTestServer(t, Options{SanitizeInput: true})

	status, got := postText(t, srv, "/v1/render", `<script>alert(1)</script><b>hi</b> :smile:`)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, got, "<script")
	assert.Contains(t, got, "<b>hi</b>")
	assert.Contains(t, got, `alt="smile"`)
}

func TestConvertBadBody(t *testing.T) {
	srv := setupTestServer(t, Options{})

	resp, err := http.Post(srv.URL+"/v1/strip", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestKnownEndpoint(t *testing.T) {
	srv := setupTestServer(t, Options{})

	for name, want := range map[string]bool{"smile": true, "not_a_real_emoji": false} {
		resp, err := http.Get(srv.URL + "/v1/emoji/" + name)
		require.NoError(t, err)

		var out knownResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		resp.Body.Close()
		assert.Equal(t, name, out.Name)
		assert.Equal(t, want, out.Known, name)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	srv := setupTestServer(t, Options{})

	resp, err := http.Get(srv.URL + "/v1/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out catalogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, emotion.Catalog(), out.Names)
}

func TestRateLimit(t *testing.T) {
	srv := setupTestServer(t, Options{RatePerSecond: 0.001, RateBurst: 1})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func getHealth(t *testing.T, srv *httptest.Server, realIP string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	if realIP != "" {
		req.Header.Set("X-Real-IP", realIP)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestRateLimitPerClient(t *testing.T) {
	srv := setupTestServer(t, Options{RatePerSecond: 0.001, RateBurst: 1})

	assert.Equal(t, http.StatusNoContent, getHealth(t, srv, "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, getHealth(t, srv, "203.0.113.1"))

	assert.Equal(t, http.StatusNoContent, getHealth(t, srv, "203.0.113.2"), "another client keeps its own budget")
	assert.Equal(t, http.StatusTooManyRequests, getHealth(t, srv, "203.0.113.2"))
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.RemoteAddr = "198.51.100.7:52100"
	assert.Equal(t, "198.51.100.7", clientKey(r))

	r.RemoteAddr = "198.51.100.7"
	assert.Equal(t, "198.51.100.7", clientKey(r))
}
