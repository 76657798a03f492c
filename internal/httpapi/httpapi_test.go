package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/rocket-loadout/internal/config"
)

const (
	defaultCode = "ggL/AlwAAlwAAA=="
	complexCode = "ggpXF0yGRThlByH5HsPTRMj9iZTzODmrBjuJGl/jMFniFbfNfwAAAAAA"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	return SetupRoutes(config.Default(), zap.NewNop())
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func flipBodyBit(t *testing.T, code string) string {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(code)
	require.NoError(t, err)
	raw[5] ^= 0x10
	return base64.StdEncoding.EncodeToString(raw)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newHandler(t), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDecodeLoadout(t *testing.T) {
	rec := do(t, newHandler(t), http.MethodPost, "/loadouts/decode",
		fmt.Sprintf(`{"code": %q}`, defaultCode))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp decodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, headerResponse{Version: 2, CodeSize: 10, CRC: 0xFF}, resp.Header)
	require.False(t, resp.Loadout.BlueIsOrange)
	require.Len(t, resp.Loadout.Blue.Items, 1)
	require.EqualValues(t, "body", resp.Loadout.Blue.Items[0].Slot)
	require.EqualValues(t, 23, resp.Loadout.Blue.Items[0].Product)
	require.NotNil(t, resp.Loadout.Orange)
	require.Len(t, resp.Loadout.Orange.Items, 1)
}

func TestDecodeLoadout_Verification(t *testing.T) {
	h := newHandler(t)
	tampered := flipBodyBit(t, complexCode)

	rec := do(t, h, http.MethodPost, "/loadouts/decode", fmt.Sprintf(`{"code": %q}`, tampered))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "checksum")

	rec = do(t, h, http.MethodPost, "/loadouts/decode",
		fmt.Sprintf(`{"code": %q, "verify": false}`, tampered))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestDecodeLoadout_ConfigDisablesVerify(t *testing.T) {
	cfg := config.Default()
	cfg.Codec.Verify = false
	h := SetupRoutes(cfg, zap.NewNop())
	tampered := flipBodyBit(t, complexCode)

	rec := do(t, h, http.MethodPost, "/loadouts/decode", fmt.Sprintf(`{"code": %q}`, tampered))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/loadouts/decode",
		fmt.Sprintf(`{"code": %q, "verify": true}`, tampered))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDecodeLoadout_BadRequests(t *testing.T) {
	h := newHandler(t)
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid json", `{"code":`, http.StatusBadRequest},
		{"unknown field", `{"code": "ggL/AlwAAlwAAA==", "extra": 1}`, http.StatusBadRequest},
		{"malformed code", `{"code": "not base64!"}`, http.StatusUnprocessableEntity},
		{"truncated code", `{"code": "ggL/"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/loadouts/decode", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Error)
		})
	}
}

func TestGetLoadout(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodGet, "/loadouts/"+defaultCode, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp decodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 10, resp.Header.CodeSize)

	rec = do(t, h, http.MethodGet, "/loadouts/ggL%2FAlwAAlwAAA==", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/loadouts/"+flipBodyBit(t, complexCode), "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestEncodeLoadout(t *testing.T) {
	body := `{
		"blue": {"items": [{"slot": "body", "product": 23}]},
		"orange": {"items": [{"slot": 0, "product": 23}]}
	}`
	rec := do(t, newHandler(t), http.MethodPost, "/loadouts/encode", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp encodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, encodeResponse{Code: defaultCode, Size: 10}, resp)
}

func TestEncodeLoadout_RoundTrip(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodGet, "/loadouts/"+complexCode, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var decoded decodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))

	doc, err := json.Marshal(decoded.Loadout)
	require.NoError(t, err)
	rec = do(t, h, http.MethodPost, "/loadouts/encode", string(doc))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var encoded encodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &encoded))
	require.Equal(t, complexCode, encoded.Code)
	require.Equal(t, decoded.Header.CodeSize, encoded.Size)
}

func TestEncodeLoadout_Errors(t *testing.T) {
	h := newHandler(t)
	tests := []struct {
		name string
		body string
	}{
		{"product overflow", `{"blue": {"items": [{"slot": "body", "product": 9000}]}}`},
		{"unknown slot", `{"blue": {"items": [{"slot": "spoiler", "product": 1}]}}`},
		{"unknown paint", `{"blue": {"items": [{"slot": "body", "product": 1, "paint": "mauve"}]}}`},
		{"bad color", `{"blue": {"items": [], "colors": {"primary": "red", "secondary": "#000000"}}}`},
		{"unknown field", `{"blue": {"items": []}, "green": {}}`},
		{"not json", `blue: {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/loadouts/encode", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestBodyLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBodyBytes = 16
	h := SetupRoutes(cfg, zap.NewNop())

	body := fmt.Sprintf(`{"code": %q}`, complexCode)
	rec := do(t, h, http.MethodPost, "/loadouts/decode", body)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServeListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ServeListener(ctx, ln, config.Default(), zap.NewNop())
	}()

	url := "http://" + ln.Addr().String()
	resp, err := http.Get(url + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(url+"/loadouts/decode", "application/json",
		bytes.NewBufferString(fmt.Sprintf(`{"code": %q}`, defaultCode)))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-done)
}
