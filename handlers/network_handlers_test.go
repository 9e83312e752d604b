package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vit0-9/imagefetch_api/models"
)

type mapResolver map[string][]string

func (m mapResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	ips, ok := m[host]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	var out []net.IPAddr
	for _, ip := range ips {
		out = append(out, net.IPAddr{IP: net.ParseIP(ip)})
	}
	return out, nil
}

func (m mapResolver) LookupCNAME(_ context.Context, host string) (string, error) {
	return host + ".", nil
}

func setupNetworkRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNetworkDiagnosticsHandlers(nil, mapResolver{
		"rebind.example.com": {"93.184.216.34", "127.0.0.1"},
	})
	r := gin.New()
	r.GET("/api/v1/net/ip-info", h.IPInfoHandler)
	r.GET("/api/v1/net/dns-lookup", h.DNSLookupHandler)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestIPInfoHandler(t *testing.T) {
	r := setupNetworkRouter()

	tests := []struct {
		ip             string
		classification string
		allowed        bool
	}{
		{"8.8.8.8", "public", true},
		{"169.254.169.254", "private", false},
		{"::ffff:127.0.0.1", "private", false},
		{"0x7f.0.0.1", "unparseable", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			w := get(r, "/api/v1/net/ip-info?ip="+tt.ip)
			require.Equal(t, http.StatusOK, w.Code)

			var resp models.IPInfoResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.classification, resp.Classification)
			assert.Equal(t, tt.allowed, resp.FetchAllowed)
		})
	}

	w := get(r, "/api/v1/net/ip-info")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDNSLookupHandler(t *testing.T) {
	r := setupNetworkRouter()

	w := get(r, "/api/v1/net/dns-lookup?domain=rebind.example.com&record_types=A,CNAME")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DNSLookupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Records["A"], 2)
	assert.Equal(t, "public", resp.Records["A"][0].Classification)
	assert.Equal(t, "private", resp.Records["A"][1].Classification)
	assert.Equal(t, "rebind.example.com", resp.Records["CNAME"][0].Value)
	assert.NotContains(t, resp.Records, "AAAA")

	w = get(r, "/api/v1/net/dns-lookup?domain=missing.example.com")
	require.Equal(t, http.StatusOK, w.Code)
	resp = models.DNSLookupResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Errors["A"])

	w = get(r, "/api/v1/net/dns-lookup")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthCheckHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	r := gin.New()
	r.GET("/up", NewHealthHandler(dir).HealthCheckHandler)
	r.GET("/down", NewHealthHandler(filepath.Join(dir, "missing")).HealthCheckHandler)

	w := get(r, "/up")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP","storage":"ok"}`, w.Body.String())

	w = get(r, "/down")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"DOWN","storage":"unavailable"}`, w.Body.String())
}
