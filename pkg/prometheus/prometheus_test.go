package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_claims_total",
		Help: "test",
	}, []string{"result"})
	counter.WithLabelValues("success").Inc()

	w := httptest.NewRecorder()
	NewHandler(counter).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `test_claims_total{result="success"} 1`)
}
