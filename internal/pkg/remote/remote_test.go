package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openmgc/mgc_core/internal/pkg/component"
	"gotest.tools/assert"
)

func topologyServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/components", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.Write([]byte(`[
			{"ID": 1, "Category": "GRID", "Metadata": {"FuseRatedAmps": 63}},
			{"ID": 2, "Category": "METER"},
			{"ID": 3, "Category": "INVERTER", "InverterType": "SOLAR"}
		]`))
	})
	mux.HandleFunc("/connections", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.Write([]byte(`[
			{"Start": 1, "End": 2},
			{"Start": 2, "End": 3}
		]`))
	})
	return httptest.NewServer(mux)
}

func TestFetchComponents(t *testing.T) {
	server := topologyServer(t)
	defer server.Close()

	source := NewWithURL(server.URL)
	components, err := source.Components(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, len(components), 3)
	assert.Equal(t, components[0].Category, component.Grid)
	assert.Equal(t, components[0].Metadata.FuseRatedAmps, 63.0)
	assert.Equal(t, components[2].InverterType, component.InverterSolar)
}

func TestFetchConnections(t *testing.T) {
	server := topologyServer(t)
	defer server.Close()

	source := NewWithURL(server.URL)
	connections, err := source.Connections(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, len(connections), 2)
	assert.Equal(t, connections[0].Start, 1)
	assert.Equal(t, connections[1].End, 3)
}

func TestFetchFailsOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewWithURL(server.URL)
	_, err := source.Components(context.Background())
	assert.Assert(t, err != nil)
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	server := topologyServer(t)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := NewWithURL(server.URL)
	_, err := source.Components(ctx)
	assert.Assert(t, err != nil)
}
