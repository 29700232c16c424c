package webservice

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openmgc/mgc_core/internal/pkg/component"
	"github.com/openmgc/mgc_core/internal/pkg/graph"
	"gotest.tools/assert"
)

func testGraph(t *testing.T) *graph.ComponentGraph {
	t.Helper()
	g, err := graph.NewFrom(
		[]component.Component{
			{ID: 1, Category: component.Grid},
			{ID: 2, Category: component.Meter},
			{ID: 3, Category: component.Inverter, InverterType: component.InverterSolar},
		},
		[]component.Connection{
			{Start: 1, End: 2},
			{Start: 2, End: 3},
		},
	)
	assert.NilError(t, err)
	return g
}

func TestComponentsGet(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/components", nil)

	router := makeRouter(testGraph(t))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")
	assert.Equal(t, "application/json; charset=UTF-8", w.HeaderMap.Get("Content-Type"), "got expected Content-Type in response")

	components := []component.Component{}
	err := json.Unmarshal(w.Body.Bytes(), &components)
	assert.NilError(t, err)
	assert.Equal(t, len(components), 3)
}

func TestConnectionsGet(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/connections", nil)

	router := makeRouter(testGraph(t))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")

	connections := []component.Connection{}
	err := json.Unmarshal(w.Body.Bytes(), &connections)
	assert.NilError(t, err)
	assert.Equal(t, len(connections), 2)
}

func TestSuccessorsGet(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/components/2/successors", nil)

	router := makeRouter(testGraph(t))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")

	successors := []component.Component{}
	err := json.Unmarshal(w.Body.Bytes(), &successors)
	assert.NilError(t, err)
	assert.Equal(t, len(successors), 1)
	assert.Equal(t, successors[0].ID, 3)
}

func TestPredecessorsGet(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/components/2/predecessors", nil)

	router := makeRouter(testGraph(t))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")

	predecessors := []component.Component{}
	err := json.Unmarshal(w.Body.Bytes(), &predecessors)
	assert.NilError(t, err)
	assert.Equal(t, len(predecessors), 1)
	assert.Equal(t, predecessors[0].ID, 1)
}

func TestSuccessorsOfUnknownComponent(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/components/42/successors", nil)

	router := makeRouter(testGraph(t))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code, "get returned 404")
}

func TestSuccessorsMalformedID(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/components/banana/successors", nil)

	router := makeRouter(testGraph(t))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code, "get returned 400")
}
