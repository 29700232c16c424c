package webservice

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/openmgc/mgc_core/internal/pkg/component"
	"github.com/openmgc/mgc_core/internal/pkg/graph"
)

type config struct {
	Addr string `json:"Addr"`
}

// Server exposes the component graph's query surface read-only over HTTP.
type Server struct {
	config config
	graph  *graph.ComponentGraph
}

// New returns a Server configured from the JSON file at configPath.
func New(configPath string, g *graph.ComponentGraph) (Server, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return Server{}, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Server{}, err
	}
	return Server{config: cfg, graph: g}, nil
}

// Process serves HTTP until the listener fails.
func (s Server) Process() {
	log.Println("[Webservice] Process Started on", s.config.Addr)
	if err := http.ListenAndServe(s.config.Addr, makeRouter(s.graph)); err != nil {
		log.Println("[Webservice]", err)
	}
}

func makeRouter(g *graph.ComponentGraph) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", baseHandler).Methods("GET")
	router.HandleFunc("/components", componentsHandler(g)).Methods("GET")
	router.HandleFunc("/connections", connectionsHandler(g)).Methods("GET")
	router.HandleFunc("/components/{id}/predecessors", neighborHandler(g.Predecessors)).Methods("GET")
	router.HandleFunc("/components/{id}/successors", neighborHandler(g.Successors)).Methods("GET")
	return router
}

func baseHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
}

func componentsHandler(g *graph.ComponentGraph) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, g.Components(graph.ComponentFilter{}))
	}
}

func connectionsHandler(g *graph.ComponentGraph) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, g.Connections(graph.ConnectionFilter{}))
	}
}

func neighborHandler(query func(int) ([]component.Component, error)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed component id"})
			return
		}

		neighbors, err := query(id)
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, neighbors)
	}
}

type errorBody struct {
	Error string `json:"Error"`
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	body, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(code)
	w.Write(body)
}
