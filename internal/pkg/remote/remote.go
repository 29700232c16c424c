// Package remote fetches microgrid topology data from the component API.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/openmgc/mgc_core/internal/pkg/component"
)

type config struct {
	URL            string `json:"URL"`
	TimeoutSeconds int    `json:"TimeoutSeconds"`
}

// HTTPSource reads components and connections from the remote API's JSON
// endpoints. It satisfies graph.Source.
type HTTPSource struct {
	config config
	client *http.Client
}

// New returns an HTTPSource configured from the JSON file at configPath.
func New(configPath string) (HTTPSource, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return HTTPSource{}, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return HTTPSource{}, err
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 10
	}
	client := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	return HTTPSource{config: cfg, client: client}, nil
}

// NewWithURL returns an HTTPSource pointed directly at the given base URL.
func NewWithURL(url string) HTTPSource {
	return HTTPSource{
		config: config{URL: url, TimeoutSeconds: 10},
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Components fetches the current component set from the remote API.
func (s HTTPSource) Components(ctx context.Context) ([]component.Component, error) {
	components := make([]component.Component, 0)
	if err := s.get(ctx, s.config.URL+"/components", &components); err != nil {
		return nil, err
	}
	return components, nil
}

// Connections fetches the current connection set from the remote API.
func (s HTTPSource) Connections(ctx context.Context) ([]component.Connection, error) {
	connections := make([]component.Connection, 0)
	if err := s.get(ctx, s.config.URL+"/connections", &connections); err != nil {
		return nil, err
	}
	return connections, nil
}

func (s HTTPSource) get(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote source %s returned status %d", url, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
