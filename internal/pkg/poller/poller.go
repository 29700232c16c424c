// Package poller drives periodic refreshes of the component graph from the
// remote topology source.
package poller

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/openmgc/mgc_core/internal/pkg/component"
	"github.com/openmgc/mgc_core/internal/pkg/graph"
	"github.com/openmgc/mgc_core/internal/pkg/msg"
)

type config struct {
	PollSeconds int `json:"PollSeconds"`
}

// Poller periodically replaces the component graph from the remote source
// and publishes each accepted topology to its subscribers. A rejected
// refresh leaves the graph untouched and publishes nothing.
type Poller struct {
	pid     uuid.UUID
	graph   *graph.ComponentGraph
	source  graph.Source
	correct graph.CorrectionHook
	pubsub  *msg.PubSub
	config  config
	stop    chan bool
}

// New returns a Poller configured from the JSON file at configPath.
func New(configPath string, g *graph.ComponentGraph, source graph.Source, correct graph.CorrectionHook) (*Poller, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return nil, err
	}
	if cfg.PollSeconds <= 0 {
		cfg.PollSeconds = 60
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}

	return &Poller{
		pid:     pid,
		graph:   g,
		source:  source,
		correct: correct,
		pubsub:  msg.NewPublisher(pid),
		config:  cfg,
		stop:    make(chan bool),
	}, nil
}

// PID is a getter for the poller PID.
func (p *Poller) PID() uuid.UUID {
	return p.pid
}

// Subscribe returns a read only channel carrying messages on the topic.
func (p *Poller) Subscribe(pid uuid.UUID, topic msg.Topic) (<-chan msg.Msg, error) {
	return p.pubsub.Subscribe(pid, topic)
}

// Unsubscribe closes the subscriber's channels.
func (p *Poller) Unsubscribe(pid uuid.UUID) {
	p.pubsub.Unsubscribe(pid)
}

// RefreshOnce runs a single refresh cycle against the remote source.
func (p *Poller) RefreshOnce(ctx context.Context) error {
	if err := p.graph.RefreshFromAPI(ctx, p.source, p.correct); err != nil {
		return err
	}
	p.pubsub.Publish(msg.Topology, component.Topology{
		Components:  p.graph.Components(graph.ComponentFilter{}),
		Connections: p.graph.Connections(graph.ConnectionFilter{}),
	})
	return nil
}

// Process runs the refresh loop until Stop is called.
func (p *Poller) Process() {
	log.Println("[Poller] Process Started")
	interval := time.Duration(p.config.PollSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			if err := p.RefreshOnce(ctx); err != nil {
				log.Printf("[Poller] Refresh rejected: %v", err)
			}
			cancel()
		case <-p.stop:
			break loop
		}
	}
	p.pubsub.Stop()
	log.Println("[Poller] Process Shutdown")
}

// Stop terminates the refresh loop.
func (p *Poller) Stop() {
	p.stop <- true
}
