package root

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openmgc/mgc_core/internal/pkg/component"
	"github.com/openmgc/mgc_core/internal/pkg/graph"
	"github.com/openmgc/mgc_core/internal/pkg/msg"
	"github.com/openmgc/mgc_core/internal/pkg/poller"
	"gotest.tools/assert"
)

type stubSource struct{}

func (s stubSource) Components(ctx context.Context) ([]component.Component, error) {
	return []component.Component{
		{ID: 1, Category: component.Grid},
		{ID: 2, Category: component.Meter},
	}, nil
}

func (s stubSource) Connections(ctx context.Context) ([]component.Connection, error) {
	return []component.Connection{{Start: 1, End: 2}}, nil
}

func buildSystem(t *testing.T) (System, *poller.Poller, *graph.ComponentGraph) {
	t.Helper()
	g, err := graph.New()
	assert.NilError(t, err)

	p, err := poller.New("root_test_config.json", g, stubSource{}, nil)
	assert.NilError(t, err)

	system, err := NewSystem(g, p)
	assert.NilError(t, err)
	return system, p, g
}

func TestSystemExposesGraph(t *testing.T) {
	system, _, g := buildSystem(t)
	assert.Equal(t, system.Graph(), g)
}

func TestSystemRelaysTopologyEvents(t *testing.T) {
	system, p, _ := buildSystem(t)

	pidSub, _ := uuid.NewUUID()
	ch, err := system.Subscribe(pidSub, msg.Topology)
	assert.NilError(t, err)

	err = p.RefreshOnce(context.Background())
	assert.NilError(t, err)

	select {
	case m := <-ch:
		assert.Equal(t, m.Topic(), msg.Topology)
	case <-time.After(1 * time.Second):
		t.Fatal("no topology message relayed through the system")
	}

	system.Unsubscribe(pidSub)
	_, ok := <-ch
	assert.Assert(t, !ok, "channel should be closed after unsubscribe")
}
