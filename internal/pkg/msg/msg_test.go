package msg

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gotest.tools/assert"
)

func TestSubscribe(t *testing.T) {
	pidPub, err := uuid.NewUUID()
	assert.NilError(t, err)

	pidSub1, err := uuid.NewUUID()
	assert.NilError(t, err)

	pidSub2, err := uuid.NewUUID()
	assert.NilError(t, err)

	pubsub := NewPublisher(pidPub)
	ch1, err := pubsub.Subscribe(pidSub1, Topology)
	assert.NilError(t, err)
	ch2, err := pubsub.Subscribe(pidSub2, Topology)
	assert.NilError(t, err)

	pubsub.Publish(Topology, 42.0)

	incoming := <-ch1
	assert.Equal(t, incoming.Payload(), 42.0, "first subscriber did not receive the published value")
	assert.Equal(t, incoming.PID(), pidPub)
	assert.Equal(t, incoming.Topic(), Topology)

	incoming = <-ch2
	assert.Equal(t, incoming.Payload(), 42.0, "second subscriber did not receive the published value")
}

func TestTopicsAreIsolated(t *testing.T) {
	pidPub, _ := uuid.NewUUID()
	pidSub, _ := uuid.NewUUID()

	pubsub := NewPublisher(pidPub)
	ch, err := pubsub.Subscribe(pidSub, Status)
	assert.NilError(t, err)

	pubsub.Publish(Topology, "topology payload")

	select {
	case m := <-ch:
		t.Fatalf("status subscriber received topology message: %v", m)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	pidPub, _ := uuid.NewUUID()
	pidSub, _ := uuid.NewUUID()

	pubsub := NewPublisher(pidPub)
	ch, err := pubsub.Subscribe(pidSub, Topology)
	assert.NilError(t, err)

	pubsub.Unsubscribe(pidSub)

	_, ok := <-ch
	assert.Assert(t, !ok, "channel should be closed after unsubscribe")

	// Publishing after unsubscribe must not panic.
	pubsub.Publish(Topology, 1.0)
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	pidPub, _ := uuid.NewUUID()
	pidSub, _ := uuid.NewUUID()

	pubsub := NewPublisher(pidPub)
	_, err := pubsub.Subscribe(pidSub, Topology)
	assert.NilError(t, err)

	done := make(chan bool)
	go func() {
		// More publishes than the channel buffers, nobody reading.
		for i := 0; i < 100; i++ {
			pubsub.Publish(Topology, i)
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestStopRejectsNewSubscribers(t *testing.T) {
	pidPub, _ := uuid.NewUUID()
	pidSub, _ := uuid.NewUUID()

	pubsub := NewPublisher(pidPub)
	ch, err := pubsub.Subscribe(pidSub, Topology)
	assert.NilError(t, err)

	pubsub.Stop()

	_, ok := <-ch
	assert.Assert(t, !ok, "channel should be closed after stop")

	_, err = pubsub.Subscribe(pidSub, Topology)
	assert.Assert(t, err != nil)
}
