package msg

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Topic partitions published messages by kind.
type Topic int

const (
	// Topology messages carry an accepted component graph snapshot.
	Topology Topic = iota
	// Status messages carry process health information.
	Status
)

// Publisher is an interface for objects that allow subscription to their events
type Publisher interface {
	Subscribe(uuid.UUID, Topic) (<-chan Msg, error)
	Unsubscribe(uuid.UUID)
}

// Msg is the envelope passed between system processes.
type Msg struct {
	sender  uuid.UUID
	topic   Topic
	payload interface{}
}

// New is the Msg factory function
func New(sender uuid.UUID, topic Topic, payload interface{}) Msg {
	return Msg{sender, topic, payload}
}

// PID returns the sender's PID
func (v Msg) PID() uuid.UUID {
	return v.sender
}

// Topic returns the message topic
func (v Msg) Topic() Topic {
	return v.topic
}

// Payload returns the message data
func (v Msg) Payload() interface{} {
	return v.payload
}

// PubSub fans published messages out to per-subscriber channels.
type PubSub struct {
	mux     *sync.Mutex
	pid     uuid.UUID
	subs    map[Topic]map[uuid.UUID]chan<- Msg
	stopped bool
}

// NewPublisher returns a PubSub owned by the process identified by pid.
func NewPublisher(pid uuid.UUID) *PubSub {
	return &PubSub{
		mux:  &sync.Mutex{},
		pid:  pid,
		subs: make(map[Topic]map[uuid.UUID]chan<- Msg),
	}
}

// Subscribe returns a read only channel carrying messages on the topic.
func (p *PubSub) Subscribe(pid uuid.UUID, topic Topic) (<-chan Msg, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.stopped {
		return nil, errors.New("publisher is stopped")
	}
	ch := make(chan Msg, 32)
	if _, ok := p.subs[topic]; !ok {
		p.subs[topic] = make(map[uuid.UUID]chan<- Msg)
	}
	p.subs[topic][pid] = ch
	return ch, nil
}

// Unsubscribe closes and removes all channels associated with the pid.
func (p *PubSub) Unsubscribe(pid uuid.UUID) {
	p.mux.Lock()
	defer p.mux.Unlock()
	for _, subs := range p.subs {
		if ch, ok := subs[pid]; ok {
			delete(subs, pid)
			close(ch)
		}
	}
}

// Publish broadcasts the payload to all subscribers of the topic. A slow
// subscriber with a full channel misses the message rather than blocking
// the publisher.
func (p *PubSub) Publish(topic Topic, payload interface{}) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.stopped {
		return
	}
	for _, ch := range p.subs[topic] {
		select {
		case ch <- New(p.pid, topic, payload):
		default:
		}
	}
}

// Stop closes all subscriber channels and rejects further subscriptions.
func (p *PubSub) Stop() {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	for _, subs := range p.subs {
		for pid, ch := range subs {
			delete(subs, pid)
			close(ch)
		}
	}
}
