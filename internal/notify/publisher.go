package notify

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/mdelgado-io/platformforge/internal/events"
	"github.com/mdelgado-io/platformforge/internal/orchestrator"
)

// DefaultTopicPrefix is used when the config leaves the prefix empty.
const DefaultTopicPrefix = "platformforge"

// Broker is the slice of the MQTT client the publisher needs. Tests swap in
// a fake; production wiring passes *Client.
type Broker interface {
	Publish(topic string, payload []byte) error
	IsConnected() bool
}

// Publisher mirrors run lifecycle events and results onto MQTT topics so
// downstream systems can react to builds without polling the API.
type Publisher struct {
	broker Broker
	prefix string

	mu      sync.Mutex
	sub     events.Subscriber
	stopped bool
}

// NewPublisher creates a publisher. An empty prefix falls back to
// DefaultTopicPrefix.
func NewPublisher(broker Broker, prefix string) *Publisher {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &Publisher{broker: broker, prefix: strings.TrimSuffix(prefix, "/")}
}

// EventTopic returns the topic an event of the given name is published to.
func (p *Publisher) EventTopic(name string) string {
	return p.prefix + "/events/" + name
}

// RunTopic returns the topic a run result is published to.
func (p *Publisher) RunTopic(runID string) string {
	return p.prefix + "/runs/" + runID
}

// forwardable reports whether an event belongs on the broker. Only run and
// component lifecycle events go out; internal plumbing stays local.
func forwardable(name string) bool {
	return strings.HasPrefix(name, "run.") || strings.HasPrefix(name, "component.")
}

// Start subscribes to the in-process event stream and forwards lifecycle
// events until Stop is called.
func (p *Publisher) Start() {
	p.mu.Lock()
	if p.sub != nil {
		p.mu.Unlock()
		return
	}
	p.sub = events.Subscribe()
	p.stopped = false
	sub := p.sub
	p.mu.Unlock()

	go func() {
		for e := range sub {
			if !forwardable(e.Name) {
				continue
			}
			payload, err := json.Marshal(e)
			if err != nil {
				continue
			}
			if err := p.broker.Publish(p.EventTopic(e.Name), payload); err != nil {
				log.Printf("notify: publish %s failed: %v", e.Name, err)
			}
		}
	}()
}

// Stop unsubscribes from the event stream.
func (p *Publisher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sub == nil || p.stopped {
		return
	}
	p.stopped = true
	events.Unsubscribe(p.sub)
	p.sub = nil
}

// PublishRunResult pushes a completed run's result to its run topic.
func (p *Publisher) PublishRunResult(result *orchestrator.RunResult) error {
	if result == nil {
		return nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return p.broker.Publish(p.RunTopic(result.RunID), payload)
}

// Connected reports the broker connection state for readiness checks.
func (p *Publisher) Connected() bool {
	return p.broker.IsConnected()
}
