package notify

import (
	"context"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/mdelgado-io/platformforge/internal/events"
	"github.com/mdelgado-io/platformforge/internal/orchestrator"
)

// PlanRunner executes a build plan received over the command topic.
type PlanRunner interface {
	Run(ctx context.Context, plan *orchestrator.Plan) (*orchestrator.RunResult, error)
}

// CommandBroker is the slice of the MQTT client the listener needs.
type CommandBroker interface {
	Subscribe(topic string, handler paho.MessageHandler) error
	Publish(topic string, payload []byte) error
}

// CommandListener accepts build plans over MQTT: a plan published to the
// build command topic is executed and its result published to the run topic.
// Subscription handling is idempotent across reconnects.
type CommandListener struct {
	mu         sync.Mutex
	broker     CommandBroker
	runner     PlanRunner
	publisher  *Publisher
	subscribed map[string]bool
}

// NewCommandListener creates a listener. The publisher supplies topic
// naming and result publication.
func NewCommandListener(broker CommandBroker, runner PlanRunner, publisher *Publisher) *CommandListener {
	return &CommandListener{
		broker:     broker,
		runner:     runner,
		publisher:  publisher,
		subscribed: make(map[string]bool),
	}
}

// BuildCommandTopic returns the topic plans are accepted on.
func (l *CommandListener) BuildCommandTopic() string {
	return l.publisher.prefix + "/commands/build"
}

// Listen subscribes to the build command topic. Calling it again after a
// reconnect is safe; already-subscribed topics are skipped.
func (l *CommandListener) Listen() error {
	topic := l.BuildCommandTopic()

	l.mu.Lock()
	if l.subscribed[topic] {
		l.mu.Unlock()
		return nil
	}
	l.mu.Unlock()

	if err := l.broker.Subscribe(topic, l.handleBuildCommand); err != nil {
		return err
	}

	l.mu.Lock()
	l.subscribed[topic] = true
	l.mu.Unlock()

	return nil
}

// handleBuildCommand parses and executes one plan message.
func (l *CommandListener) handleBuildCommand(_ paho.Client, msg paho.Message) {
	plan, err := orchestrator.ParsePlan(msg.Payload())
	if err != nil {
		events.Emit("error", "system.error", "rejected build command", map[string]interface{}{
			"topic": msg.Topic(),
			"error": err.Error(),
		})
		return
	}

	events.Emit("info", "operator.build", "", map[string]interface{}{
		"source":     "mqtt",
		"components": len(plan.Components),
	})

	result, err := l.runner.Run(context.Background(), plan)
	if err != nil {
		fields := map[string]interface{}{"error": err.Error()}
		if result != nil {
			fields["run_id"] = result.RunID
		}
		events.Emit("error", "system.error", "build command run failed", fields)
	}
	// The run result still carries per-component states; publish it so the
	// requester sees what failed.
	_ = l.publisher.PublishRunResult(result)
}

// IsSubscribed returns true if the topic is already subscribed.
func (l *CommandListener) IsSubscribed(topic string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subscribed[topic]
}

// ClearSubscriptions clears the subscription tracking.
// Call this on disconnect to allow re-subscription on reconnect.
func (l *CommandListener) ClearSubscriptions() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribed = make(map[string]bool)
}
