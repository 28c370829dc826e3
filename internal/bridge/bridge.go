// Package bridge mirrors the device fleet onto an MQTT broker. Every poll
// publishes a retained state document per device, availability topics track
// reachability, and inbound command messages are dispatched as control
// requests.
package bridge

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/clickshare"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/config"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/fleet"
)

// commandTimeout bounds a control dispatched from an MQTT command message.
// Message handlers have no caller context to inherit.
const commandTimeout = 10 * time.Second

// Bridge connects one fleet registry to one MQTT broker.
//
// Topics under the configured prefix:
//
//	<prefix>/availability         bridge online/offline (retained, also the will)
//	<prefix>/<name>/state         latest snapshot JSON (retained)
//	<prefix>/<name>/availability  device online/offline (retained)
//	<prefix>/<name>/set           inbound control requests
//
// Commands travel in the payload, not the topic: ClickShare property names
// contain '#', which MQTT reserves as a wildcard.
type Bridge struct {
	client   mqtt.Client
	registry *fleet.Registry
	prefix   string
}

// New connects to the broker and subscribes to the command topic. The
// connection retries in the background after the initial attempt succeeds.
func New(cfg *config.MQTTConfig, registry *fleet.Registry) (*Bridge, error) {
	password, err := cfg.ResolvePassword()
	if err != nil {
		return nil, err
	}

	b := &Bridge{registry: registry, prefix: cfg.TopicPrefix}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetWill(availabilityTopic(b.prefix, ""), "offline", 0, true)
	opts.OnConnect = func(client mqtt.Client) {
		if token := client.Publish(availabilityTopic(b.prefix, ""), 0, true, "online"); token.Wait() && token.Error() != nil {
			log.Printf("clickshare mqtt: publish availability: %v", token.Error())
		}
		if token := client.Subscribe(commandTopic(b.prefix), 0, b.handleCommand); token.Wait() && token.Error() != nil {
			log.Printf("clickshare mqtt: subscribe %s: %v", commandTopic(b.prefix), token.Error())
		}
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	b.client = client
	return b, nil
}

// Close marks the bridge offline and disconnects from the broker.
func (b *Bridge) Close() {
	b.publish(availabilityTopic(b.prefix, ""), true, []byte("offline"))
	b.client.Disconnect(250)
}

// HandlePoll publishes the poll outcome for one device. Failures flip the
// device availability topic to offline; the last good state stays retained.
func (b *Bridge) HandlePoll(_ context.Context, member *fleet.Member, snap *clickshare.Snapshot, err error) {
	name := member.Name()
	if err != nil {
		b.publish(availabilityTopic(b.prefix, name), true, []byte("offline"))
		return
	}

	_, polledAt := member.LastSnapshot()
	payload, merr := json.Marshal(newStateMessage(member.Summarize(), snap, polledAt))
	if merr != nil {
		log.Printf("clickshare mqtt: encode state for %s: %v", name, merr)
		return
	}
	b.publish(stateTopic(b.prefix, name), true, payload)
	b.publish(availabilityTopic(b.prefix, name), true, []byte("online"))
}

func (b *Bridge) handleCommand(_ mqtt.Client, msg mqtt.Message) {
	name, ok := commandDevice(b.prefix, msg.Topic())
	if !ok {
		return
	}
	member, ok := b.registry.Get(name)
	if !ok {
		log.Printf("clickshare mqtt: command for unknown device %q", name)
		return
	}

	var req clickshare.ControlRequest
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		log.Printf("clickshare mqtt: bad command payload on %s: %v", msg.Topic(), err)
		return
	}
	if req.Property == "" {
		log.Printf("clickshare mqtt: command on %s has no property", msg.Topic())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if err := member.Control(ctx, req); err != nil {
		log.Printf("clickshare mqtt: control %s %s: %v", name, req.Property, err)
	}
}

func (b *Bridge) publish(topic string, retained bool, payload []byte) {
	if token := b.client.Publish(topic, 0, retained, payload); token.Wait() && token.Error() != nil {
		log.Printf("clickshare mqtt: publish %s: %v", topic, token.Error())
	}
}

// stateMessage is the retained per-device state document.
type stateMessage struct {
	Device     string               `json:"device"`
	Model      string               `json:"model,omitempty"`
	APIVersion string               `json:"api_version,omitempty"`
	PolledAt   time.Time            `json:"polled_at"`
	Statistics map[string]string    `json:"statistics"`
	Controls   []clickshare.Control `json:"controls"`
}

func newStateMessage(summary fleet.Summary, snap *clickshare.Snapshot, polledAt time.Time) stateMessage {
	return stateMessage{
		Device:     summary.Name,
		Model:      summary.Model,
		APIVersion: summary.APIVersion,
		PolledAt:   polledAt,
		Statistics: snap.Statistics,
		Controls:   snap.Controls,
	}
}

func stateTopic(prefix, name string) string {
	return prefix + "/" + name + "/state"
}

// availabilityTopic with an empty name names the bridge itself.
func availabilityTopic(prefix, name string) string {
	if name == "" {
		return prefix + "/availability"
	}
	return prefix + "/" + name + "/availability"
}

func commandTopic(prefix string) string {
	return prefix + "/+/set"
}

// commandDevice extracts the device name from a command topic. Anything that
// is not exactly <prefix>/<name>/set is rejected.
func commandDevice(prefix, topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, prefix+"/")
	if !ok {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, "/set")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
