package fleet

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/clickshare"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/config"
)

var deviceNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Health represents device health states for fleet reporting.
type Health string

const (
	HealthHealthy  Health = "HEALTHY"
	HealthDegraded Health = "DEGRADED"
	HealthError    Health = "ERROR"
)

// Member is one registered device plus its poll bookkeeping. The snapshot
// kept here is whatever the last successful poll produced; it survives later
// poll failures so readers keep serving stale state while the device is away.
type Member struct {
	name     string
	host     string
	adapter  *clickshare.Adapter
	controls *prometheus.CounterVec

	mu       sync.Mutex
	snapshot *clickshare.Snapshot
	lastPoll time.Time
	lastErr  error
}

func (m *Member) Name() string { return m.name }

func (m *Member) Adapter() *clickshare.Adapter { return m.adapter }

// Poll fetches the device state and records the outcome for health
// reporting.
func (m *Member) Poll(ctx context.Context) (*clickshare.Snapshot, error) {
	snap, err := m.adapter.Poll(ctx)

	m.mu.Lock()
	m.lastPoll = time.Now()
	m.lastErr = err
	if err == nil {
		m.snapshot = snap
	}
	m.mu.Unlock()
	return snap, err
}

// Control dispatches one control action and counts the outcome.
func (m *Member) Control(ctx context.Context, req clickshare.ControlRequest) error {
	err := m.adapter.Control(ctx, req)
	m.countControl(err)
	return err
}

// ControlBatch dispatches a batch, counted as a single control request.
func (m *Member) ControlBatch(ctx context.Context, reqs []clickshare.ControlRequest) error {
	err := m.adapter.ControlBatch(ctx, reqs)
	m.countControl(err)
	return err
}

func (m *Member) countControl(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.controls.WithLabelValues(m.name, result).Inc()
}

func (m *Member) Health() Health {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.lastPoll.IsZero(), m.lastErr == nil:
		return HealthHealthy
	case m.snapshot != nil:
		return HealthDegraded
	default:
		return HealthError
	}
}

func (m *Member) HealthMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastErr == nil {
		return ""
	}
	return m.lastErr.Error()
}

// LastSnapshot returns the most recent successful snapshot and when the
// device was last polled. The snapshot is nil before the first success.
func (m *Member) LastSnapshot() (*clickshare.Snapshot, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot, m.lastPoll
}

// Summary is the manifest entry reported for one device.
type Summary struct {
	Name          string    `json:"name"`
	Host          string    `json:"host"`
	Model         string    `json:"model,omitempty"`
	APIVersion    string    `json:"api_version,omitempty"`
	Health        Health    `json:"health"`
	HealthMessage string    `json:"health_message,omitempty"`
	LastPoll      time.Time `json:"last_poll"`
}

func (m *Member) Summarize() Summary {
	snap, lastPoll := m.LastSnapshot()
	summary := Summary{
		Name:          m.name,
		Host:          m.host,
		APIVersion:    m.adapter.Version(),
		Health:        m.Health(),
		HealthMessage: m.HealthMessage(),
		LastPoll:      lastPoll,
	}
	if snap != nil {
		// the two generations qualify the model under different group names
		if model, ok := snap.Statistics["Device Information#Model Name"]; ok {
			summary.Model = model
		} else if model, ok := snap.Statistics["Device information#Model name"]; ok {
			summary.Model = model
		}
	}
	return summary
}

// Registry holds the configured fleet. Members are added at startup and the
// set stays fixed while the daemon runs.
type Registry struct {
	mu       sync.RWMutex
	members  []*Member
	index    map[string]*Member
	controls *prometheus.CounterVec
}

func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]*Member),
		controls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clickshare_control_requests_total",
			Help: "Control requests dispatched to devices by outcome",
		}, []string{"device", "result"}),
	}
}

// Add registers a device. Names are lowercase identifiers so they can double
// as MQTT topic segments and URL path elements.
func (r *Registry) Add(name, baseURL string, adapter *clickshare.Adapter) error {
	if !deviceNamePattern.MatchString(name) {
		return fmt.Errorf("device name %q does not match %s", name, deviceNamePattern.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("duplicate device name: %s", name)
	}

	host := baseURL
	if parsed, err := url.Parse(baseURL); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	member := &Member{name: name, host: host, adapter: adapter, controls: r.controls}
	r.members = append(r.members, member)
	r.index[name] = member
	return nil
}

func (r *Registry) Get(name string) (*Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.index[name]
	return member, ok
}

// Members returns the fleet in registration order.
func (r *Registry) Members() []*Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Member(nil), r.members...)
}

func (r *Registry) Summaries() []Summary {
	members := r.Members()
	summaries := make([]Summary, 0, len(members))
	for _, member := range members {
		summaries = append(summaries, member.Summarize())
	}
	return summaries
}

// Build assembles the fleet from configuration.
func Build(cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()
	for _, device := range cfg.Devices {
		password, err := device.ResolvePassword()
		if err != nil {
			return nil, fmt.Errorf("device %s password: %w", device.Name, err)
		}
		adapter, err := clickshare.NewAdapter(clickshare.Config{
			BaseURL:     device.BaseURL,
			Login:       device.Login,
			Password:    password,
			InsecureTLS: device.InsecureTLS,
			Timeout:     device.Timeout(),
			Cooldown:    device.Cooldown(),
		})
		if err != nil {
			return nil, fmt.Errorf("device %s: %w", device.Name, err)
		}
		if err := registry.Add(device.Name, device.BaseURL, adapter); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
