// Package clickshare monitors and controls Barco ClickShare presentation
// devices over their REST API. One Adapter owns one device. The device web
// server is single-user: every poll and control action runs under the same
// lock, and a short cooldown after each control serves cached state so the
// device is not polled while it is still applying a change.
package clickshare

import (
	"context"
	"errors"
	"sync"
	"time"
)

// defaultCooldown is how long after a control action polls keep serving the
// cached snapshot instead of hitting the device.
const defaultCooldown = 3 * time.Second

// ErrEmptyControlBatch is returned by ControlBatch for a batch with no
// entries.
var ErrEmptyControlBatch = errors.New("control batch is empty")

// ControlRequest names one controllable property and the value to apply.
// Switch values arrive as "0" or "1" and are re-encoded for the wire.
type ControlRequest struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// Adapter is a stateful session with one ClickShare device. The API
// generation is resolved on first use and kept for the lifetime of the
// session, as is the device model that gates some v1 option sets.
type Adapter struct {
	client *client

	mu          sync.Mutex
	version     apiVersion
	deviceModel string
	cached      *Snapshot
	lastControl time.Time

	cooldown time.Duration
	now      func() time.Time
}

// NewAdapter validates cfg and builds an Adapter for the device at
// cfg.BaseURL. No network traffic happens until the first Poll or Control.
func NewAdapter(cfg Config) (*Adapter, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &Adapter{client: c, cooldown: cooldown, now: time.Now}, nil
}

// Poll produces a fresh device snapshot. Within the control cooldown the
// previous snapshot is served verbatim; the first poll always reaches the
// device.
func (a *Adapter) Poll(ctx context.Context) (*Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.resolveVersion(ctx); err != nil {
		return nil, err
	}
	if a.cached != nil && a.now().Sub(a.lastControl) < a.cooldown {
		return a.cached, nil
	}

	var (
		snap *Snapshot
		err  error
	)
	if a.version.v2 {
		snap, err = a.buildV2Snapshot(ctx)
	} else {
		snap, err = a.buildV1Snapshot(ctx)
	}
	if err != nil {
		return nil, err
	}
	a.cached = snap
	return snap, nil
}

// Control applies one control action to the device.
func (a *Adapter) Control(ctx context.Context, req ControlRequest) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.resolveVersion(ctx); err != nil {
		return err
	}
	return a.dispatch(ctx, req.Property, req.Value)
}

// ControlBatch applies control actions in order and stops at the first
// failure.
func (a *Adapter) ControlBatch(ctx context.Context, reqs []ControlRequest) error {
	if len(reqs) == 0 {
		return ErrEmptyControlBatch
	}
	for _, req := range reqs {
		if err := a.Control(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// Version reports the resolved API generation ("v1.11", "v2"), or the empty
// string before the first successful device contact.
func (a *Adapter) Version() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.version.String()
}
