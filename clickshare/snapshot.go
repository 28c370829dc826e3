package clickshare

import (
	"strings"
	"time"
)

// ControlKind enumerates the UI control types a device property can expose.
type ControlKind string

const (
	KindButton   ControlKind = "button"
	KindDropdown ControlKind = "dropdown"
	KindSwitch   ControlKind = "switch"
	KindText     ControlKind = "text"
)

// Control describes one user-adjustable device property. Kind decides which
// of the optional fields are meaningful. Name always has a matching entry in
// the snapshot statistics map, possibly empty for action-only controls.
type Control struct {
	Name      string      `json:"name"`
	Kind      ControlKind `json:"kind"`
	Value     string      `json:"value"`
	Timestamp time.Time   `json:"timestamp"`

	Label        string        `json:"label,omitempty"`
	LabelPressed string        `json:"label_pressed,omitempty"`
	GracePeriod  time.Duration `json:"grace_period,omitempty"`

	Options []string `json:"options,omitempty"`
	Labels  []string `json:"labels,omitempty"`

	LabelOn  string `json:"label_on,omitempty"`
	LabelOff string `json:"label_off,omitempty"`
}

// Snapshot is the device state produced by one full poll: a flat statistics
// map keyed by display-qualified property names plus the ordered control
// descriptors. It is replaced wholesale on a full poll and patched in place
// after a confirmed control write.
type Snapshot struct {
	Statistics map[string]string `json:"statistics"`
	Controls   []Control         `json:"controls"`
}

func newSnapshot() *Snapshot {
	return &Snapshot{Statistics: map[string]string{}}
}

func (s *Snapshot) addStat(name, value string) {
	s.Statistics[name] = value
}

// addTextualStat mirrors the device convention that optional string fields
// only become statistics when present and non-blank.
func (s *Snapshot) addTextualStat(name string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}
	s.Statistics[name] = *value
}

func (s *Snapshot) addControl(c Control) {
	s.Controls = append(s.Controls, c)
}

// patch records a confirmed write: the statistics entry takes the encoded
// device value while the control keeps the caller-supplied one.
func (s *Snapshot) patch(name, deviceValue, controlValue string, at time.Time) {
	if s == nil {
		return
	}
	s.Statistics[name] = deviceValue
	for i := range s.Controls {
		if s.Controls[i].Name == name {
			s.Controls[i].Value = controlValue
			s.Controls[i].Timestamp = at
			break
		}
	}
}

func newButton(name, label, labelPressed string, gracePeriod time.Duration) Control {
	return Control{
		Name:         name,
		Kind:         KindButton,
		Timestamp:    time.Now(),
		Label:        label,
		LabelPressed: labelPressed,
		GracePeriod:  gracePeriod,
	}
}

// newDropdown builds a dropdown whose labels mirror its option values.
func newDropdown(name, value string, options []string) Control {
	return newLabeledDropdown(name, value, options, options)
}

func newLabeledDropdown(name, value string, labels, options []string) Control {
	return Control{
		Name:      name,
		Kind:      KindDropdown,
		Value:     value,
		Timestamp: time.Now(),
		Options:   options,
		Labels:    labels,
	}
}

func newSwitch(name, labelOn, labelOff string, on bool) Control {
	value := "0"
	if on {
		value = "1"
	}
	return Control{
		Name:      name,
		Kind:      KindSwitch,
		Value:     value,
		Timestamp: time.Now(),
		LabelOn:   labelOn,
		LabelOff:  labelOff,
	}
}

func newText(name, value string) Control {
	return Control{
		Name:      name,
		Kind:      KindText,
		Value:     value,
		Timestamp: time.Now(),
	}
}
