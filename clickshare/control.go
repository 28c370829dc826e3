package clickshare

import (
	"context"
	"fmt"
	"log"
	"regexp"
)

// outputResolutionName matches the per-output resolution controls that are
// named after a 1-based display index instead of a fixed property name.
var outputResolutionName = regexp.MustCompile(`^Display#Output (\d{1,3}) Resolution$`)

// writeTarget describes where a controllable property writes to and which
// form key carries the value. Toggle targets receive the switch state
// re-encoded as "true"/"false".
type writeTarget struct {
	resource string
	key      string
	toggle   bool
}

// v2Writes routes controllable properties onto v2 PATCH targets.
var v2Writes = map[string]writeTarget{
	propPowerMode:      {v2PowerManagement, "powerMode", false},
	propPowerStatus:    {v2PowerManagement, "status", false},
	propStandbyTimeout: {v2PowerManagement, "standbyTimeout", false},
	propVideoMode:      {v2ConfigurationVideo, "mode", false},
	propAudioOutput:    {v2ConfigurationAudio, "output", false},
	propLanguage:       {v2Personalization, "language", false},
	propWelcomeMessage: {v2Personalization, "welcomeMessage", false},
	propMeetingRoom:    {v2Personalization, "meetingRoomName", false},
	propMiracast:       {v2FeaturesMiracast, "enabled", true},
	propGooglecast:     {v2FeaturesGooglecast, "enabled", true},
	propAirplay:        {v2FeaturesAirplay, "enabled", true},
	propBlackboard:     {v2FeaturesBlackboard, "savingEnabled", true},
	propAudio:          {v2ConfigurationAudio, "enabled", true},
}

// v1Writes routes controllable properties onto v1 PUT targets. Every v1
// write carries its payload under the "value" form key.
var v1Writes = map[string]writeTarget{
	propPowerMode:              {v1EnergyMode, "value", false},
	propOnScreenLanguage:       {v1OnScreenLanguage, "value", false},
	propOnScreenWelcomeMessage: {v1OnScreenWelcomeMessage, "value", false},
	propOnScreenMeetingRoom:    {v1OnScreenMeetingRoomName, "value", false},
	propSoftwareUpdateType:     {v1UpdateType, "value", false},
	propAudioOutput:            {v1AudioOutput, "value", false},
	propScreensaverMode:        {v1ScreensaverMode, "value", false},
	propDisplayTimeout:         {v1DisplayTimeout, "value", false},
	propScreensaverTimeout:     {v1ScreensaverTimeout, "value", false},
	propMiracast:               {v1EnableMiracast, "value", true},
	propGooglecast:             {v1EnableGoogleCast, "value", true},
	propAirplay:                {v1EnableAirplay, "value", true},
	propBlackboard:             {v1BlackboardSaving, "value", true},
	propClickShareApp:          {v1EnableClickShareApp, "value", true},
	propShowMeetingRoomInfo:    {v1OnScreenShowMeetingRoom, "value", true},
	propShowNetworkInfo:        {v1OnScreenShowNetwork, "value", true},
	propAudio:                  {v1AudioEnabled, "value", true},
	propShowWallpaper:          {v1ShowWallpaper, "value", true},
	propHotPlug:                {v1DisplayHotPlug, "value", true},
	propDisplayStandby:         {v1DisplayStandby, "value", true},
}

// encodeSwitchState maps a UI switch state onto the wire form: "0" means
// off, anything else counts as on.
func encodeSwitchState(value string) string {
	if value == "0" {
		return "false"
	}
	return "true"
}

// dispatch routes one control action onto the device. Unknown properties
// are logged and ignored so a stale UI cannot fail the whole adapter.
func (a *Adapter) dispatch(ctx context.Context, property, value string) error {
	if m := outputResolutionName.FindStringSubmatch(property); m != nil {
		_, err := a.writeV1(ctx, fmt.Sprintf(v1DisplayResolution, m[1]), "value", value, value, property)
		return err
	}
	if a.version.v2 {
		return a.dispatchV2(ctx, property, value)
	}
	return a.dispatchV1(ctx, property, value)
}

func (a *Adapter) dispatchV2(ctx context.Context, property, value string) error {
	switch property {
	case propStandby:
		_, err := a.requestStandby(ctx)
		return err
	case propReboot:
		_, err := a.requestReboot(ctx)
		return err
	}
	target, ok := v2Writes[property]
	if !ok {
		log.Printf("clickshare control %q with value %q is not supported", property, value)
		return nil
	}
	deviceValue := value
	if target.toggle {
		deviceValue = encodeSwitchState(value)
	}
	_, err := a.writeV2(ctx, target.resource, target.key, deviceValue, value, property)
	return err
}

func (a *Adapter) dispatchV1(ctx context.Context, property, value string) error {
	switch property {
	case propStandby:
		return a.v1ToggleStandby(ctx, value)
	case propReboot:
		_, err := a.requestReboot(ctx)
		return err
	}
	target, ok := v1Writes[property]
	if !ok {
		log.Printf("clickshare control %q with value %q is not supported", property, value)
		return nil
	}
	deviceValue := value
	if target.toggle {
		deviceValue = encodeSwitchState(value)
	}
	_, err := a.writeV1(ctx, target.resource, target.key, deviceValue, value, property)
	return err
}

// v1ToggleStandby switches standby through the v1 API. The v1 generation
// has no readable power status between polls, so a confirmed write also
// flips the cached Power Status statistic right away.
func (a *Adapter) v1ToggleStandby(ctx context.Context, value string) error {
	success, err := a.writeV1(ctx, v1RequestStandby, "value", encodeSwitchState(value), value, propStandby)
	if err != nil || !success {
		return err
	}
	status := "Standby"
	if value == "0" {
		status = "On"
	}
	if a.cached != nil {
		a.cached.Statistics[propPowerStatus] = status
	}
	return nil
}

// writeV1 sends one form-encoded PUT to a v1 resource. When the device
// confirms the write in its response body, the cached snapshot is patched:
// the statistics entry takes the wire value while the matching control
// keeps controlValue. The control cooldown advances regardless of the
// outcome, a rejected write still means the device was busy handling it.
func (a *Adapter) writeV1(ctx context.Context, resource, key, deviceValue, controlValue, property string) (bool, error) {
	defer a.touchControl()
	success, err := a.client.put(ctx, a.version.path(resource), key, deviceValue)
	if err != nil || !success {
		return false, err
	}
	a.cached.patch(property, deviceValue, controlValue, a.now())
	return true, nil
}

// writeV2 is the PATCH counterpart of writeV1 for the v2 generation.
func (a *Adapter) writeV2(ctx context.Context, resource, key, deviceValue, controlValue, property string) (bool, error) {
	defer a.touchControl()
	success, err := a.client.patch(ctx, a.version.path(resource), key, deviceValue)
	if err != nil || !success {
		return false, err
	}
	a.cached.patch(property, deviceValue, controlValue, a.now())
	return true, nil
}

// requestReboot asks the device to restart itself. The cooldown advances
// before the request goes out: the device stops answering mid-flight and
// polls during the grace period must keep serving the cached snapshot.
func (a *Adapter) requestReboot(ctx context.Context) (bool, error) {
	a.touchControl()
	if a.version.v2 {
		return a.client.post(ctx, a.version.path(v2OperationsReboot))
	}
	return a.client.put(ctx, a.version.path(v1RestartSystem), "value", "true")
}

func (a *Adapter) requestStandby(ctx context.Context) (bool, error) {
	a.touchControl()
	return a.client.post(ctx, a.version.path(v2OperationsStandby))
}

func (a *Adapter) touchControl() {
	a.lastControl = a.now()
}
