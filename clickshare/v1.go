package clickshare

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// v1Blocks is the feature cascade for the v1 generation. Thresholds are
// ascending; every poll runs the blocks whose threshold the device's minor
// version meets. Firmware features only ever accumulate across minors.
var v1Blocks = []struct {
	minMinor int
	fetch    func(*Adapter, context.Context, *Snapshot) error
}{
	{0, (*Adapter).v1FetchDeviceInfo},
	{5, (*Adapter).v1FetchEnergyMode},
	{6, (*Adapter).v1FetchSystemState},
	{7, (*Adapter).v1FetchSoftwareFeatures},
	{8, (*Adapter).v1FetchClientFeatures},
	{11, (*Adapter).v1FetchNetworkSensors},
	{13, (*Adapter).v1FetchMiracast},
	{14, (*Adapter).v1FetchScreensaver},
}

func (a *Adapter) buildV1Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := newSnapshot()
	for _, block := range v1Blocks {
		if a.version.minor < block.minMinor {
			break
		}
		if err := block.fetch(a, ctx, snap); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// getV1 fetches a v1 resource and decodes its envelope value into dest.
// Returns false without error when this firmware does not carry the
// resource; dest is left untouched in that case.
func (a *Adapter) getV1(ctx context.Context, resource string, dest any) (bool, error) {
	var envelope v1Envelope
	if err := a.client.get(ctx, a.version.path(resource), &envelope); err != nil {
		if isResourceMissing(err) {
			return false, nil
		}
		return false, err
	}
	if len(envelope.Data.Value) == 0 {
		return false, fmt.Errorf("%s: envelope has no data.value", resource)
	}
	if err := json.Unmarshal(envelope.Data.Value, dest); err != nil {
		return false, fmt.Errorf("decode %s value: %w", resource, err)
	}
	return true, nil
}

func (a *Adapter) getV1Text(ctx context.Context, resource string) (string, error) {
	var value string
	if _, err := a.getV1(ctx, resource, &value); err != nil {
		return "", err
	}
	return value, nil
}

func (a *Adapter) getV1Bool(ctx context.Context, resource string) (bool, error) {
	var value bool
	if _, err := a.getV1(ctx, resource, &value); err != nil {
		return false, err
	}
	return value, nil
}

// getV1OptionalText fetches a resource whose value only becomes a statistic
// when the device reports it as a JSON string; anything else is skipped.
func (a *Adapter) getV1OptionalText(ctx context.Context, resource string) (*string, error) {
	var raw json.RawMessage
	ok, err := a.getV1(ctx, resource, &raw)
	if err != nil || !ok {
		return nil, err
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, nil
	}
	return &value, nil
}

// v1FetchDeviceInfo is the base block every v1 firmware serves: identity,
// status, sensors, the process table, the audio switch, the reboot button,
// and the display and on-screen-text groups. The model name discovered here
// drives model-specific option sets in later blocks.
func (a *Adapter) v1FetchDeviceInfo(ctx context.Context, snap *Snapshot) error {
	var info v1DeviceInfoData
	ok, err := a.getV1(ctx, v1DeviceInfo, &info)
	if err != nil {
		return err
	}
	audioEnabled, err := a.getV1Bool(ctx, v1AudioEnabled)
	if err != nil {
		return err
	}

	if ok {
		a.deviceModel = info.ModelName

		snap.addStat("Device Information#Article Number", info.ArticleNumber)
		snap.addStat("Device Information#Model Name", info.ModelName)
		snap.addStat("Device Information#Serial Number", info.SerialNumber)

		snap.addStat("Device Status#Uptime (sec)", info.CurrentUptime.String())
		snap.addStat("Device Status#Uptime Total (sec)", info.TotalUptime.String())
		snap.addStat("Device Status#First Used", info.FirstUsed)
		snap.addStat("Device Status#In Use", strconv.FormatBool(info.InUse))
		snap.addStat("Device Status#Status", deviceStatusText(info.Status))
		snap.addStat("Device Status#Sharing", strconv.FormatBool(info.Sharing))
		snap.addTextualStat("Device Status#Status Message", info.StatusMessage)

		snap.addStat("Device Sensors#Cpu Temperature (C)", info.Sensors.CPUTemperature.String())
		snap.addStat("Device Sensors#Pcie Temperature (C)", info.Sensors.PcieTemperature.String())
		snap.addStat("Device Sensors#Sio Temperature (C)", info.Sensors.SioTemperature.String())
		snap.addTextualStat("Last used", info.LastUsed)

		for i := 1; i <= info.Processes.ProcessCount; i++ {
			process, found := info.Processes.ProcessTable[strconv.Itoa(i)]
			if !found {
				continue
			}
			snap.addStat(fmt.Sprintf("Processes#%d. %s", i, process.Name), process.Status)
		}
	}

	snap.addStat(propAudio, "")
	snap.addControl(newSwitch(propAudio, "enabled", "disabled", audioEnabled))
	snap.addStat(propReboot, "")
	snap.addControl(newButton(propReboot, propReboot, "Rebooting...", v1RebootGracePeriod))

	if err := a.v1FetchDisplay(ctx, snap); err != nil {
		return err
	}
	return a.v1FetchOnScreenText(ctx, snap)
}

func (a *Adapter) v1FetchDisplay(ctx context.Context, snap *Snapshot) error {
	var display v1DisplayInfo
	if _, err := a.getV1(ctx, v1Display, &display); err != nil {
		return err
	}

	snap.addStat(propDisplayStandby, "")
	snap.addControl(newSwitch(propDisplayStandby, "On", "Off", display.StandbyState))

	snap.addStat("Display#Display Count", display.DisplayCount.String())

	timeouts := displayTimeouts
	if a.deviceModel == modelCSE800 {
		timeouts = cse800DisplayTimeouts
	}
	snap.addStat(propDisplayTimeout, "")
	snap.addControl(newDropdown(propDisplayTimeout, display.DisplayTimeout.String(), timeouts))

	snap.addStat(propHotPlug, "")
	snap.addControl(newSwitch(propHotPlug, "On", "Off", display.HotPlug))

	snap.addStat(propScreensaverTimeout, "")
	snap.addControl(newDropdown(propScreensaverTimeout, display.ScreenSaverTimeout.String(), displayTimeouts))

	snap.addStat(propShowWallpaper, "")
	snap.addControl(newSwitch(propShowWallpaper, "On", "Off", display.ShowWallpaper))

	for i := 1; i <= display.OutputCount; i++ {
		output, found := display.OutputTable[strconv.Itoa(i)]
		if !found {
			continue
		}
		snap.addStat(fmt.Sprintf("Display#Output %d Connected", i), strconv.FormatBool(output.Connected))
		snap.addStat(fmt.Sprintf("Display#Output %d Enabled", i), strconv.FormatBool(output.Enabled))
		snap.addStat(fmt.Sprintf("Display#Output %d Native Resolution", i), output.NativeResolution)
		snap.addStat(fmt.Sprintf("Display#Output %d Port", i), output.Port)
		snap.addStat(fmt.Sprintf("Display#Output %d Position", i), output.Position)

		name := fmt.Sprintf("Display#Output %d Resolution", i)
		snap.addStat(name, output.Resolution)
		snap.addControl(newDropdown(name, output.Resolution, strings.Split(output.SupportedResolutions, ",")))
	}
	return nil
}

func (a *Adapter) v1FetchOnScreenText(ctx context.Context, snap *Snapshot) error {
	var text v1OnScreenTextData
	if _, err := a.getV1(ctx, v1OnScreenText, &text); err != nil {
		return err
	}

	snap.addStat("On Screen Text#Location", text.Location)

	snap.addStat(propOnScreenLanguage, "")
	snap.addControl(newDropdown(propOnScreenLanguage, text.Language, strings.Split(text.SupportedLanguages, ",")))

	snap.addStat(propOnScreenWelcomeMessage, "")
	snap.addControl(newText(propOnScreenWelcomeMessage, text.WelcomeMessage))

	snap.addStat(propOnScreenMeetingRoom, "")
	snap.addControl(newText(propOnScreenMeetingRoom, text.MeetingRoomName))

	snap.addStat(propShowMeetingRoomInfo, "")
	snap.addControl(newSwitch(propShowMeetingRoomInfo, "On", "Off", text.ShowNetworkInfo))

	snap.addStat(propShowNetworkInfo, "")
	snap.addControl(newSwitch(propShowNetworkInfo, "On", "Off", text.ShowMeetingRoomInfo))
	return nil
}

// v1FetchEnergyMode needs the model name from the base block: energy-mode
// options vary per model, and nothing is exposed until the model is known.
// A device found in deep standby is immediately forced back to eco standby
// so it keeps answering the API.
func (a *Adapter) v1FetchEnergyMode(ctx context.Context, snap *Snapshot) error {
	audioOutput, err := a.getV1Text(ctx, v1AudioOutput)
	if err != nil {
		return err
	}
	powerMode, err := a.getV1Text(ctx, v1EnergyMode)
	if err != nil {
		return err
	}
	if a.deviceModel == "" {
		return nil
	}

	if powerMode == deepStandbyV1 {
		if _, err := a.writeV1(ctx, v1EnergyMode, "powerMode", ecoStandbyV1, ecoStandbyV1, propPowerMode); err != nil {
			return err
		}
		powerMode = ecoStandbyV1
	}

	snap.addStat(propPowerMode, powerMode)
	switch a.deviceModel {
	case modelCSE200:
		snap.addControl(newDropdown(propPowerMode, powerMode, cse200EnergyModes))
	case modelCSE800:
		snap.addControl(newLabeledDropdown(propPowerMode, powerMode, cse800EnergyModeLabels, energyModes))
	default:
		snap.addControl(newDropdown(propPowerMode, powerMode, energyModes))
	}

	snap.addStat(propAudioOutput, audioOutput)
	snap.addControl(newDropdown(propAudioOutput, audioOutput, audioOutputModes))
	return nil
}

func (a *Adapter) v1FetchSystemState(ctx context.Context, snap *Snapshot) error {
	state, err := a.getV1Text(ctx, v1SystemState)
	if err != nil {
		return err
	}
	snap.addStat(propPowerStatus, state)
	snap.addStat(propStandby, "")
	snap.addControl(newSwitch(propStandby, "On", "Off", state == "Standby"))
	return nil
}

func (a *Adapter) v1FetchSoftwareFeatures(ctx context.Context, snap *Snapshot) error {
	saving, err := a.getV1Bool(ctx, v1BlackboardSaving)
	if err != nil {
		return err
	}
	updateType, err := a.getV1Text(ctx, v1UpdateType)
	if err != nil {
		return err
	}

	snap.addStat(propBlackboard, "")
	snap.addStat(propSoftwareUpdateType, "")
	snap.addControl(newSwitch(propBlackboard, "On", "Off", saving))
	snap.addControl(newDropdown(propSoftwareUpdateType, updateType, softwareUpdateTypes))
	return nil
}

func (a *Adapter) v1FetchClientFeatures(ctx context.Context, snap *Snapshot) error {
	airplay, err := a.getV1Bool(ctx, v1EnableAirplay)
	if err != nil {
		return err
	}
	clickShareApp, err := a.getV1Bool(ctx, v1EnableClickShareApp)
	if err != nil {
		return err
	}
	googlecast, err := a.getV1Bool(ctx, v1EnableGoogleCast)
	if err != nil {
		return err
	}

	snap.addStat(propAirplay, strconv.FormatBool(airplay))
	snap.addStat(propClickShareApp, strconv.FormatBool(clickShareApp))
	snap.addStat(propGooglecast, strconv.FormatBool(googlecast))

	snap.addControl(newSwitch(propAirplay, "On", "Off", airplay))
	snap.addControl(newSwitch(propClickShareApp, "On", "Off", clickShareApp))
	snap.addControl(newSwitch(propGooglecast, "On", "Off", googlecast))
	return nil
}

func (a *Adapter) v1FetchNetworkSensors(ctx context.Context, snap *Snapshot) error {
	for _, entry := range []struct {
		name     string
		resource string
	}{
		{"Network#Wlan IP Address", v1WlanIPAddress},
		{"Network#Wlan Subnet Mask", v1WlanSubnetMask},
		{"Device Sensors#Cpu Fan Speed", v1CPUFanSpeed},
		{"Display#CEC", v1DisplayCEC},
	} {
		value, err := a.getV1OptionalText(ctx, entry.resource)
		if err != nil {
			return err
		}
		snap.addTextualStat(entry.name, value)
	}
	return nil
}

func (a *Adapter) v1FetchMiracast(ctx context.Context, snap *Snapshot) error {
	enabled, err := a.getV1Bool(ctx, v1EnableMiracast)
	if err != nil {
		return err
	}
	snap.addStat(propMiracast, "")
	snap.addControl(newSwitch(propMiracast, "enabled", "disabled", enabled))
	return nil
}

func (a *Adapter) v1FetchScreensaver(ctx context.Context, snap *Snapshot) error {
	mode, err := a.getV1Text(ctx, v1ScreensaverMode)
	if err != nil {
		return err
	}
	snap.addStat(propScreensaverMode, "")
	snap.addControl(newDropdown(propScreensaverMode, mode, screensaverModes))
	return nil
}
