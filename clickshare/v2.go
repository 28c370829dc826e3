package clickshare

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

func (a *Adapter) buildV2Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := newSnapshot()
	for _, fetch := range []func(*Adapter, context.Context, *Snapshot) error{
		(*Adapter).v2FetchOperations,
		(*Adapter).v2FetchPowerManagement,
		(*Adapter).v2FetchVideo,
		(*Adapter).v2FetchAudio,
		(*Adapter).v2FetchNetwork,
		(*Adapter).v2FetchIdentity,
		(*Adapter).v2FetchFeatures,
		(*Adapter).v2FetchPersonalization,
	} {
		if err := fetch(a, ctx, snap); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// v2FetchOperations exposes the reboot and standby buttons only when the
// firmware lists the matching operation as supported.
func (a *Adapter) v2FetchOperations(ctx context.Context, snap *Snapshot) error {
	var supported []string
	if err := a.client.get(ctx, a.version.path(v2OperationsSupported), &supported); err != nil {
		return err
	}
	if slices.Contains(supported, "reboot") {
		snap.addStat(propReboot, "")
		snap.addControl(newButton(propReboot, propReboot, "Rebooting...", v2RebootGracePeriod))
	}
	if slices.Contains(supported, "standby") {
		snap.addStat(propStandby, "")
		snap.addControl(newButton(propStandby, propStandby, "Processing...", 0))
	}
	return nil
}

// v2FetchPowerManagement reports power mode, standby timeout and power
// status. A device found in deep standby is immediately moved back to eco
// standby so it keeps answering the API, and deep standby never appears
// among the selectable modes.
func (a *Adapter) v2FetchPowerManagement(ctx context.Context, snap *Snapshot) error {
	var power v2PowerStatus
	if err := a.client.get(ctx, a.version.path(v2PowerManagement), &power); err != nil {
		return err
	}

	powerMode := power.PowerMode
	if powerMode == deepStandbyV2 {
		if _, err := a.writeV2(ctx, v2PowerManagement, "powerMode", ecoStandbyV2, ecoStandbyV2, propPowerMode); err != nil {
			return err
		}
		powerMode = ecoStandbyV2
	}

	modes := make([]string, 0, len(power.SupportedPowerModes))
	for _, mode := range power.SupportedPowerModes {
		if strings.EqualFold(mode, deepStandbyV2) {
			continue
		}
		modes = append(modes, mode)
	}
	snap.addStat(propPowerMode, powerMode)
	snap.addControl(newDropdown(propPowerMode, powerMode, modes))

	timeouts := make([]string, 0, len(power.SupportedStandbyTimeouts))
	for _, timeout := range power.SupportedStandbyTimeouts {
		timeouts = append(timeouts, timeout.String())
	}
	snap.addStat(propStandbyTimeout, power.StandbyTimeout.String())
	snap.addControl(newDropdown(propStandbyTimeout, power.StandbyTimeout.String(), timeouts))

	snap.addStat(propPowerStatus, power.Status)
	snap.addControl(newDropdown(propPowerStatus, power.Status, power.SupportedStatuses))
	return nil
}

func (a *Adapter) v2FetchVideo(ctx context.Context, snap *Snapshot) error {
	var video v2Video
	if err := a.client.get(ctx, a.version.path(v2ConfigurationVideo), &video); err != nil {
		return err
	}
	snap.addStat(propVideoMode, video.Mode)
	snap.addControl(newDropdown(propVideoMode, video.Mode, video.SupportedModes))
	return nil
}

func (a *Adapter) v2FetchAudio(ctx context.Context, snap *Snapshot) error {
	var audio v2Audio
	if err := a.client.get(ctx, a.version.path(v2ConfigurationAudio), &audio); err != nil {
		return err
	}
	snap.addStat(propAudioOutput, audio.Output)
	snap.addControl(newDropdown(propAudioOutput, audio.Output, audio.SupportedOutputs))

	snap.addStat(propAudio, strconv.FormatBool(audio.Enabled))
	snap.addControl(newSwitch(propAudio, "enabled", "disabled", audio.Enabled))
	return nil
}

func (a *Adapter) v2FetchNetwork(ctx context.Context, snap *Snapshot) error {
	var network v2Network
	if err := a.client.get(ctx, a.version.path(v2ConfigurationNetwork), &network); err != nil {
		return err
	}
	snap.addTextualStat("Network configuration#Hostname", network.Hostname)

	proxy := network.Services.Proxy
	if proxy.Enabled {
		snap.addStat("Network configuration#Proxy", "enabled")
		snap.addTextualStat("Network configuration#Proxy server address", proxy.ServerAddress)
		snap.addTextualStat("Network configuration#Proxy username", proxy.Username)
	} else {
		snap.addStat("Network configuration#Proxy", "disabled")
	}

	dhcp := network.Services.DHCPServer
	snap.addTextualStat("Network configuration#DHCP Domain name", dhcp.DomainName)
	snap.addTextualStat("Network configuration#DHCP MAX address", dhcp.MaxAddress)
	snap.addTextualStat("Network configuration#DHCP MIN address", dhcp.MinAddress)
	snap.addTextualStat("Network configuration#DHCP Subnet mask", dhcp.SubnetMask)

	addNetworkConfigurations(snap, "wired", network.Wired)
	addNetworkConfigurations(snap, "wireless", network.Wireless)
	return nil
}

func addNetworkConfigurations(snap *Snapshot, kind string, configs []v2NetworkConfig) {
	for _, config := range configs {
		prefix := fmt.Sprintf("Network configuration: %s#Configuration %d ", kind, config.ID)
		snap.addTextualStat(prefix+"Operation Mode", config.OperationMode)
		snap.addTextualStat(prefix+"Addressing", config.Addressing)
		snap.addTextualStat(prefix+"Status", config.Status)
		snap.addTextualStat(prefix+"Ip Address", config.IPAddress)
		snap.addTextualStat(prefix+"Subnet Mask", config.SubnetMask)
		snap.addTextualStat(prefix+"Default Gateway", config.DefaultGateway)
		snap.addTextualStat(prefix+"MAC Address", config.MACAddress)
	}
}

func (a *Adapter) v2FetchIdentity(ctx context.Context, snap *Snapshot) error {
	var identity v2Identity
	if err := a.client.get(ctx, a.version.path(v2DeviceIdentity), &identity); err != nil {
		return err
	}
	snap.addTextualStat("Device information#Serial number", identity.SerialNumber)
	snap.addTextualStat("Device information#Article number", identity.ArticleNumber)
	snap.addTextualStat("Device information#Model name", identity.ModelName)
	snap.addTextualStat("Device information#Product name", identity.ProductName)
	return nil
}

// v2FetchFeatures builds one switch per sharing feature. Blackboard reports
// its state under savingEnabled, the rest under enabled.
func (a *Adapter) v2FetchFeatures(ctx context.Context, snap *Snapshot) error {
	for _, entry := range []struct {
		name     string
		resource string
		saving   bool
	}{
		{propMiracast, v2FeaturesMiracast, false},
		{propGooglecast, v2FeaturesGooglecast, false},
		{propAirplay, v2FeaturesAirplay, false},
		{propBlackboard, v2FeaturesBlackboard, true},
	} {
		var feature v2Feature
		if err := a.client.get(ctx, a.version.path(entry.resource), &feature); err != nil {
			return err
		}
		enabled := feature.Enabled
		if entry.saving {
			enabled = feature.SavingEnabled
		}
		snap.addStat(entry.name, strconv.FormatBool(enabled))
		snap.addControl(newSwitch(entry.name, "enabled", "disabled", enabled))
	}
	return nil
}

func (a *Adapter) v2FetchPersonalization(ctx context.Context, snap *Snapshot) error {
	var personalization v2PersonalizationData
	if err := a.client.get(ctx, a.version.path(v2Personalization), &personalization); err != nil {
		return err
	}
	snap.addStat(propMeetingRoom, "")
	snap.addControl(newText(propMeetingRoom, personalization.MeetingRoomName))

	snap.addStat(propLanguage, personalization.Language)
	snap.addControl(newDropdown(propLanguage, personalization.Language, personalization.SupportedLanguages))

	snap.addStat(propWelcomeMessage, personalization.WelcomeMessage)
	snap.addControl(newText(propWelcomeMessage, personalization.WelcomeMessage))
	return nil
}
