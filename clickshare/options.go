package clickshare

import (
	"strconv"
	"time"
)

// Device models with reduced or relabeled option sets.
const (
	modelCSE200 = "CSE-200"
	modelCSE800 = "CSE-800"
)

// Power-mode sentinels. Deep standby is suppressed in favor of eco standby:
// a device left in deep standby stops answering the REST API, so the adapter
// rewrites it on sight and never offers it as an option.
const (
	deepStandbyV2 = "deepStandby"
	ecoStandbyV2  = "ecoStandby"
	deepStandbyV1 = "deep_standby"
	ecoStandbyV1  = "eco_standby"
)

// Reboot button grace periods, the UI pause while the device goes down and
// comes back. CSE units take noticeably longer than CX to restart.
const (
	v1RebootGracePeriod = 120 * time.Second
	v2RebootGracePeriod = 90 * time.Second
)

// Dropdown option sets for the v1 generation. These endpoints do not report
// their supported values, so the lists are fixed. Timeouts are minutes for
// displays and seconds for the screensaver.
var (
	displayTimeouts       = []string{"1", "5", "10", "15", "30", "45", "60", "90", "120"}
	cse800DisplayTimeouts = []string{"1", "5", "10", "15", "30"}

	energyModes            = []string{ecoStandbyV1, "networked_standby"}
	cse200EnergyModes      = []string{ecoStandbyV1}
	cse800EnergyModeLabels = []string{"Eco standby", "Networked standby"}

	audioOutputModes    = []string{"Jack", "HDMI", "SPDIF"}
	softwareUpdateTypes = []string{"automatic", "notify", "off"}
	screensaverModes    = []string{"default", "black", "custom"}
)

var deviceStatuses = map[int]string{
	0: "OK",
	1: "Warning",
	2: "Error",
}

// deviceStatusText renders the v1 DeviceInfo status code, falling back to
// the raw code for values newer firmwares may add.
func deviceStatusText(code int) string {
	if text, ok := deviceStatuses[code]; ok {
		return text
	}
	return strconv.Itoa(code)
}
