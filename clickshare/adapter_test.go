package clickshare

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

const v1DeviceInfoBody = `{"status":200,"data":{"value":{
	"ArticleNumber":"R9861520EU","ModelName":"CSE-200+","SerialNumber":"1873200822",
	"CurrentUptime":3600,"TotalUptime":86400,"FirstUsed":"2019-06-25T12:34:12","InUse":true,
	"Status":0,"Sharing":false,"StatusMessage":"All processes are running","LastUsed":"2020-11-23T10:15:00",
	"Sensors":{"CpuTemperature":54,"PcieTemperature":49,"SioTemperature":43},
	"Processes":{"ProcessCount":2,"ProcessTable":{
		"1":{"Name":"webserver","Status":"OK"},
		"2":{"Name":"dhcp","Status":"OK"}}}}}}`

const v1DisplayBody = `{"status":200,"data":{"value":{
	"StandbyState":false,"DisplayCount":1,"DisplayTimeout":10,"HotPlug":false,
	"ScreenSaverTimeout":30,"ShowWallpaper":true,
	"OutputCount":1,"OutputTable":{"1":{
		"Connected":true,"Enabled":true,"NativeResolution":"3840x2160","Port":"HDMI",
		"Position":"left","Resolution":"1920x1080","SupportedResolutions":"1920x1080,3840x2160"}}}}}`

const v1OnScreenTextBody = `{"status":200,"data":{"value":{
	"Location":"bottom","Language":"en","SupportedLanguages":"en,de,fr",
	"WelcomeMessage":"Welcome","MeetingRoomName":"Atlantis",
	"ShowNetworkInfo":true,"ShowMeetingRoomInfo":false}}}`

const v2NetworkBody = `{"hostname":"ClickShare-1863550118",
	"services":{
		"proxy":{"enabled":false,"serverAddress":"","username":""},
		"dhcpServer":{"domainName":"lan","maxAddress":"192.168.2.200","minAddress":"192.168.2.100","subnetMask":"255.255.255.0"}},
	"wired":[{"id":1,"operationMode":"clientMode","addressing":"dhcp","status":"connected",
		"ipAddress":"10.12.0.7","subnetMask":"255.255.254.0","defaultGateway":"10.12.0.1","macAddress":"00:04:A5:09:A2:41"}],
	"wireless":[]}`

// v1Responses is a full fixture for a CSE-series device at the given
// version, keyed by request path.
func v1Responses(version string) map[string]string {
	prefix := "/" + version + "/"
	return map[string]string{
		"/SupportedVersions":                        `{"status":200,"data":{"value":["v1.0","` + version + `"]}}`,
		prefix + "DeviceInfo":                       v1DeviceInfoBody,
		prefix + "Audio/Enabled":                    `{"status":200,"data":{"value":true}}`,
		prefix + "Display":                          v1DisplayBody,
		prefix + "OnScreenText":                     v1OnScreenTextBody,
		prefix + "Audio/Output":                     `{"status":200,"data":{"value":"Jack"}}`,
		prefix + "Standby/EnergyMode":               `{"status":200,"data":{"value":"networked_standby"}}`,
		prefix + "Standby/State":                    `{"status":200,"data":{"value":"On"}}`,
		prefix + "Blackboard/AllowSaving":           `{"status":200,"data":{"value":false}}`,
		prefix + "Software/AutoUpdate/UpdateType":   `{"status":200,"data":{"value":"notify"}}`,
		prefix + "ClientAccess/EnableAirplay":       `{"status":200,"data":{"value":true}}`,
		prefix + "ClientAccess/EnableClickShareApp": `{"status":200,"data":{"value":false}}`,
		prefix + "ClientAccess/EnableGoogleCast":    `{"status":200,"data":{"value":true}}`,
		prefix + "ClientAccess/EnableMiracast":      `{"status":200,"data":{"value":true}}`,
		prefix + "Network/Wlan/IpAddress":           `{"status":200,"data":{"value":"192.168.2.1"}}`,
		prefix + "Network/Wlan/SubnetMask":          `{"status":200,"data":{"value":"255.255.255.0"}}`,
		prefix + "DeviceInfo/Sensors/CpuFanSpeed":   `{"status":200,"data":{"value":5333}}`,
		prefix + "Display/CEC":                      `{"status":200,"data":{"value":"enabled"}}`,
		prefix + "Display/ScreenSaverMode":          `{"status":200,"data":{"value":"black"}}`,
	}
}

// v2Responses is a full fixture for a CX-series device.
func v2Responses() map[string]string {
	return map[string]string{
		"/SupportedVersions":       `{"status":200,"data":{"value":["v1.6","v2.0"]}}`,
		"/v2/operations/supported": `["reboot","standby"]`,
		"/v2/configuration/system/power-management": `{"powerMode":"networkedStandby",
			"supportedPowerModes":["ecoStandby","networkedStandby","deepStandby"],
			"standbyTimeout":10,"supportedStandbyTimeouts":[1,5,10,15],
			"status":"on","supportedStatuses":["on","standby"]}`,
		"/v2/configuration/video":                  `{"mode":"extended","supportedModes":["extended","clone"]}`,
		"/v2/configuration/audio":                  `{"output":"HDMI","supportedOutputs":["HDMI","jack","SPDIF"],"enabled":true}`,
		"/v2/configuration/system/network":         v2NetworkBody,
		"/v2/configuration/system/device-identity": `{"serialNumber":"1863550118","articleNumber":"R9861522EU","modelName":"C-10","productName":"ClickShare CX-30"}`,
		"/v2/configuration/features/miracast":      `{"enabled":true}`,
		"/v2/configuration/features/google-cast":   `{"enabled":false}`,
		"/v2/configuration/features/airplay":       `{"enabled":true}`,
		"/v2/configuration/features/blackboard":    `{"savingEnabled":false}`,
		"/v2/configuration/personalization":        `{"meetingRoomName":"Neptune","language":"en_US","supportedLanguages":["en_US","de_DE","fr_FR"],"welcomeMessage":"Hello"}`,
	}
}

// fakeDevice serves canned responses for GETs, records every write, and
// answers writes with a configurable result body.
type fakeDevice struct {
	auth      string
	writeBody string
	postBody  string

	mu         sync.Mutex
	responses  map[string]string
	missing    map[string]bool
	failWrites bool
	hits       map[string]int
	writes     []string
}

func newFakeDevice(t *testing.T, responses map[string]string) (*fakeDevice, *Adapter) {
	t.Helper()
	d := &fakeDevice{
		auth:      "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret")),
		writeBody: `{"status":200}`,
		postBody:  `{"status":202}`,
		responses: responses,
		missing:   map[string]bool{},
		hits:      map[string]int{},
	}
	server := httptest.NewServer(d)
	t.Cleanup(server.Close)

	adapter, err := NewAdapter(Config{BaseURL: server.URL, Login: "admin", Password: "secret"})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	return d, adapter
}

func (d *fakeDevice) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("Authorization"); got != d.auth {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	d.mu.Lock()
	d.hits[r.Method+" "+r.URL.Path]++
	d.mu.Unlock()

	if r.Method != http.MethodGet {
		body, _ := io.ReadAll(r.Body)
		d.mu.Lock()
		d.writes = append(d.writes, fmt.Sprintf("%s %s %s", r.Method, r.URL.Path, body))
		fail := d.failWrites
		d.mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "internal error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			_, _ = io.WriteString(w, d.postBody)
		} else {
			_, _ = io.WriteString(w, d.writeBody)
		}
		return
	}

	d.mu.Lock()
	body, ok := d.responses[r.URL.Path]
	gone := d.missing[r.URL.Path]
	d.mu.Unlock()
	if gone {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "Resource does not exist for this version of the API")
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "unknown path "+r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func (d *fakeDevice) hitCount(key string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hits[key]
}

func (d *fakeDevice) recordedWrites() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.writes...)
}

func mustPoll(t *testing.T, adapter *Adapter) *Snapshot {
	t.Helper()
	snap, err := adapter.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	return snap
}

func findControl(t *testing.T, snap *Snapshot, name string) Control {
	t.Helper()
	for _, control := range snap.Controls {
		if control.Name == name {
			return control
		}
	}
	t.Fatalf("control %q not found", name)
	return Control{}
}

func assertStat(t *testing.T, snap *Snapshot, name, want string) {
	t.Helper()
	got, ok := snap.Statistics[name]
	if !ok {
		t.Fatalf("statistic %q is missing", name)
	}
	if got != want {
		t.Fatalf("statistic %q: got %q, want %q", name, got, want)
	}
}

func TestPollV1(t *testing.T) {
	_, adapter := newFakeDevice(t, v1Responses("v1.14"))
	snap := mustPoll(t, adapter)

	assertStat(t, snap, "Device Information#Article Number", "R9861520EU")
	assertStat(t, snap, "Device Information#Model Name", "CSE-200+")
	assertStat(t, snap, "Device Information#Serial Number", "1873200822")
	assertStat(t, snap, "Device Status#Uptime (sec)", "3600")
	assertStat(t, snap, "Device Status#Uptime Total (sec)", "86400")
	assertStat(t, snap, "Device Status#In Use", "true")
	assertStat(t, snap, "Device Status#Status", "OK")
	assertStat(t, snap, "Device Status#Sharing", "false")
	assertStat(t, snap, "Device Status#Status Message", "All processes are running")
	assertStat(t, snap, "Device Sensors#Cpu Temperature (C)", "54")
	assertStat(t, snap, "Last used", "2020-11-23T10:15:00")
	assertStat(t, snap, "Processes#1. webserver", "OK")
	assertStat(t, snap, "Processes#2. dhcp", "OK")
	assertStat(t, snap, "Display#Display Count", "1")
	assertStat(t, snap, "Display#Output 1 Connected", "true")
	assertStat(t, snap, "Display#Output 1 Port", "HDMI")
	assertStat(t, snap, "Display#Output 1 Resolution", "1920x1080")
	assertStat(t, snap, "Display#CEC", "enabled")
	assertStat(t, snap, "On Screen Text#Location", "bottom")
	assertStat(t, snap, "Network#Wlan IP Address", "192.168.2.1")
	assertStat(t, snap, "Network#Wlan Subnet Mask", "255.255.255.0")
	assertStat(t, snap, propPowerMode, "networked_standby")
	assertStat(t, snap, propPowerStatus, "On")
	assertStat(t, snap, propAudioOutput, "Jack")
	assertStat(t, snap, propAirplay, "true")
	assertStat(t, snap, propClickShareApp, "false")
	assertStat(t, snap, propGooglecast, "true")
	if _, ok := snap.Statistics["Device Sensors#Cpu Fan Speed"]; ok {
		t.Fatalf("numeric fan speed must not become a statistic")
	}

	if len(snap.Controls) != 23 {
		t.Fatalf("expected 23 controls, got %d", len(snap.Controls))
	}

	reboot := findControl(t, snap, propReboot)
	if reboot.Kind != KindButton || reboot.LabelPressed != "Rebooting..." || reboot.GracePeriod != v1RebootGracePeriod {
		t.Fatalf("unexpected reboot control: %+v", reboot)
	}
	audio := findControl(t, snap, propAudio)
	if audio.Kind != KindSwitch || audio.LabelOn != "enabled" || audio.Value != "1" {
		t.Fatalf("unexpected audio control: %+v", audio)
	}
	resolution := findControl(t, snap, "Display#Output 1 Resolution")
	if strings.Join(resolution.Options, ",") != "1920x1080,3840x2160" {
		t.Fatalf("unexpected resolution options: %v", resolution.Options)
	}
	powerMode := findControl(t, snap, propPowerMode)
	if strings.Join(powerMode.Options, ",") != "eco_standby,networked_standby" {
		t.Fatalf("unexpected power mode options: %v", powerMode.Options)
	}
	standby := findControl(t, snap, propStandby)
	if standby.Kind != KindSwitch || standby.Value != "0" {
		t.Fatalf("standby switch should be off while the device is on: %+v", standby)
	}
	miracast := findControl(t, snap, propMiracast)
	if miracast.LabelOn != "enabled" || miracast.LabelOff != "disabled" || miracast.Value != "1" {
		t.Fatalf("unexpected miracast control: %+v", miracast)
	}

	// the device swaps these two flags; the adapter reports them as-is
	if got := findControl(t, snap, propShowMeetingRoomInfo).Value; got != "1" {
		t.Fatalf("show meeting room info should mirror ShowNetworkInfo, got %q", got)
	}
	if got := findControl(t, snap, propShowNetworkInfo).Value; got != "0" {
		t.Fatalf("show network info should mirror ShowMeetingRoomInfo, got %q", got)
	}
}

func TestPollV2(t *testing.T) {
	_, adapter := newFakeDevice(t, v2Responses())
	snap := mustPoll(t, adapter)

	assertStat(t, snap, propPowerMode, "networkedStandby")
	assertStat(t, snap, propPowerStatus, "on")
	assertStat(t, snap, propStandbyTimeout, "10")
	assertStat(t, snap, propVideoMode, "extended")
	assertStat(t, snap, propAudioOutput, "HDMI")
	assertStat(t, snap, propAudio, "true")
	assertStat(t, snap, propMiracast, "true")
	assertStat(t, snap, propGooglecast, "false")
	assertStat(t, snap, propAirplay, "true")
	assertStat(t, snap, propBlackboard, "false")
	assertStat(t, snap, propLanguage, "en_US")
	assertStat(t, snap, propWelcomeMessage, "Hello")
	assertStat(t, snap, propMeetingRoom, "")
	assertStat(t, snap, "Network configuration#Hostname", "ClickShare-1863550118")
	assertStat(t, snap, "Network configuration#Proxy", "disabled")
	assertStat(t, snap, "Network configuration#DHCP Domain name", "lan")
	assertStat(t, snap, "Network configuration: wired#Configuration 1 Ip Address", "10.12.0.7")
	assertStat(t, snap, "Network configuration: wired#Configuration 1 MAC Address", "00:04:A5:09:A2:41")
	assertStat(t, snap, "Device information#Serial number", "1863550118")
	assertStat(t, snap, "Device information#Article number", "R9861522EU")
	assertStat(t, snap, "Device information#Model name", "C-10")
	assertStat(t, snap, "Device information#Product name", "ClickShare CX-30")
	if _, ok := snap.Statistics["Network configuration#Proxy server address"]; ok {
		t.Fatalf("proxy details must be hidden while the proxy is disabled")
	}

	if len(snap.Controls) != 15 {
		t.Fatalf("expected 15 controls, got %d", len(snap.Controls))
	}

	reboot := findControl(t, snap, propReboot)
	if reboot.GracePeriod != v2RebootGracePeriod {
		t.Fatalf("unexpected reboot grace period: %v", reboot.GracePeriod)
	}
	standby := findControl(t, snap, propStandby)
	if standby.Kind != KindButton || standby.LabelPressed != "Processing..." || standby.GracePeriod != 0 {
		t.Fatalf("unexpected standby control: %+v", standby)
	}
	powerMode := findControl(t, snap, propPowerMode)
	if strings.Join(powerMode.Options, ",") != "ecoStandby,networkedStandby" {
		t.Fatalf("deep standby must not be selectable: %v", powerMode.Options)
	}
	timeout := findControl(t, snap, propStandbyTimeout)
	if strings.Join(timeout.Options, ",") != "1,5,10,15" {
		t.Fatalf("unexpected standby timeouts: %v", timeout.Options)
	}
	meetingRoom := findControl(t, snap, propMeetingRoom)
	if meetingRoom.Kind != KindText || meetingRoom.Value != "Neptune" {
		t.Fatalf("unexpected meeting room control: %+v", meetingRoom)
	}
}

func TestMinorVersionGatesFeatureBlocks(t *testing.T) {
	d, adapter := newFakeDevice(t, v1Responses("v1.6"))
	snap := mustPoll(t, adapter)

	if _, ok := snap.Statistics[propPowerStatus]; !ok {
		t.Fatalf("v1.6 device should report power status")
	}
	for _, name := range []string{propBlackboard, propAirplay, propMiracast, propScreensaverMode} {
		if _, ok := snap.Statistics[name]; ok {
			t.Fatalf("statistic %q needs a higher minor version", name)
		}
	}
	for _, path := range []string{
		"GET /v1.6/Blackboard/AllowSaving",
		"GET /v1.6/ClientAccess/EnableAirplay",
		"GET /v1.6/Display/ScreenSaverMode",
	} {
		if got := d.hitCount(path); got != 0 {
			t.Fatalf("unexpected request %s", path)
		}
	}
}

func TestCSE800ReducesDisplayTimeouts(t *testing.T) {
	responses := v1Responses("v1.14")
	responses["/v1.14/DeviceInfo"] = strings.Replace(v1DeviceInfoBody, "CSE-200+", "CSE-800", 1)
	_, adapter := newFakeDevice(t, responses)
	snap := mustPoll(t, adapter)

	timeout := findControl(t, snap, propDisplayTimeout)
	if strings.Join(timeout.Options, ",") != "1,5,10,15,30" {
		t.Fatalf("unexpected display timeouts: %v", timeout.Options)
	}
	screensaver := findControl(t, snap, propScreensaverTimeout)
	if strings.Join(screensaver.Options, ",") != "1,5,10,15,30,45,60,90,120" {
		t.Fatalf("screensaver timeouts should keep the full set: %v", screensaver.Options)
	}

	powerMode := findControl(t, snap, propPowerMode)
	if strings.Join(powerMode.Options, ",") != "eco_standby,networked_standby" {
		t.Fatalf("unexpected power modes: %v", powerMode.Options)
	}
	if strings.Join(powerMode.Labels, ",") != "Eco standby,Networked standby" {
		t.Fatalf("unexpected power mode labels: %v", powerMode.Labels)
	}
}

func TestCSE200OffersSingleEnergyMode(t *testing.T) {
	responses := v1Responses("v1.14")
	responses["/v1.14/DeviceInfo"] = strings.Replace(v1DeviceInfoBody, "CSE-200+", "CSE-200", 1)
	_, adapter := newFakeDevice(t, responses)
	snap := mustPoll(t, adapter)

	powerMode := findControl(t, snap, propPowerMode)
	if strings.Join(powerMode.Options, ",") != "eco_standby" {
		t.Fatalf("only eco standby should be selectable: %v", powerMode.Options)
	}
	timeout := findControl(t, snap, propDisplayTimeout)
	if strings.Join(timeout.Options, ",") != "1,5,10,15,30,45,60,90,120" {
		t.Fatalf("unexpected display timeouts: %v", timeout.Options)
	}
}

func TestPollServesCachedSnapshotDuringCooldown(t *testing.T) {
	d, adapter := newFakeDevice(t, v1Responses("v1.14"))
	current := time.Now()
	adapter.now = func() time.Time { return current }
	ctx := context.Background()

	first := mustPoll(t, adapter)
	if err := adapter.Control(ctx, ControlRequest{Property: propMiracast, Value: "0"}); err != nil {
		t.Fatalf("control: %v", err)
	}

	second := mustPoll(t, adapter)
	if second != first {
		t.Fatalf("expected the cached snapshot during the cooldown")
	}
	if got := second.Statistics[propMiracast]; got != "false" {
		t.Fatalf("cached statistic should carry the encoded value, got %q", got)
	}
	if got := findControl(t, second, propMiracast).Value; got != "0" {
		t.Fatalf("cached control should keep the requested value, got %q", got)
	}
	if got := d.hitCount("GET /v1.14/DeviceInfo"); got != 1 {
		t.Fatalf("expected a single full poll, got %d", got)
	}

	current = current.Add(4 * time.Second)
	third := mustPoll(t, adapter)
	if third == first {
		t.Fatalf("expected a fresh snapshot after the cooldown")
	}
	if got := d.hitCount("GET /v1.14/DeviceInfo"); got != 2 {
		t.Fatalf("expected a second full poll, got %d", got)
	}
}

func TestFirstPollFetchesEvenAfterControl(t *testing.T) {
	d, adapter := newFakeDevice(t, v1Responses("v1.14"))
	ctx := context.Background()

	if err := adapter.Control(ctx, ControlRequest{Property: propMiracast, Value: "1"}); err != nil {
		t.Fatalf("control: %v", err)
	}
	mustPoll(t, adapter)
	if got := d.hitCount("GET /v1.14/DeviceInfo"); got != 1 {
		t.Fatalf("first poll must reach the device, got %d fetches", got)
	}
}

func TestDeepStandbyCorrectedV1(t *testing.T) {
	responses := v1Responses("v1.5")
	responses["/v1.5/Standby/EnergyMode"] = `{"status":200,"data":{"value":"deep_standby"}}`
	d, adapter := newFakeDevice(t, responses)

	snap := mustPoll(t, adapter)
	if got := snap.Statistics[propPowerMode]; got != "eco_standby" {
		t.Fatalf("power mode should be corrected to eco standby, got %q", got)
	}
	writes := d.recordedWrites()
	if len(writes) != 1 || writes[0] != "PUT /v1.5/Standby/EnergyMode powerMode=eco_standby" {
		t.Fatalf("unexpected writes: %v", writes)
	}
}

func TestDeepStandbyCorrectedV2(t *testing.T) {
	responses := v2Responses()
	responses["/v2/configuration/system/power-management"] = `{"powerMode":"deepStandby",
		"supportedPowerModes":["ecoStandby","networkedStandby","deepStandby"],
		"standbyTimeout":10,"supportedStandbyTimeouts":[1,5,10,15],
		"status":"standby","supportedStatuses":["on","standby"]}`
	d, adapter := newFakeDevice(t, responses)

	snap := mustPoll(t, adapter)
	if got := snap.Statistics[propPowerMode]; got != "ecoStandby" {
		t.Fatalf("power mode should be corrected to eco standby, got %q", got)
	}
	writes := d.recordedWrites()
	if len(writes) != 1 || writes[0] != "PATCH /v2/configuration/system/power-management powerMode=ecoStandby" {
		t.Fatalf("unexpected writes: %v", writes)
	}
}

func TestMissingResourceSkipsProperty(t *testing.T) {
	d, adapter := newFakeDevice(t, v1Responses("v1.11"))
	d.missing["/v1.11/Display/CEC"] = true

	snap := mustPoll(t, adapter)
	if _, ok := snap.Statistics["Display#CEC"]; ok {
		t.Fatalf("missing resource must not produce a statistic")
	}
	if _, ok := snap.Statistics["Network#Wlan IP Address"]; !ok {
		t.Fatalf("unrelated properties must survive a missing resource")
	}
}

func TestPlain404FailsPoll(t *testing.T) {
	responses := v1Responses("v1.11")
	delete(responses, "/v1.11/Display/CEC")
	_, adapter := newFakeDevice(t, responses)

	_, err := adapter.Poll(context.Background())
	if err == nil {
		t.Fatalf("expected an error for a plain 404")
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeviceInfoMissingSkipsModelBlock(t *testing.T) {
	d, adapter := newFakeDevice(t, v1Responses("v1.6"))
	d.missing["/v1.6/DeviceInfo"] = true

	snap := mustPoll(t, adapter)
	if _, ok := snap.Statistics["Device Information#Serial Number"]; ok {
		t.Fatalf("identity statistics need DeviceInfo")
	}
	if _, ok := snap.Statistics[propPowerMode]; ok {
		t.Fatalf("power mode options depend on the device model")
	}
	if _, ok := snap.Statistics[propPowerStatus]; !ok {
		t.Fatalf("the v1.6 block should still run")
	}
	findControl(t, snap, propAudio)
}

func TestControlBatch(t *testing.T) {
	d, adapter := newFakeDevice(t, v1Responses("v1.14"))
	ctx := context.Background()

	if err := adapter.ControlBatch(ctx, nil); !errors.Is(err, ErrEmptyControlBatch) {
		t.Fatalf("expected ErrEmptyControlBatch, got %v", err)
	}

	reqs := []ControlRequest{
		{Property: propHotPlug, Value: "1"},
		{Property: propOnScreenWelcomeMessage, Value: "Hi there"},
	}
	if err := adapter.ControlBatch(ctx, reqs); err != nil {
		t.Fatalf("control batch: %v", err)
	}
	writes := d.recordedWrites()
	if len(writes) != 2 {
		t.Fatalf("expected 2 writes, got %v", writes)
	}
	if writes[0] != "PUT /v1.14/Display/HotPlug value=true" {
		t.Fatalf("unexpected first write: %s", writes[0])
	}
	if writes[1] != "PUT /v1.14/OnScreenText/WelcomeMessage value=Hi+there" {
		t.Fatalf("unexpected second write: %s", writes[1])
	}
}

func TestControlBatchStopsOnFirstFailure(t *testing.T) {
	d, adapter := newFakeDevice(t, v1Responses("v1.14"))
	d.failWrites = true

	reqs := []ControlRequest{
		{Property: propHotPlug, Value: "1"},
		{Property: propShowWallpaper, Value: "0"},
	}
	if err := adapter.ControlBatch(context.Background(), reqs); err == nil {
		t.Fatalf("expected an error from the failing device")
	}
	if writes := d.recordedWrites(); len(writes) != 1 {
		t.Fatalf("expected the batch to stop after the first failure, got %v", writes)
	}
}

func TestNewAdapterRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "://nope", "device.local"} {
		if _, err := NewAdapter(Config{BaseURL: raw}); err == nil {
			t.Fatalf("expected an error for base url %q", raw)
		}
	}
}
