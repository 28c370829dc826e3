// clickshare-sim serves a fake ClickShare unit for local development, so a
// monitor can be pointed at localhost instead of boardroom hardware. It
// answers the REST surface of either generation and accepts every write.
//
//	go run scripts/clickshare-sim.go -listen :4100 -generation v1 -minor 14
//	go run scripts/clickshare-sim.go -listen :4101 -generation v2
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

func main() {
	var (
		listen     = flag.String("listen", ":4100", "Listen address")
		generation = flag.String("generation", "v1", "API generation to simulate: v1 or v2")
		minor      = flag.Int("minor", 14, "Minor firmware version for the v1 generation")
		login      = flag.String("login", "admin", "Expected basic-auth login")
		password   = flag.String("password", "secret", "Expected basic-auth password")
	)
	flag.Parse()

	var responses map[string]string
	switch *generation {
	case "v1":
		responses = v1Fixtures(*minor)
	case "v2":
		responses = v2Fixtures()
	default:
		fatal(fmt.Errorf("unknown generation %q (want v1 or v2)", *generation))
	}

	sim := &simulator{
		auth:      "Basic " + base64.StdEncoding.EncodeToString([]byte(*login+":"+*password)),
		responses: responses,
	}

	log.Printf("clickshare-sim: %s device on %s (login %s)", *generation, *listen, *login)
	if err := http.ListenAndServe(*listen, sim); err != nil {
		fatal(err)
	}
}

type simulator struct {
	auth      string
	responses map[string]string
}

func (s *simulator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != s.auth {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if r.Method != http.MethodGet {
		body, _ := io.ReadAll(r.Body)
		log.Printf("%s %s %s", r.Method, r.URL.Path, strings.TrimSpace(string(body)))
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			_, _ = io.WriteString(w, `{"status":202}`)
		} else {
			_, _ = io.WriteString(w, `{"status":200}`)
		}
		return
	}

	body, ok := s.responses[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "Resource does not exist for this version of the API")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

// v1Fixtures answers like a CSE-series unit at the given minor version.
func v1Fixtures(minor int) map[string]string {
	version := fmt.Sprintf("v1.%d", minor)
	prefix := "/" + version + "/"
	return map[string]string{
		"/SupportedVersions": `{"status":200,"data":{"value":["v1.0","` + version + `"]}}`,
		prefix + "DeviceInfo": `{"status":200,"data":{"value":{
			"ArticleNumber":"R9861520EU","ModelName":"CSE-200+","SerialNumber":"1873200822",
			"CurrentUptime":3600,"TotalUptime":86400,"FirstUsed":"2019-06-25T12:34:12","InUse":true,
			"Status":0,"Sharing":false,"StatusMessage":"All processes are running","LastUsed":"2020-11-23T10:15:00",
			"Sensors":{"CpuTemperature":54,"PcieTemperature":49,"SioTemperature":43},
			"Processes":{"ProcessCount":2,"ProcessTable":{
				"1":{"Name":"webserver","Status":"OK"},
				"2":{"Name":"dhcp","Status":"OK"}}}}}}`,
		prefix + "Audio/Enabled": `{"status":200,"data":{"value":true}}`,
		prefix + "Display": `{"status":200,"data":{"value":{
			"StandbyState":false,"DisplayCount":1,"DisplayTimeout":10,"HotPlug":false,
			"ScreenSaverTimeout":30,"ShowWallpaper":true,
			"OutputCount":1,"OutputTable":{"1":{
				"Connected":true,"Enabled":true,"NativeResolution":"3840x2160","Port":"HDMI",
				"Position":"left","Resolution":"1920x1080","SupportedResolutions":"1920x1080,3840x2160"}}}}}`,
		prefix + "OnScreenText": `{"status":200,"data":{"value":{
			"Location":"bottom","Language":"en","SupportedLanguages":"en,de,fr",
			"WelcomeMessage":"Welcome","MeetingRoomName":"Atlantis",
			"ShowNetworkInfo":true,"ShowMeetingRoomInfo":false}}}`,
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

// v2Fixtures answers like a CX-series unit.
func v2Fixtures() map[string]string {
	return map[string]string{
		"/SupportedVersions":       `{"status":200,"data":{"value":["v1.6","v2.0"]}}`,
		"/v2/operations/supported": `["reboot","standby"]`,
		"/v2/configuration/system/power-management": `{"powerMode":"networkedStandby",
			"supportedPowerModes":["ecoStandby","networkedStandby","deepStandby"],
			"standbyTimeout":10,"supportedStandbyTimeouts":[1,5,10,15],
			"status":"on","supportedStatuses":["on","standby"]}`,
		"/v2/configuration/video": `{"mode":"extended","supportedModes":["extended","clone"]}`,
		"/v2/configuration/audio": `{"output":"HDMI","supportedOutputs":["HDMI","jack","SPDIF"],"enabled":true}`,
		"/v2/configuration/system/network": `{"hostname":"ClickShare-1863550118",
			"services":{
				"proxy":{"enabled":false,"serverAddress":"","username":""},
				"dhcpServer":{"domainName":"lan","maxAddress":"192.168.2.200","minAddress":"192.168.2.100","subnetMask":"255.255.255.0"}},
			"wired":[{"id":1,"operationMode":"clientMode","addressing":"dhcp","status":"connected",
				"ipAddress":"10.12.0.7","subnetMask":"255.255.254.0","defaultGateway":"10.12.0.1","macAddress":"00:04:A5:09:A2:41"}],
			"wireless":[]}`,
		"/v2/configuration/system/device-identity": `{"serialNumber":"1863550118","articleNumber":"R9861522EU","modelName":"C-10","productName":"ClickShare CX-30"}`,
		"/v2/configuration/features/miracast":      `{"enabled":true}`,
		"/v2/configuration/features/google-cast":   `{"enabled":false}`,
		"/v2/configuration/features/airplay":       `{"enabled":true}`,
		"/v2/configuration/features/blackboard":    `{"savingEnabled":false}`,
		"/v2/configuration/personalization":        `{"meetingRoomName":"Neptune","language":"en_US","supportedLanguages":["en_US","de_DE","fr_FR"],"welcomeMessage":"Hello"}`,
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
