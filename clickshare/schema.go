package clickshare

import "encoding/json"

// Typed response shapes, one struct per device resource, decoded at the
// transport boundary. v1 resources use PascalCase fields inside a
// {status, data:{value}} envelope; v2 resources are flat camelCase objects.
// Optional fields that feed the textual-only statistics rule are pointers.

// v1Envelope wraps every v1 resource. Value stays raw until the caller
// decodes the endpoint-specific shape.
type v1Envelope struct {
	Status int `json:"status"`
	Data   struct {
		Value json.RawMessage `json:"value"`
	} `json:"data"`
}

type v1DeviceInfoData struct {
	ArticleNumber string      `json:"ArticleNumber"`
	ModelName     string      `json:"ModelName"`
	SerialNumber  string      `json:"SerialNumber"`
	CurrentUptime json.Number `json:"CurrentUptime"`
	TotalUptime   json.Number `json:"TotalUptime"`
	FirstUsed     string      `json:"FirstUsed"`
	InUse         bool        `json:"InUse"`
	Status        int         `json:"Status"`
	Sharing       bool        `json:"Sharing"`
	StatusMessage *string     `json:"StatusMessage"`
	LastUsed      *string     `json:"LastUsed"`
	Sensors       v1Sensors   `json:"Sensors"`
	Processes     v1Processes `json:"Processes"`
}

type v1Sensors struct {
	CPUTemperature  json.Number `json:"CpuTemperature"`
	PcieTemperature json.Number `json:"PcieTemperature"`
	SioTemperature  json.Number `json:"SioTemperature"`
}

// v1Processes carries a 1-based table keyed by the entry index as a string.
type v1Processes struct {
	ProcessCount int                  `json:"ProcessCount"`
	ProcessTable map[string]v1Process `json:"ProcessTable"`
}

type v1Process struct {
	Name   string `json:"Name"`
	Status string `json:"Status"`
}

type v1DisplayInfo struct {
	StandbyState       bool                       `json:"StandbyState"`
	DisplayCount       json.Number                `json:"DisplayCount"`
	DisplayTimeout     json.Number                `json:"DisplayTimeout"`
	HotPlug            bool                       `json:"HotPlug"`
	ScreenSaverTimeout json.Number                `json:"ScreenSaverTimeout"`
	ShowWallpaper      bool                       `json:"ShowWallpaper"`
	OutputCount        int                        `json:"OutputCount"`
	OutputTable        map[string]v1DisplayOutput `json:"OutputTable"`
}

type v1DisplayOutput struct {
	Connected            bool   `json:"Connected"`
	Enabled              bool   `json:"Enabled"`
	NativeResolution     string `json:"NativeResolution"`
	Port                 string `json:"Port"`
	Position             string `json:"Position"`
	Resolution           string `json:"Resolution"`
	SupportedResolutions string `json:"SupportedResolutions"`
}

type v1OnScreenTextData struct {
	Location            string `json:"Location"`
	Language            string `json:"Language"`
	SupportedLanguages  string `json:"SupportedLanguages"`
	WelcomeMessage      string `json:"WelcomeMessage"`
	MeetingRoomName     string `json:"MeetingRoomName"`
	ShowNetworkInfo     bool   `json:"ShowNetworkInfo"`
	ShowMeetingRoomInfo bool   `json:"ShowMeetingRoomInfo"`
}

type v2PowerStatus struct {
	PowerMode                string        `json:"powerMode"`
	SupportedPowerModes      []string      `json:"supportedPowerModes"`
	StandbyTimeout           json.Number   `json:"standbyTimeout"`
	SupportedStandbyTimeouts []json.Number `json:"supportedStandbyTimeouts"`
	Status                   string        `json:"status"`
	SupportedStatuses        []string      `json:"supportedStatuses"`
}

type v2Video struct {
	Mode           string   `json:"mode"`
	SupportedModes []string `json:"supportedModes"`
}

type v2Audio struct {
	Output           string   `json:"output"`
	SupportedOutputs []string `json:"supportedOutputs"`
	Enabled          bool     `json:"enabled"`
}

type v2Network struct {
	Hostname *string           `json:"hostname"`
	Services v2NetworkServices `json:"services"`
	Wired    []v2NetworkConfig `json:"wired"`
	Wireless []v2NetworkConfig `json:"wireless"`
}

type v2NetworkServices struct {
	Proxy struct {
		Enabled       bool    `json:"enabled"`
		ServerAddress *string `json:"serverAddress"`
		Username      *string `json:"username"`
	} `json:"proxy"`
	DHCPServer struct {
		DomainName *string `json:"domainName"`
		MaxAddress *string `json:"maxAddress"`
		MinAddress *string `json:"minAddress"`
		SubnetMask *string `json:"subnetMask"`
	} `json:"dhcpServer"`
}

type v2NetworkConfig struct {
	ID             int     `json:"id"`
	OperationMode  *string `json:"operationMode"`
	Addressing     *string `json:"addressing"`
	Status         *string `json:"status"`
	IPAddress      *string `json:"ipAddress"`
	SubnetMask     *string `json:"subnetMask"`
	DefaultGateway *string `json:"defaultGateway"`
	MACAddress     *string `json:"macAddress"`
}

type v2Identity struct {
	SerialNumber  *string `json:"serialNumber"`
	ArticleNumber *string `json:"articleNumber"`
	ModelName     *string `json:"modelName"`
	ProductName   *string `json:"productName"`
}

// v2Feature covers the feature-toggle resources; blackboard reports
// savingEnabled, the rest report enabled.
type v2Feature struct {
	Enabled       bool `json:"enabled"`
	SavingEnabled bool `json:"savingEnabled"`
}

type v2PersonalizationData struct {
	MeetingRoomName    string   `json:"meetingRoomName"`
	Language           string   `json:"language"`
	SupportedLanguages []string `json:"supportedLanguages"`
	WelcomeMessage     string   `json:"welcomeMessage"`
}
