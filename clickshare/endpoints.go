package clickshare

// Version discovery endpoint, shared by both generations and queried without
// a generation prefix. Responds with a v1-style {status, data:{value}}
// envelope on every firmware.
const apiSupportedVersions = "SupportedVersions"

// Device REST resources, API v2 (CX series). Paths are relative to the
// resolved generation prefix.
const (
	v2PowerManagement      = "configuration/system/power-management"
	v2OperationsReboot     = "operations/reboot"
	v2OperationsStandby    = "operations/standby"
	v2OperationsSupported  = "operations/supported"
	v2ConfigurationVideo   = "configuration/video"
	v2ConfigurationAudio   = "configuration/audio"
	v2ConfigurationNetwork = "configuration/system/network"
	v2DeviceIdentity       = "configuration/system/device-identity"
	v2Personalization      = "configuration/personalization"
	v2FeaturesMiracast     = "configuration/features/miracast"
	v2FeaturesGooglecast   = "configuration/features/google-cast"
	v2FeaturesBlackboard   = "configuration/features/blackboard"
	v2FeaturesAirplay      = "configuration/features/airplay"
)

// Device REST resources, API v1 (CSE series). Each returns a
// {status, data:{value}} envelope. Availability is gated by the minor
// version thresholds in v1Blocks.
const (
	v1DeviceInfo   = "DeviceInfo"
	v1AudioEnabled = "Audio/Enabled"
	v1AudioOutput  = "Audio/Output"

	v1Display            = "Display"
	v1DisplayTimeout     = "Display/DisplayTimeout"
	v1ScreensaverTimeout = "Display/ScreenSaverTimeout"
	v1ShowWallpaper      = "Display/ShowWallpaper"
	v1DisplayHotPlug     = "Display/HotPlug"
	v1DisplayStandby     = "Display/StandbyState"
	v1ScreensaverMode    = "Display/ScreenSaverMode"
	v1DisplayCEC         = "Display/CEC"
	// v1DisplayResolution is a template parameterized by the 1-based output
	// index extracted from the control name.
	v1DisplayResolution = "Display/OutputTable/%s/Resolution"

	v1OnScreenText            = "OnScreenText"
	v1OnScreenLanguage        = "OnScreenText/Language"
	v1OnScreenWelcomeMessage  = "OnScreenText/WelcomeMessage"
	v1OnScreenMeetingRoomName = "OnScreenText/MeetingRoomName"
	v1OnScreenShowMeetingRoom = "OnScreenText/ShowMeetingRoomInfo"
	v1OnScreenShowNetwork     = "OnScreenText/ShowNetworkInfo"

	v1EnergyMode     = "Standby/EnergyMode"
	v1SystemState    = "Standby/State"
	v1RequestStandby = "Standby/RequestStandby"
	v1RestartSystem  = "Configuration/RestartSystem"

	v1UpdateType       = "Software/AutoUpdate/UpdateType"
	v1BlackboardSaving = "Blackboard/AllowSaving"

	v1EnableAirplay       = "ClientAccess/EnableAirplay"
	v1EnableClickShareApp = "ClientAccess/EnableClickShareApp"
	v1EnableGoogleCast    = "ClientAccess/EnableGoogleCast"
	v1EnableMiracast      = "ClientAccess/EnableMiracast"

	v1WlanIPAddress  = "Network/Wlan/IpAddress"
	v1WlanSubnetMask = "Network/Wlan/SubnetMask"
	v1CPUFanSpeed    = "DeviceInfo/Sensors/CpuFanSpeed"
)

// Display-qualified property names shared by the statistics map, the control
// descriptors, and the control dispatch tables.
const (
	propPowerMode      = "Power Management#Power Mode"
	propPowerStatus    = "Power Management#Power Status"
	propStandbyTimeout = "Power Management#Standby Timeout (min)"
	propVideoMode      = "Video Mode"
	propMiracast       = "Features#Miracast"
	propGooglecast     = "Features#Googlecast"
	propBlackboard     = "Features#Blackboard saving"
	propAirplay        = "Features#Airplay"
	propClickShareApp  = "Features#ClickShare app"
	propAudio          = "Audio"
	propAudioOutput    = "Audio Output"
	propLanguage       = "Personalization#Language"
	propWelcomeMessage = "Personalization#Welcome message"
	propMeetingRoom    = "Personalization#Meeting room name"
	propReboot         = "Reboot"
	propStandby        = "Standby"

	propOnScreenLanguage       = "On Screen Text#Language"
	propOnScreenWelcomeMessage = "On Screen Text#Welcome Message"
	propOnScreenMeetingRoom    = "On Screen Text#Meeting Room Name"
	propShowMeetingRoomInfo    = "On Screen Text#Show Meeting Room Info"
	propShowNetworkInfo        = "On Screen Text#Show Network Info"

	propSoftwareUpdateType = "Software Update#Update Type"
	propDisplayTimeout     = "Display#Display Timeout"
	propScreensaverTimeout = "Display#Screensaver Timeout"
	propScreensaverMode    = "Display#Screensaver Mode"
	propDisplayStandby     = "Display#Display Standby"
	propShowWallpaper      = "Display#Show Wallpaper"
	propHotPlug            = "Display#Hot Plug"
)
