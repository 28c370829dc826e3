package clickshare

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Device pairs a fleet-wide device name with its adapter.
type Device struct {
	Name    string
	Adapter *Adapter
}

// MetricsCollector exports the numeric slice of the device snapshots. Only
// a handful of statistics parse as numbers, mostly on the v1 generation; a
// v2 device still reports availability, identity and feature states.
type MetricsCollector struct {
	devices []Device

	success      *prometheus.GaugeVec
	pollDuration *prometheus.GaugeVec
	info         *prometheus.GaugeVec
	status       *prometheus.GaugeVec
	uptime       *prometheus.GaugeVec
	uptimeTotal  *prometheus.GaugeVec
	temperature  *prometheus.GaugeVec
	fanSpeed     *prometheus.GaugeVec
	inUse        *prometheus.GaugeVec
	sharing      *prometheus.GaugeVec
	displays     *prometheus.GaugeVec
	feature      *prometheus.GaugeVec
}

func NewMetricsCollector(devices []Device) *MetricsCollector {
	labels := []string{"device"}
	return &MetricsCollector{
		devices: devices,
		success: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_scrape_success",
			Help: "Last poll success per device (1=ok, 0=error)",
		}, labels),
		pollDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_poll_duration_seconds",
			Help: "Wall time of the last poll per device",
		}, labels),
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_device_info",
			Help: "Device identity reported by the unit (always 1)",
		}, []string{"device", "model", "serial", "api_version"}),
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_device_status",
			Help: "Device health state reported by the unit (1=current)",
		}, []string{"device", "status"}),
		uptime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_uptime_seconds",
			Help: "Uptime since the last boot",
		}, labels),
		uptimeTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_uptime_total_seconds",
			Help: "Accumulated uptime over the device lifetime",
		}, labels),
		temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_temperature_celsius",
			Help: "Board temperature sensors (celsius)",
		}, []string{"device", "sensor"}),
		fanSpeed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_cpu_fan_speed",
			Help: "CPU fan speed reported by the unit",
		}, labels),
		inUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_in_use",
			Help: "Whether the unit is currently in use (1=yes, 0=no)",
		}, labels),
		sharing: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_sharing",
			Help: "Whether screen sharing is active (1=yes, 0=no)",
		}, labels),
		displays: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_display_count",
			Help: "Number of attached displays",
		}, labels),
		feature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickshare_feature_enabled",
			Help: "Sharing feature states (1=enabled, 0=disabled)",
		}, []string{"device", "feature"}),
	}
}

func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	c.success.Describe(ch)
	c.pollDuration.Describe(ch)
	c.info.Describe(ch)
	c.status.Describe(ch)
	c.uptime.Describe(ch)
	c.uptimeTotal.Describe(ch)
	c.temperature.Describe(ch)
	c.fanSpeed.Describe(ch)
	c.inUse.Describe(ch)
	c.sharing.Describe(ch)
	c.displays.Describe(ch)
	c.feature.Describe(ch)
}

func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.info.Reset()
	c.status.Reset()
	c.uptime.Reset()
	c.uptimeTotal.Reset()
	c.temperature.Reset()
	c.fanSpeed.Reset()
	c.inUse.Reset()
	c.sharing.Reset()
	c.displays.Reset()
	c.feature.Reset()

	for _, device := range c.devices {
		started := time.Now()
		snap, err := device.Adapter.Poll(ctx)
		c.pollDuration.WithLabelValues(device.Name).Set(time.Since(started).Seconds())
		if err != nil {
			c.success.WithLabelValues(device.Name).Set(0)
			continue
		}
		c.success.WithLabelValues(device.Name).Set(1)
		c.collectDevice(device, snap)
	}

	c.success.Collect(ch)
	c.pollDuration.Collect(ch)
	c.info.Collect(ch)
	c.status.Collect(ch)
	c.uptime.Collect(ch)
	c.uptimeTotal.Collect(ch)
	c.temperature.Collect(ch)
	c.fanSpeed.Collect(ch)
	c.inUse.Collect(ch)
	c.sharing.Collect(ch)
	c.displays.Collect(ch)
	c.feature.Collect(ch)
}

func (c *MetricsCollector) collectDevice(device Device, snap *Snapshot) {
	stats := snap.Statistics

	model := firstStat(stats, "Device Information#Model Name", "Device information#Model name")
	serial := firstStat(stats, "Device Information#Serial Number", "Device information#Serial number")
	c.info.WithLabelValues(device.Name, model, serial, device.Adapter.Version()).Set(1)

	if status, ok := stats["Device Status#Status"]; ok {
		c.status.WithLabelValues(device.Name, status).Set(1)
	}
	if value, ok := statFloat(stats, "Device Status#Uptime (sec)"); ok {
		c.uptime.WithLabelValues(device.Name).Set(value)
	}
	if value, ok := statFloat(stats, "Device Status#Uptime Total (sec)"); ok {
		c.uptimeTotal.WithLabelValues(device.Name).Set(value)
	}
	for sensor, name := range map[string]string{
		"cpu":  "Device Sensors#Cpu Temperature (C)",
		"pcie": "Device Sensors#Pcie Temperature (C)",
		"sio":  "Device Sensors#Sio Temperature (C)",
	} {
		if value, ok := statFloat(stats, name); ok {
			c.temperature.WithLabelValues(device.Name, sensor).Set(value)
		}
	}
	if value, ok := statFloat(stats, "Device Sensors#Cpu Fan Speed"); ok {
		c.fanSpeed.WithLabelValues(device.Name).Set(value)
	}
	if value, ok := statBool(stats, "Device Status#In Use"); ok {
		c.inUse.WithLabelValues(device.Name).Set(value)
	}
	if value, ok := statBool(stats, "Device Status#Sharing"); ok {
		c.sharing.WithLabelValues(device.Name).Set(value)
	}
	if value, ok := statFloat(stats, "Display#Display Count"); ok {
		c.displays.WithLabelValues(device.Name).Set(value)
	}
	for feature, name := range map[string]string{
		"miracast":   propMiracast,
		"googlecast": propGooglecast,
		"airplay":    propAirplay,
		"blackboard": propBlackboard,
	} {
		if value, ok := statBool(stats, name); ok {
			c.feature.WithLabelValues(device.Name, feature).Set(value)
		}
	}
}

func firstStat(stats map[string]string, names ...string) string {
	for _, name := range names {
		if value, ok := stats[name]; ok {
			return value
		}
	}
	return ""
}

func statFloat(stats map[string]string, name string) (float64, bool) {
	raw, ok := stats[name]
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func statBool(stats map[string]string, name string) (float64, bool) {
	switch stats[name] {
	case "true":
		return 1, true
	case "false":
		return 0, true
	}
	return 0, false
}
