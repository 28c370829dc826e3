package fleet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/clickshare"
)

// MetricsRegistry builds the Prometheus registry for the fleet: the
// per-device snapshot collector, the control counters, and the standard
// runtime collectors.
func MetricsRegistry(registry *Registry) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	members := registry.Members()
	devices := make([]clickshare.Device, 0, len(members))
	for _, member := range members {
		devices = append(devices, clickshare.Device{Name: member.Name(), Adapter: member.Adapter()})
	}
	reg.MustRegister(clickshare.NewMetricsCollector(devices))
	reg.MustRegister(registry.controls)
	return reg
}
