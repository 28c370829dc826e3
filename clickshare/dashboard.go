package clickshare

import _ "embed"

// DashboardJSON is the bundled Grafana dashboard for the exported metrics.
//
//go:embed dashboard.json
var DashboardJSON []byte
