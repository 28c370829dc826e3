package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/clickshare"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/config"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/fleet"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "devices":
		devicesCmd(ctx, os.Args[2:])
	case "snapshot":
		snapshotCmd(ctx, os.Args[2:])
	case "control":
		controlCmd(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func devicesCmd(ctx context.Context, args []string) {
	flags := flag.NewFlagSet("devices", flag.ExitOnError)
	addr := flags.String("addr", resolveAddr(), "monitor base URL")
	jsonOut := flags.Bool("json", false, "print raw JSON")
	_ = flags.Parse(args)

	var summaries []fleet.Summary
	getAPI(ctx, *addr+"/api/devices", &summaries)

	out := outputMode{json: *jsonOut}
	if out.json {
		out.printJSON(summaries)
		return
	}

	rows := [][]string{{"NAME", "HOST", "MODEL", "API", "HEALTH", "LAST POLL"}}
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.Name,
			summary.Host,
			orDash(summary.Model),
			orDash(summary.APIVersion),
			string(summary.Health),
			formatPollTime(summary.LastPoll),
		})
	}
	out.table(rows)
}

type snapshotReply struct {
	Device   string               `json:"device"`
	PolledAt time.Time            `json:"polled_at"`
	Snapshot *clickshare.Snapshot `json:"snapshot"`
}

func snapshotCmd(ctx context.Context, args []string) {
	flags := flag.NewFlagSet("snapshot", flag.ExitOnError)
	addr := flags.String("addr", resolveAddr(), "monitor base URL")
	jsonOut := flags.Bool("json", false, "print raw JSON")
	_ = flags.Parse(args)
	remaining := flags.Args()
	if len(remaining) < 1 {
		fatal("snapshot", fmt.Errorf("missing device name"))
	}

	var reply snapshotReply
	getAPI(ctx, *addr+"/api/devices/"+url.PathEscape(remaining[0])+"/snapshot", &reply)

	out := outputMode{json: *jsonOut}
	if out.json {
		out.printJSON(reply)
		return
	}
	if reply.Snapshot == nil {
		fatal("snapshot", fmt.Errorf("no snapshot in response"))
	}

	fmt.Printf("%s (polled %s)\n\n", reply.Device, formatPollTime(reply.PolledAt))

	names := make([]string, 0, len(reply.Snapshot.Statistics))
	for name := range reply.Snapshot.Statistics {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, reply.Snapshot.Statistics[name]})
	}
	out.table(rows)

	fmt.Println("\ncontrols:")
	rows = rows[:0]
	for _, control := range reply.Snapshot.Controls {
		rows = append(rows, []string{control.Name, string(control.Kind), control.Value})
	}
	out.table(rows)
}

func controlCmd(ctx context.Context, args []string) {
	flags := flag.NewFlagSet("control", flag.ExitOnError)
	addr := flags.String("addr", resolveAddr(), "monitor base URL")
	_ = flags.Parse(args)
	remaining := flags.Args()
	if len(remaining) < 3 {
		fatal("control", fmt.Errorf("usage: control <device> <property> <value>"))
	}

	body, err := json.Marshal(clickshare.ControlRequest{Property: remaining[1], Value: remaining[2]})
	if err != nil {
		fatal("encode request", err)
	}
	postAPI(ctx, *addr+"/api/devices/"+url.PathEscape(remaining[0])+"/control", body, nil)
	fmt.Println("ok")
}

func getAPI(ctx context.Context, url string, into any) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fatal("request", err)
	}
	doAPI(req, into)
}

func postAPI(ctx context.Context, url string, body []byte, into any) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		fatal("request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	doAPI(req, into)
}

func doAPI(req *http.Request, into any) {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fatal("request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			fatal("api", fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode))
		}
		fatal("api", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if into != nil {
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			fatal("decode response", err)
		}
	}
}

func resolveAddr() string {
	if value := os.Getenv("CLICKSHARE_ADDR"); value != "" {
		return value
	}
	if addr := addrFromConfig(config.DefaultPath); addr != "" {
		return addr
	}
	return "http://127.0.0.1:9180"
}

func addrFromConfig(path string) string {
	cfg, err := config.Load(path)
	if err != nil {
		return ""
	}
	listen := cfg.Server.ListenAddr
	if strings.HasPrefix(listen, ":") {
		return "http://127.0.0.1" + listen
	}
	return "http://" + listen
}

type outputMode struct {
	json bool
}

func (o outputMode) printJSON(value any) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fatal("format json", err)
	}
	fmt.Println(string(data))
}

func (o outputMode) table(rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func formatPollTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC3339)
}

func usage() {
	fmt.Println("clickshare-cli <command> [args]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  devices [-json]")
	fmt.Println("  snapshot [-json] <device>")
	fmt.Println("  control <device> <property> <value>")
	fmt.Println("")
	fmt.Println("The monitor address comes from -addr, CLICKSHARE_ADDR, or the config file.")
}

func fatal(action string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", action, err)
	os.Exit(1)
}
