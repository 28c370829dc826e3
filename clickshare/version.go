package clickshare

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ErrUnsupportedVersion means version discovery yielded no usable API
// version: an empty list, a blank entry, an unknown generation, or a v1
// version missing its minor component.
var ErrUnsupportedVersion = errors.New("unsupported clickshare api version")

// apiVersion is the resolved device API generation. The zero value means not
// resolved yet.
type apiVersion struct {
	raw   string
	v2    bool
	minor int
}

func (v apiVersion) resolved() bool { return v.raw != "" }

// path prefixes a resource with the generation URL segment.
func (v apiVersion) path(resource string) string {
	return v.raw + "/" + resource
}

func (v apiVersion) String() string { return v.raw }

// parseVersion normalizes a discovered version string: anything in the v2
// family collapses to the bare major token, v1 keeps its dotted form and must
// carry a parsable minor version.
func parseVersion(s string) (apiVersion, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return apiVersion{}, ErrUnsupportedVersion
	case strings.HasPrefix(s, "v2"):
		return apiVersion{raw: "v2", v2: true}, nil
	case strings.HasPrefix(s, "v1"):
		rest, ok := strings.CutPrefix(s, "v1.")
		if !ok {
			return apiVersion{}, fmt.Errorf("%w: %q lacks a minor version", ErrUnsupportedVersion, s)
		}
		minor, err := strconv.Atoi(strings.SplitN(rest, ".", 2)[0])
		if err != nil {
			return apiVersion{}, fmt.Errorf("%w: %q lacks a parsable minor version", ErrUnsupportedVersion, s)
		}
		return apiVersion{raw: s, minor: minor}, nil
	default:
		return apiVersion{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
}

// versionDiscovery is the SupportedVersions response. Both generations answer
// this endpoint with the v1 envelope shape.
type versionDiscovery struct {
	Status int `json:"status"`
	Data   struct {
		Value []string `json:"value"`
	} `json:"data"`
}

// resolveVersion queries the discovery endpoint and caches the result for the
// adapter's lifetime. The device lists versions in ascending order; the last
// entry wins. Failures leave the session unresolved so the next call retries.
func (a *Adapter) resolveVersion(ctx context.Context) error {
	if a.version.resolved() {
		return nil
	}

	var discovery versionDiscovery
	if err := a.client.get(ctx, apiSupportedVersions, &discovery); err != nil {
		return fmt.Errorf("discover api version: %w", err)
	}
	if discovery.Status != http.StatusOK || len(discovery.Data.Value) == 0 {
		return ErrUnsupportedVersion
	}

	version, err := parseVersion(discovery.Data.Value[len(discovery.Data.Value)-1])
	if err != nil {
		return err
	}
	a.version = version
	return nil
}
