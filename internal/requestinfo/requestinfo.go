//
//  internal/requestinfo/requestinfo.go
//
//  Per-request metadata: client IP, user-agent class, and arrival time.
//  These structs are inert.  They hold no handles or large buffers, so
//  they are safe to log or JSON-encode.
//
//  Dependencies
//  • github.com/avct/uasurfer   (UA parsing)
//

package requestinfo

import (
	"context"
	"net"
	"strings"
	"time"

	surfer "github.com/avct/uasurfer"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// UA holds the user-agent properties the access log records.
type UA struct {
	Browser string // "Chrome", "Firefox", … ("" for API clients)
	OS      string // "macOS", "Windows", …
	Device  string // "Desktop", "Mobile", "Tablet", or "Other"
	IsBot   bool
}

// RequestInfo is stored in the request context by Enrich.
type RequestInfo struct {
	IP        net.IP
	UA        UA
	Timestamp time.Time
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer stored by Enrich, or nil if the
// middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

// NewContext returns a copy of ctx carrying info.
func NewContext(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(raw string) UA {
	if raw == "" {
		return UA{Device: "Other"}
	}
	u := surfer.Parse(raw)

	out := UA{
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		OS:      strings.TrimPrefix(u.OS.Name.String(), "OS"),
		IsBot:   u.IsBot(),
	}
	if out.Browser == "Unknown" {
		out.Browser = ""
	}
	if out.OS == "Unknown" {
		out.OS = ""
	}
	if out.OS == "MacOSX" {
		out.OS = "macOS"
	}

	switch u.DeviceType {
	case surfer.DeviceComputer:
		out.Device = "Desktop"
	case surfer.DeviceTablet:
		out.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		out.Device = "Mobile"
	default:
		out.Device = "Other"
	}
	return out
}

// clientIP extracts the left-most parseable address from X-Forwarded-For
// or X-Real-IP, falling back to remoteAddr ("ip:port").
func clientIP(xff, xrip, remoteAddr string) net.IP {
	if xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(remoteAddr)
}
