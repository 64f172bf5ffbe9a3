package model

import (
	"fmt"
	"net/http"
	"strings"
)

// Platform identifies an external scan/case-management system orders are
// ingested from. MYSMILELAB marks orders created inside the lab itself.
type Platform string

const (
	PlatformMeditLink   Platform = "MEDITLINK"
	PlatformItero       Platform = "ITERO"
	PlatformThreeShape  Platform = "THREESHAPE"
	PlatformDexis       Platform = "DEXIS"
	PlatformCSConnect   Platform = "CSCONNECT"
	PlatformGoogleDrive Platform = "GOOGLE_DRIVE"
	PlatformMySmileLab  Platform = "MYSMILELAB"
)

// Route describes how the backend is driven for one platform: which endpoint
// triggers a sync, how connection status is queried, and whether the platform
// participates in bulk sync at all.
type Route struct {
	SyncMethod string
	SyncPath   string
	StatusPath string
	// Paginated platforms take page/size query parameters on sync.
	Paginated bool
	// BulkEligible platforms are included in "sync all".
	BulkEligible bool
	// Syncable is false for platforms without any sync endpoint.
	Syncable bool
	// Refreshable platforms support proactive token refresh.
	Refreshable bool
	RefreshPath string
}

// routes is the single dispatch table for platform-specific behaviour.
var routes = map[Platform]Route{
	PlatformMeditLink: {
		SyncMethod:   http.MethodPost,
		SyncPath:     "/meditlink/cases/save",
		StatusPath:   "/meditlink/auth/status",
		Paginated:    true,
		BulkEligible: true,
		Syncable:     true,
		Refreshable:  true,
		RefreshPath:  "/meditlink/auth/refresh",
	},
	PlatformItero: {
		SyncMethod:   http.MethodPost,
		SyncPath:     "/itero/commandes/save",
		StatusPath:   "/itero/auth/status",
		BulkEligible: true,
		Syncable:     true,
	},
	PlatformThreeShape: {
		SyncMethod:   http.MethodGet,
		SyncPath:     "/threeshape/cases/save",
		StatusPath:   "/threeshape/status",
		BulkEligible: true,
		Syncable:     true,
	},
	PlatformDexis: {
		SyncMethod:   http.MethodPost,
		SyncPath:     "/dexis/commandes/save",
		StatusPath:   "/dexis/auth/status",
		BulkEligible: true,
		Syncable:     true,
		Refreshable:  true,
		RefreshPath:  "/dexis/auth/refresh",
	},
	// CS Connect can be synced individually but is excluded from bulk sync.
	PlatformCSConnect: {
		SyncMethod: http.MethodPost,
		SyncPath:   "/csconnect/commandes/save",
		StatusPath: "/csconnect/status",
		Syncable:   true,
	},
	// Google Drive ingestion is push-based; there is no sync endpoint.
	PlatformGoogleDrive: {
		StatusPath: "/googledrive/status",
	},
}

// platformOrder fixes a stable iteration order for fan-out and display.
var platformOrder = []Platform{
	PlatformMeditLink,
	PlatformItero,
	PlatformThreeShape,
	PlatformDexis,
	PlatformCSConnect,
	PlatformGoogleDrive,
}

// RouteFor returns the dispatch entry for a platform. The second value is
// false for platforms without backend routes.
func RouteFor(p Platform) (Route, bool) {
	r, ok := routes[p]
	return r, ok
}

// ExternalPlatforms lists every platform with a backend route, in stable order.
func ExternalPlatforms() []Platform {
	return append([]Platform(nil), platformOrder...)
}

// SyncablePlatforms lists platforms that expose a sync endpoint.
func SyncablePlatforms() []Platform {
	out := make([]Platform, 0, len(platformOrder))
	for _, p := range platformOrder {
		if routes[p].Syncable {
			out = append(out, p)
		}
	}
	return out
}

// BulkSyncPlatforms lists platforms included in "sync all".
func BulkSyncPlatforms() []Platform {
	out := make([]Platform, 0, len(platformOrder))
	for _, p := range platformOrder {
		if routes[p].Syncable && routes[p].BulkEligible {
			out = append(out, p)
		}
	}
	return out
}

// ParsePlatform converts a request string into a known platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToUpper(strings.TrimSpace(s)))
	if p == PlatformMySmileLab {
		return p, nil
	}
	if _, ok := routes[p]; !ok {
		return "", fmt.Errorf("unknown platform %q", s)
	}
	return p, nil
}
