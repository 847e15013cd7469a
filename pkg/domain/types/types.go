package types

import "github.com/m-mizutani/goerr/v2"

const (
	// AppName is the service identifier used in health responses and logs
	AppName = "cutover"

	// Version is the application version
	Version = "0.1.0"
)

// RouterMode selects how the workflow routes are mounted. It mirrors the
// two supported deployment shapes of the portal router and is resolved
// once at configuration load.
type RouterMode string

const (
	// RouterOutOfTheBox mounts workflow routes at the server root
	RouterOutOfTheBox RouterMode = "out-of-the-box"

	// RouterRecommended mounts workflow routes under /api/v1
	RouterRecommended RouterMode = "recommended"
)

// ParseRouterMode validates and converts a string into a RouterMode
func ParseRouterMode(s string) (RouterMode, error) {
	switch RouterMode(s) {
	case RouterOutOfTheBox, RouterRecommended:
		return RouterMode(s), nil
	default:
		return "", goerr.New("unknown router mode", goerr.V("mode", s))
	}
}

// BasePath returns the path prefix workflow routes are mounted under
func (m RouterMode) BasePath() string {
	if m == RouterRecommended {
		return "/api/v1"
	}
	return "/"
}
