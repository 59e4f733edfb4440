package provider

// Route names a screen. Views report the route to navigate to next, and the
// provider attaches one to events that require a redirect.
type Route string

const (
	RouteNone              Route = ""
	RouteLanding           Route = "/"
	RouteLogin             Route = "/login"
	RouteRegister          Route = "/register"
	RouteForgotPassword    Route = "/forgot-password"
	RouteProfile           Route = "/profile"
	RouteCreateTransaction Route = "/transactions/new"
	RouteHistory           Route = "/transactions"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

type EventKind int

const (
	EventLoggedIn EventKind = iota + 1
	EventRegistered
	EventProfileUpdated
	EventLoggedOut
	// EventSessionExpired is emitted when the API rejected the stored token.
	EventSessionExpired
)

func (k EventKind) String() string {
	switch k {
	case EventLoggedIn:
		return "logged_in"
	case EventRegistered:
		return "registered"
	case EventProfileUpdated:
		return "profile_updated"
	case EventLoggedOut:
		return "logged_out"
	case EventSessionExpired:
		return "session_expired"
	default:
		return "unknown"
	}
}

// Event describes a state transition. Redirect is set when dependent views
// must navigate away, e.g. to RouteLogin after logout.
type Event struct {
	Kind     EventKind
	State    State
	UserID   string
	Redirect Route
}
