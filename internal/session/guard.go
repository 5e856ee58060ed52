package session

type Decision int

const (
	Render Decision = iota
	RedirectLogin
	RedirectUnauthorized
	ShowLoading
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	case ShowLoading:
		return "show_loading"
	}
	return "unknown"
}

// Target is the navigation path for redirect decisions, empty otherwise.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectUnauthorized:
		return UnauthorizedPath
	}
	return ""
}

// Decide is the route guard. An empty requirement marks a public page, which
// renders without a session. Otherwise the page needs a resolved,
// authenticated session whose role is one of required. There is no role
// hierarchy.
func Decide(required []Role, s Session) Decision {
	if len(required) == 0 {
		return Render
	}
	if s.Loading {
		return ShowLoading
	}
	if !s.Authenticated {
		return RedirectLogin
	}
	for _, role := range required {
		if role == s.Role {
			return Render
		}
	}
	return RedirectUnauthorized
}
