package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitadmin/internal/session"
)

const (
	LoginPath     = "/auth/login"
	ForbiddenPath = "/403"
	HomePath      = "/"
	// ExpiredLoginPath carries the marker the login page turns into a notice.
	ExpiredLoginPath = LoginPath + "?tokenExpired=true"
)

// Outcome of a route guard.
type Outcome int

const (
	Render Outcome = iota
	Suspend
	Redirect
)

type Decision struct {
	Outcome Outcome
	Path    string
}

// Decide is the authenticated-with-roles guard. A profile without a role list is admitted;
// otherwise it must hold one of required, so an empty required list admits no one.
func Decide(st session.State, required []string) Decision {
	if st.Loading {
		return Decision{Outcome: Suspend}
	}
	if !st.Authenticated {
		if st.Expired {
			return Decision{Outcome: Redirect, Path: ExpiredLoginPath}
		}
		return Decision{Outcome: Redirect, Path: LoginPath}
	}
	if st.User != nil && st.User.Roles != nil && !st.User.HasAnyRole(required) {
		return Decision{Outcome: Redirect, Path: ForbiddenPath}
	}
	return Decision{Outcome: Render}
}

// DecideAnonymous is the anonymous-only guard.
func DecideAnonymous(st session.State) Decision {
	if st.Loading {
		return Decision{Outcome: Suspend}
	}
	if st.Authenticated {
		return Decision{Outcome: Redirect, Path: HomePath}
	}
	return Decision{Outcome: Render}
}

// RequireRoles admits authenticated users holding at least one of roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return guard(func(st session.State) Decision { return Decide(st, roles) })
}

// AnonymousOnly sends signed-in users home.
func AnonymousOnly() gin.HandlerFunc {
	return guard(DecideAnonymous)
}

func guard(decide func(session.State) Decision) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := CurrentSession(c)
		if s == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		d := decide(s.Store.State())
		if d.Outcome == Suspend {
			select {
			case <-s.Store.Ready():
				d = decide(s.Store.State())
			case <-c.Request.Context().Done():
				c.AbortWithStatus(http.StatusServiceUnavailable)
				return
			}
		}
		switch d.Outcome {
		case Redirect:
			c.Redirect(http.StatusFound, d.Path)
			c.Abort()
		case Suspend:
			c.AbortWithStatus(http.StatusServiceUnavailable)
		default:
			c.Next()
		}
	}
}
