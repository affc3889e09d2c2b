// Package auth decides where an authenticated session may navigate.
package auth

import (
	"strings"

	"github.com/yigit/campusdesk/internal/app/models"
)

// LoginPath is where unauthenticated callers are sent.
const LoginPath = "/auth/login"

var landingPaths = map[models.Role]string{
	models.RoleStudent:  "/student",
	models.RoleLecturer: "/lecturer",
	models.RoleAdmin:    "/admin",
}

// Session is the authenticated identity carried by an access token.
type Session struct {
	ProfileID int64       `json:"profileId"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

// Decision is the outcome of a route check.
type Decision struct {
	Allowed  bool
	Redirect string
}

// LandingPath returns the home area for role. Unknown roles land on the login page.
func LandingPath(role models.Role) string {
	if p, ok := landingPaths[role]; ok {
		return p
	}
	return LoginPath
}

// areaOwner returns the role whose area path belongs to, if any.
func areaOwner(path string) (models.Role, bool) {
	for role, prefix := range landingPaths {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return role, true
		}
	}
	return "", false
}

func isLoginPath(path string) bool {
	return path == LoginPath || strings.HasPrefix(path, LoginPath+"/")
}

// Resolve decides whether session may open path.
func Resolve(session *Session, path string) Decision {
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")

	if session == nil || session.ProfileID <= 0 {
		if isLoginPath(path) {
			return Decision{Allowed: true}
		}
		return Decision{Redirect: LoginPath}
	}

	if !session.Role.IsValid() {
		return Decision{Redirect: LoginPath}
	}

	landing := LandingPath(session.Role)
	if isLoginPath(path) {
		return Decision{Redirect: landing}
	}

	if owner, ok := areaOwner(path); ok && owner != session.Role {
		return Decision{Redirect: landing}
	}

	return Decision{Allowed: true}
}
