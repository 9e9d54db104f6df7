package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shape-gallery/internal/token"
)

const adminLoginPath = "/admin/login"

// sessionFromRequest extracts and verifies the session token from either the
// session cookie or a bearer Authorization header. Any invalid, expired or
// absent token means unauthenticated.
func (h *Handler) sessionFromRequest(c *gin.Context) (*token.SessionClaims, bool) {
	raw := ""
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		raw = cookie
	}
	if header := c.GetHeader("Authorization"); header != "" {
		if rest, found := strings.CutPrefix(header, "Bearer "); found {
			raw = strings.TrimSpace(rest)
		}
	}
	if raw == "" {
		return nil, false
	}

	claims, err := h.tokens.Verify(raw)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// requireSession enforces authentication on mutation endpoints. These are
// consumed by scripts, not browser navigation, so failures are a structured
// 401 rather than a redirect.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := h.sessionFromRequest(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set("session", claims)
		c.Next()
	}
}

// adminGuard drives browser navigation on the /admin prefix: unauthenticated
// requests to protected pages bounce to the login page, and an authenticated
// visit to the login page bounces back to the admin landing page. Everything
// else passes through untouched.
func (h *Handler) adminGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, authenticated := h.sessionFromRequest(c)
		isLoginPage := c.Request.URL.Path == adminLoginPath

		if !authenticated && !isLoginPage {
			c.Redirect(http.StatusFound, adminLoginPath)
			c.Abort()
			return
		}
		if authenticated && isLoginPage {
			c.Redirect(http.StatusFound, "/admin")
			c.Abort()
			return
		}

		c.Next()
	}
}
