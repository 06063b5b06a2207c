package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"agrismart/pkg/session"
)

const (
	SessionCookie = "AGRI_SID"
	SessionHeader = "X-Session-Id"
)

// Session gives every browser an anonymous id. The cookie wins over the
// header; when neither is present a new uuid is issued as a cookie.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				sid = ck.Value
			}
			if sid == "" {
				sid = c.Request().Header.Get(SessionHeader)
			}
			if _, err := uuid.Parse(sid); err != nil {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.SetRequest(c.Request().WithContext(session.With(c.Request().Context(), sid)))
			return next(c)
		}
	}
}
