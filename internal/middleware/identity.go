package middleware

// identity.go bridges the JWT claims stored in the Echo context and the
// model.Identity value the core components consume.  Handlers never look
// at raw claims; they call IdentityFrom and get either a privileged admin
// identity or the guest zero value.

import (
    "github.com/labstack/echo/v4"

    "github.com/worapol/banquet-booking/internal/model"
)

// IdentityFrom builds the caller's identity from the context populated by
// JWTAuth.  Requests that never passed through JWTAuth (all public routes)
// yield the guest identity.
func IdentityFrom(c echo.Context) model.Identity {
    role, _ := c.Get("role").(string)
    if role != "ADMIN" {
        return model.Guest
    }
    name, _ := c.Get("name").(string)
    if name == "" {
        // Fall back to the username so attribution is never blank.
        name, _ = c.Get("user_id").(string)
    }
    return model.Identity{Privileged: true, DisplayName: name}
}
