package handler // declare the package name; contains HTTP handlers

import (
    "net/http"          // net/http provides status codes and response helpers

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is a simple health-check endpoint used by uptime monitors to
// verify that the booking service is running.  It deliberately does not
// probe the sheet API or Redis: the service keeps working without them.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
