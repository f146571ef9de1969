package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health answers liveness probes with a plain "ok". It deliberately skips
// the database so a slow MySQL cannot make the service look dead.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
