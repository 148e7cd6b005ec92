package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/shandysiswandi/gomotor/internal/cmd"
)

// @title           Gomotor API
// @version         1.0
// @description     Vehicle catalog, buy and sell leads, and the dealership back office.
// @contact.name    Gomotor Support
// @contact.email   support@gomotor.id
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  CookieAuth
// @in cookie
// @name session
// @description Session cookie set by the login endpoints. A "Bearer" Authorization header is accepted as well.
func main() {
	if err := cmd.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
