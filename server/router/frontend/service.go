package frontend

import (
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/cutverse/internal/profile"
)

type FrontendService struct {
	Profile *profile.Profile
}

func NewFrontendService(profile *profile.Profile) *FrontendService {
	return &FrontendService{
		Profile: profile,
	}
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api") || path == "/metrics" || path == "/healthz"
}

// Serve mounts the embedded demo page. Nothing is mounted when the binary was
// built without it.
func (*FrontendService) Serve(e *echo.Echo) {
	filesystem, ok := getFileSystem("dist")
	if !ok {
		slog.Debug("frontend: no embedded assets, skipping")
		return
	}

	// Event streams must reach the client unbuffered, so the API is never compressed.
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return isAPIPath(c.Request().URL.Path)
		},
	}))

	skipper := func(c echo.Context) bool {
		if isAPIPath(c.Request().URL.Path) {
			return true
		}

		// Security: Prevent MIME type sniffing
		c.Response().Header().Set("X-Content-Type-Options", "nosniff")

		ext := filepath.Ext(c.Request().URL.Path)
		if ext == "" || ext == ".html" {
			c.Response().Header().Set(echo.HeaderCacheControl, "no-cache, no-store, must-revalidate")
			return false
		}
		c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")
		return false
	}

	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Filesystem: filesystem,
		HTML5:      true, // Enable fallback to index.html
		Skipper:    skipper,
	}))
}

func getFileSystem(path string) (http.FileSystem, bool) {
	sub, err := fs.Sub(embeddedFiles, path)
	if err != nil {
		return nil, false
	}
	if _, err := fs.Stat(sub, "index.html"); err != nil {
		return nil, false
	}
	return http.FS(sub), true
}
