package api_test

import (
	"os"
	"strings"
	"testing"
)

// Routes that intentionally run without a session: health, and the
// auth endpoints that establish or tear down the session itself.
var unguardedRoutes = map[string]bool{
	"/api/health":                    true,
	"/api/oauth/google/redirect_url": true,
	"/api/sessions":                  true,
	"/api/logout":                    true,
}

// Every registered route must pass through withSession unless it is
// explicitly listed above. This guards against new endpoints being
// added without the session check.
func TestAllRoutesAreSessionGuarded(t *testing.T) {
	src, err := os.ReadFile("server.go")
	if err != nil {
		t.Fatalf("read server.go: %v", err)
	}
	for i, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "r.MethodFunc(") {
			continue
		}
		path := routePath(trimmed)
		if path == "" {
			t.Errorf("line %d: cannot extract route path: %s", i+1, trimmed)
			continue
		}
		base := strings.SplitN(path, "{", 2)[0]
		base = strings.TrimSuffix(base, "/")
		if unguardedRoutes[base] {
			continue
		}
		if !strings.Contains(trimmed, "withSession(") {
			t.Errorf("line %d: route %s is not session guarded", i+1, path)
		}
	}
}

func routePath(line string) string {
	start := strings.Index(line, `"/`)
	if start < 0 {
		return ""
	}
	rest := line[start+1:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}
	return rest[:end]
}
