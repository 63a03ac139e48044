package chromerasterizer

import (
	"runtime"
	"testing"
)

func TestResolveChromePath_Precedence(t *testing.T) {
	t.Setenv("CHROME_PATH", "/env/chrome")

	if got := ResolveChromePath("/explicit/chrome"); got != "/explicit/chrome" {
		t.Errorf("explicit path should win, got %s", got)
	}
	if got := ResolveChromePath(""); got != "/env/chrome" {
		t.Errorf("expected CHROME_PATH, got %s", got)
	}
}

func TestResolveChromePath_SystemDefault(t *testing.T) {
	t.Setenv("CHROME_PATH", "")

	// Empty is valid when no browser is installed.
	t.Logf("system chrome: %q", ResolveChromePath(""))
}

func TestResolveExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths only")
	}

	if got := resolveExecutable("/bin/sh"); got != "/bin/sh" {
		t.Errorf("expected /bin/sh, got %q", got)
	}
	if got := resolveExecutable("/definitely/not/a/real/path/chrome"); got != "" {
		t.Errorf("expected empty for missing path, got %q", got)
	}
	if got := resolveExecutable("definitely-not-a-real-command-xyz123"); got != "" {
		t.Errorf("expected empty for missing command, got %q", got)
	}
}
