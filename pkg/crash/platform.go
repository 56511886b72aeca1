package crash

import (
	"fmt"
	"runtime"
	"strings"
)

// PlatformBanner describes the host OS for the model, e.g.
// "# Operating System: Linux, Version: 6.8.0-45-generic".
func PlatformBanner() string {
	return fmt.Sprintf("# Operating System: %s, Version: %s\n\n", osName(), osRelease())
}

func osName() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	default:
		return strings.ToUpper(runtime.GOOS[:1]) + runtime.GOOS[1:]
	}
}
