//go:build !unix && !windows

package crash

func osRelease() string {
	return "unknown"
}
