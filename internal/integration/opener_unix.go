//go:build !windows && !darwin

package integration

// openCommand uses the freedesktop handler on Linux and the BSDs.
func openCommand(path string) (string, []string) {
	return "xdg-open", []string{path}
}
