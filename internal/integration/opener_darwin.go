//go:build darwin

package integration

func openCommand(path string) (string, []string) {
	return "open", []string{path}
}
