// internal/common/config/credential.go
package config

import "runtime"

// defaultCredentialHelper picks the platform credential manager git should
// cache push credentials with.
func defaultCredentialHelper() string {
	switch runtime.GOOS {
	case "windows":
		return "manager"
	case "darwin":
		return "osxkeychain"
	default:
		return "cache"
	}
}
