package shell

import (
	"fmt"
	"sort"
	"strings"
)

// MergeEnv returns base with overrides applied. Override values win on key
// collision; keys absent from base are appended in sorted order.
func MergeEnv(base []string, overrides map[string]string) []string {
	env := append([]string(nil), base...)
	if len(overrides) == 0 {
		return env
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		env = SetEnv(env, key, overrides[key])
	}
	return env
}

// GetEnv returns the value for the key from an env slice.
func GetEnv(env []string, key string) (string, bool) {
	for _, entry := range env {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) == 2 && parts[0] == key {
			return parts[1], true
		}
	}
	return "", false
}

// SetEnv sets every entry for key to value, appending one when absent.
func SetEnv(env []string, key string, value string) []string {
	entry := fmt.Sprintf("%s=%s", key, value)
	found := false
	for i, existing := range env {
		if strings.HasPrefix(existing, key+"=") {
			env[i] = entry
			found = true
		}
	}
	if found {
		return env
	}
	return append(env, entry)
}
