package config

import "os"

func saveRaw(path, body string) error {
	return os.WriteFile(path, []byte(body), 0644)
}
