package singleton

import (
	"os"
	"sync"

	"github.com/joho/godotenv"

	"github.com/starford/mannaz/pkg/config"
)

// EnvConfigPath names the environment variable pointing at the settings
// file.
const EnvConfigPath = "MANNAZ_CONFIG"

const defaultConfigPath = "config/config.yaml"

// loader bundles one load attempt: sync.Once guards it, and both the result
// and the error are sticky for the lifetime of the instance.
type loader struct {
	once     sync.Once
	settings *Settings
	err      error
}

func (l *loader) load() {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = defaultConfigPath
	}

	s := Defaults()
	if err := config.LoadIfPresent(path, s); err != nil {
		l.err = err
		return
	}
	l.settings = s
}

var (
	mu      sync.Mutex
	current = &loader{}
)

// Get returns the process-wide settings, loading them on first use. Every
// caller sees the same *Settings; a load failure is returned to all callers
// until Reset.
func Get() (*Settings, error) {
	mu.Lock()
	l := current
	mu.Unlock()

	l.once.Do(l.load)
	return l.settings, l.err
}

// Reset discards the current instance so the next Get loads fresh settings.
// It exists for tests; production code should never need it.
func Reset() {
	mu.Lock()
	current = &loader{}
	mu.Unlock()
}
