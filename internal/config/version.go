package config

import (
	"fmt"

	"github.com/knadh/koanf/v2"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 1

// Migration rewrites a loaded config from one schema version to the next
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(k *koanf.Koanf) error
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// Migration 0 -> 1: flat keys moved into sections
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(k *koanf.Koanf) error {
			moves := map[string]string{
				"default_language": "overlay.default_language",
				"api_base":         "provider.base_url",
				"model":            "provider.fallback_model",
			}
			for from, to := range moves {
				if !k.Exists(from) {
					continue
				}
				if !k.Exists(to) {
					if err := k.Set(to, k.Get(from)); err != nil {
						return err
					}
				}
				k.Delete(from)
			}
			return k.Set("version", 1)
		},
	},
}

// Migrate upgrades k in place to CurrentVersion
func Migrate(k *koanf.Koanf) error {
	version := k.Int("version")

	if version > CurrentVersion {
		return fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}

	for _, migration := range migrations {
		if migration.FromVersion == version {
			if err := migration.Migrate(k); err != nil {
				return fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			version = migration.ToVersion
		}
	}

	if version < CurrentVersion {
		return fmt.Errorf("no migration path from version %d to %d", version, CurrentVersion)
	}
	return nil
}
