package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// config is the contents of a .gobio.toml project file, read from the
// current directory if present. Flags always override a config value when
// both are given.
type config struct {
	Grammar string `toml:"grammar"`
	Lexer   string `toml:"lexer"`
	Table   string `toml:"table"`
	CacheDir string `toml:"cache_dir"`
}

func defaultConfig() config {
	return config{
		Grammar:  "grammar.gobio",
		Lexer:    "lexer.gobio",
		Table:    "slr1",
		CacheDir: ".gobio-cache",
	}
}

// loadConfig reads the TOML config file at path, if it exists, layering its
// values over the defaults. A missing file is not an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
