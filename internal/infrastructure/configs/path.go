package configs

import (
	"flag"
	"io"
	"os"

	"github.com/hilthontt/roomly/internal/infrastructure/env"
)

const ConfigPathEnv = "ROOMLY_CONFIG"

var searchPaths = []string{
	"./config.yaml",
	"./config.yml",
	"../../config.yaml",
	"/etc/roomly/config.yaml",
	"/app/config.yaml",
}

// DetermineConfigPath picks the config file from -config, then
// ROOMLY_CONFIG, then the first search path that exists. An empty result
// means defaults and env overrides only.
func DetermineConfigPath() string {
	fs := flag.NewFlagSet("roomly", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	explicit := fs.String("config", "", "path to config file")
	_ = fs.Parse(os.Args[1:])

	return resolveConfigPath(*explicit, env.GetString(ConfigPathEnv, ""), searchPaths, isFile)
}

func resolveConfigPath(explicit, fromEnv string, candidates []string, exists func(string) bool) string {
	if explicit != "" {
		return explicit
	}
	if fromEnv != "" {
		return fromEnv
	}

	for _, p := range candidates {
		if exists(p) {
			return p
		}
	}

	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
