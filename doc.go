// Package confstack provides a small, layered configuration loader for Go applications.
//
// It supports:
//  1. Merging settings from JSON, TOML, YAML, INI and dotenv files into a
//     single ordered key-value store, later sources overwriting earlier ones.
//  2. Searching an ordered list of directories for a configuration file and
//     merging every copy found, on top of optional defaults.
//  3. Overlaying environment variables that share a common prefix.
//  4. Nested lookups through mixed mapping/sequence values that degrade to a
//     fallback value instead of failing.
//
// Typical usage:
//
//	cfg, err := confstack.NewLoader("app.yaml").
//	    SetDefaults(map[string]any{"port": 8080}).
//	    AddFolderPath("/etc/myapp").
//	    AddFolderPath(".").
//	    Build(false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	host := cfg.GetNested([]string{"server", "host"}, "localhost")
//	_ = host
package confstack
