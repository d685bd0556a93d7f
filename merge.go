package confstack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// defaultDotenvName is the discovery location used when FromDotenv is called
// without a filename. It matches the dotenv parser's own default.
const defaultDotenvName = ".env"

// FromFile merges the contents of filename into the store using the merge
// operation registered for format. A format outside the recognized set is
// rejected with ErrUnknownFileType. With silent set, a missing file is a
// no-op; read failures carry the path, and decode failures are returned
// exactly as the decoder produced them.
func (c *Config) FromFile(filename string, format Format, silent bool) error {
	op, ok := mergeOps[format]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFileType, format)
	}
	return op(c, filename, silent)
}

// FromReader merges configuration decoded from r according to format. All
// five formats can be decoded from a stream.
func (c *Config) FromReader(r io.Reader, format Format) error {
	if _, ok := mergeOps[format]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFileType, format)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return c.decodeAndMerge(data, format)
}

// FromJSON merges keys from a JSON file. Line and block comments in the file
// are tolerated and stripped before decoding. Silent and error behavior is
// that of FromFile.
func (c *Config) FromJSON(filename string, silent bool) error {
	return c.mergeFile(filename, FormatJSON, silent)
}

// FromTOML merges keys from a TOML file.
func (c *Config) FromTOML(filename string, silent bool) error {
	return c.mergeFile(filename, FormatTOML, silent)
}

// FromYAML merges keys from a YAML file.
func (c *Config) FromYAML(filename string, silent bool) error {
	return c.mergeFile(filename, FormatYAML, silent)
}

// FromINI merges keys from an INI file. Each named section becomes a
// top-level key holding that section's entries as a flat string-to-string
// map, replacing any existing key with the section's name. Sections apply in
// declaration order; keys above the first section header are skipped.
func (c *Config) FromINI(filename string, silent bool) error {
	return c.mergeFile(filename, FormatINI, silent)
}

// FromDotenv merges keys from a dotenv file. An explicitly named file that
// does not exist is ErrFileNotFound, or a no-op when silent. An empty
// filename falls back to the default discovery location, a .env file in the
// current directory, which is merged when present and skipped quietly
// otherwise.
func (c *Config) FromDotenv(filename string, silent bool) error {
	if filename == "" {
		if _, err := os.Stat(defaultDotenvName); err != nil {
			return nil
		}
		filename = defaultDotenvName
	} else if _, err := os.Stat(filename); err != nil {
		if silent {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrFileNotFound, filename)
	}
	m, err := godotenv.Read(filename)
	if err != nil {
		return err
	}
	mergeSorted(c, m)
	return nil
}

// FromEnv merges every environment variable whose name begins with prefix
// plus an underscore, keyed by the rest of the name. Values are kept as
// strings; nothing is parsed or converted. Variables outside the prefix are
// ignored.
func (c *Config) FromEnv(prefix string) {
	search := prefix + "_"
	m := make(map[string]string)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, search) {
			continue
		}
		m[name[len(search):]] = value
	}
	mergeSorted(c, m)
}

// mergeFile reads filename and overlays its decoded contents. A nil data
// result from readConfigFile means the read was skipped in silent mode.
func (c *Config) mergeFile(filename string, format Format, silent bool) error {
	data, err := readConfigFile(filename, silent)
	if err != nil || data == nil {
		return err
	}
	return c.decodeAndMerge(data, format)
}

// readConfigFile reads filename, translating a missing file into a skip
// (nil data, nil error) when silent is set.
func readConfigFile(filename string, silent bool) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if silent && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return data, nil
}

// decodeAndMerge applies the decoder for format to data and overlays the
// resulting mapping onto the store. Decoder errors are returned exactly as
// produced, without wrapping.
func (c *Config) decodeAndMerge(data []byte, format Format) error {
	switch format {
	case FormatJSON:
		var m map[string]any
		if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
			return err
		}
		c.Merge(m)
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return err
		}
		c.Merge(m)
	case FormatYAML:
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return err
		}
		c.Merge(m)
	case FormatINI:
		f, err := ini.Load(data)
		if err != nil {
			return err
		}
		c.mergeSections(f)
	case FormatEnv:
		m, err := godotenv.Unmarshal(string(data))
		if err != nil {
			return err
		}
		mergeSorted(c, m)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFileType, format)
	}
	return nil
}

// mergeSections overlays each named section of f as a top-level key. Keys
// declared above any section header land in the parser's unnamed default
// section, which is not merged.
func (c *Config) mergeSections(f *ini.File) {
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		c.Set(sec.Name(), sec.KeysHash())
	}
}
