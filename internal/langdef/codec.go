package langdef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is a payload encoding.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatTOML
	FormatJSON
	FormatYAML
	// FormatBundle is a msgpack Bundle holding several definitions.
	FormatBundle
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatBundle:
		return "msgpack"
	}
	return "unknown"
}

// ParseFormat accepts the names printed by Format.String plus "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mpk":
		return FormatBundle, nil
	}
	return FormatUnknown, fmt.Errorf("unknown definition format %q", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".msgpack", ".mpk":
		return FormatBundle
	}
	return FormatUnknown
}

// ErrUnknownFormat is returned for payloads in an unsupported encoding.
var ErrUnknownFormat = errors.New("unknown definition format")

// Decode parses one definition. Unknown keys are rejected so typos in
// definition files surface at load time.
func Decode(data []byte, format Format) (Spec, error) {
	var spec Spec
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), &spec)
		if err != nil {
			return Spec{}, err
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return Spec{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&spec); err != nil {
			return Spec{}, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
			return Spec{}, err
		}
	case FormatBundle:
		b, err := DecodeBundle(data)
		if err != nil {
			return Spec{}, err
		}
		if len(b.Definitions) != 1 {
			return Spec{}, fmt.Errorf("bundle holds %d definitions, want 1", len(b.Definitions))
		}
		return b.Definitions[0], nil
	default:
		return Spec{}, ErrUnknownFormat
	}
	return spec, nil
}

// Encode writes one definition in a text format.
func Encode(w io.Writer, spec Spec, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(spec)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(spec)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(spec); err != nil {
			return err
		}
		return enc.Close()
	case FormatBundle:
		return EncodeBundle(w, []Spec{spec})
	}
	return ErrUnknownFormat
}

// BundleVersion is bumped whenever the Spec schema changes incompatibly.
const BundleVersion = 1

// Bundle is the msgpack container produced by "hilite pack".
type Bundle struct {
	Version     int    `msgpack:"version"`
	Definitions []Spec `msgpack:"definitions"`
}

// EncodeBundle writes specs as a msgpack bundle.
func EncodeBundle(w io.Writer, specs []Spec) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(Bundle{Version: BundleVersion, Definitions: specs})
}

// DecodeBundle reads a msgpack bundle and checks its version.
func DecodeBundle(data []byte) (Bundle, error) {
	var b Bundle
	if err := msgpack.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}
	if b.Version != BundleVersion {
		return Bundle{}, fmt.Errorf("bundle version %d, want %d", b.Version, BundleVersion)
	}
	return b, nil
}
