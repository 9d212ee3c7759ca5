package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/docprotocol/pkg/core"
)

// SnapshotVersion is written into every snapshot file.
const SnapshotVersion = 1

// snapshot is the on-disk envelope. Protocols are kept newest first.
type snapshot struct {
	Version   int             `json:"version" yaml:"version"`
	Protocols []core.Protocol `json:"protocols" yaml:"protocols"`
}

// Serializer defines how to read and write a snapshot file format.
type Serializer interface {
	// Decode parses snapshot bytes. Empty input yields no records.
	Decode(data []byte) ([]core.Protocol, error)
	// Encode streams the records to w.
	Encode(w io.Writer, records []core.Protocol) error
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": JSONSerializer{},
		".yaml": YAMLSerializer{},
		".yml":  YAMLSerializer{},
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON snapshots.
type JSONSerializer struct{}

func (JSONSerializer) Decode(data []byte) ([]core.Protocol, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if err := checkVersion(s.Version); err != nil {
		return nil, err
	}
	return s.Protocols, nil
}

func (JSONSerializer) Encode(w io.Writer, records []core.Protocol) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot{Version: SnapshotVersion, Protocols: nonNil(records)})
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML snapshots.
type YAMLSerializer struct{}

func (YAMLSerializer) Decode(data []byte) ([]core.Protocol, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var s snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if err := checkVersion(s.Version); err != nil {
		return nil, err
	}
	return s.Protocols, nil
}

func (YAMLSerializer) Encode(w io.Writer, records []core.Protocol) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snapshot{Version: SnapshotVersion, Protocols: nonNil(records)}); err != nil {
		return err
	}
	return enc.Close()
}

func checkVersion(v int) error {
	if v != 0 && v != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", v)
	}
	return nil
}

func nonNil(records []core.Protocol) []core.Protocol {
	if records == nil {
		return []core.Protocol{}
	}
	return records
}
