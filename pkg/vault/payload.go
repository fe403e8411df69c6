package vault

import (
	"encoding/json"
	"path/filepath"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/secrets"
)

const payloadVersion = 1

// Secret is a finding together with the value it located.
type Secret struct {
	secrets.Finding
	Value string
}

// Payload maps source file to placeholder name to secret value. Scoping by
// file keeps identical placeholder names in different files apart. Files
// under the home directory are keyed as ~/rel so the vault opens on a
// machine with another $HOME.
type Payload struct {
	Version int                          `json:"version"`
	Secrets map[string]map[string]string `json:"secrets"`
}

// NewPayload builds a payload from recovered secrets. The same placeholder
// bound to two different values in one file is an integrity error.
func NewPayload(recovered []Secret) (*Payload, error) {
	p := &Payload{Version: payloadVersion, Secrets: make(map[string]map[string]string)}
	for _, s := range recovered {
		key := fileKey(s.File)
		if prev, ok := p.Secrets[key][s.Placeholder]; ok && prev != s.Value {
			return nil, errors.New(errors.ErrPayloadIntegrity, "placeholder bound to two values").
				WithDetail("path", s.File).
				WithDetail("placeholder", s.Placeholder)
		}
		p.put(key, s.Placeholder, s.Value)
	}
	return p, nil
}

// fileKey names file inside the payload.
func fileKey(file string) string {
	home := paths.HomeDir()
	if home == "" || file == home || !paths.IsWithin(filepath.Clean(home), file) {
		return file
	}
	rel, err := filepath.Rel(home, file)
	if err != nil {
		return file
	}
	return "~/" + filepath.ToSlash(rel)
}

func (p *Payload) put(key, name, value string) {
	entries := p.Secrets[key]
	if entries == nil {
		entries = make(map[string]string)
		p.Secrets[key] = entries
	}
	entries[name] = value
}

// Lookup returns the value of placeholder name in file.
func (p *Payload) Lookup(file, name string) (string, bool) {
	v, ok := p.Secrets[fileKey(file)][name]
	return v, ok
}

// Len is the number of stored secrets.
func (p *Payload) Len() int {
	n := 0
	for _, m := range p.Secrets {
		n += len(m)
	}
	return n
}

func (p *Payload) marshal() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode payload")
	}
	return data, nil
}

func unmarshalPayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, errors.ErrPayloadIntegrity, "decrypted payload is not valid")
	}
	if p.Version != payloadVersion {
		return nil, errors.Newf(errors.ErrPayloadIntegrity, "unsupported payload version %d", p.Version)
	}
	if p.Secrets == nil {
		p.Secrets = make(map[string]map[string]string)
	}
	return &p, nil
}
