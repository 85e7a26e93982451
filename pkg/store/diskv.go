package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/calpage/pkg/engine"
)

// DefaultSession is used when no session name is given.
const DefaultSession = "default"

const sessionSuffix = ".json"

var sessionName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Persistence stores engine snapshots by session name.
type Persistence interface {
	Save(name string, snap engine.Snapshot) error
	Load(name string) (engine.Snapshot, bool, error)
	Delete(name string) error
	Sessions(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 256 * 1024,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func toKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultSession
	}
	if !sessionName.MatchString(name) {
		return "", fmt.Errorf("store: invalid session name %q", name)
	}
	return name + sessionSuffix, nil
}

func fromKey(key string) (string, bool) {
	if !strings.HasSuffix(key, sessionSuffix) {
		return "", false
	}
	return strings.TrimSuffix(key, sessionSuffix), true
}

func (p *persistence) Save(name string, snap engine.Snapshot) error {
	key, err := toKey(name)
	if err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: encode session %q: %w", name, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write session %q: %w", name, err)
	}
	return nil
}

func (p *persistence) Load(name string) (engine.Snapshot, bool, error) {
	key, err := toKey(name)
	if err != nil {
		return engine.Snapshot{}, false, err
	}
	if !p.d.Has(key) {
		return engine.Snapshot{}, false, nil
	}
	// Other processes rewrite session files, so reads skip the diskv cache.
	r, err := p.d.ReadStream(key, true)
	if err != nil {
		return engine.Snapshot{}, false, fmt.Errorf("store: read session %q: %w", name, err)
	}
	defer r.Close()
	var snap engine.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return engine.Snapshot{}, false, fmt.Errorf("store: decode session %q: %w", name, err)
	}
	return snap, true, nil
}

func (p *persistence) Delete(name string) error {
	key, err := toKey(name)
	if err != nil {
		return err
	}
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

func (p *persistence) Sessions(ctx context.Context) []string {
	var names []string
	for key := range p.d.Keys(ctx.Done()) {
		if name, ok := fromKey(key); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (p *persistence) ensureBase() error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	return nil
}

// sessionForPath returns the session a file in the store belongs to.
func (p *persistence) sessionForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." || strings.Contains(rel, string(os.PathSeparator)) {
		return ""
	}
	name, ok := fromKey(rel)
	if !ok {
		return ""
	}
	return name
}
