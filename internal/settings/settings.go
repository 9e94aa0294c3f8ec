// Package settings owns the catalog's reloadable configuration document.
//
// The document is YAML with two sections, plots and filters. Missing keys are
// filled from Defaults and written back on first load without touching values
// or comments the operator already has. Reload re-reads the file on demand and
// keeps the previous values when the new document cannot be used.
//
// Flags also accept the YAML 1.1 spellings yes/no and on/off, unquoted, as
// Bukkit configuration files do.
package settings

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks documents that parse but do not match the schema.
var ErrInvalid = errors.New("invalid settings document")

//go:embed schema.json
var schemaJSON string

// Settings is an immutable snapshot of the configuration flags.
type Settings struct {
	ShowCustomPlotNames bool
	RequireTownOpen     bool
	RequireTownPublic   bool
	RequireAffordable   bool
	ResidentialOnly     bool
}

// Defaults returns the values used for keys the document does not set.
func Defaults() Settings {
	return Settings{
		ShowCustomPlotNames: true,
		RequireTownOpen:     true,
		RequireTownPublic:   true,
		RequireAffordable:   false,
		ResidentialOnly:     false,
	}
}

type defaultKey struct {
	section string
	key     string
	value   func(Settings) bool
}

var defaultKeys = []defaultKey{
	{"plots", "show-custom-plot-name", func(s Settings) bool { return s.ShowCustomPlotNames }},
	{"filters", "require-town-open", func(s Settings) bool { return s.RequireTownOpen }},
	{"filters", "require-town-public", func(s Settings) bool { return s.RequireTownPublic }},
	{"filters", "require-affordable", func(s Settings) bool { return s.RequireAffordable }},
	{"filters", "residential-only", func(s Settings) bool { return s.ResidentialOnly }},
}

type document struct {
	Plots struct {
		ShowCustomPlotName *bool `yaml:"show-custom-plot-name"`
	} `yaml:"plots"`
	Filters struct {
		RequireTownOpen   *bool `yaml:"require-town-open"`
		RequireTownPublic *bool `yaml:"require-town-public"`
		RequireAffordable *bool `yaml:"require-affordable"`
		ResidentialOnly   *bool `yaml:"residential-only"`
	} `yaml:"filters"`
}

func (d document) settings() Settings {
	s := Defaults()
	pick := func(v *bool, fallback bool) bool {
		if v == nil {
			return fallback
		}
		return *v
	}
	s.ShowCustomPlotNames = pick(d.Plots.ShowCustomPlotName, s.ShowCustomPlotNames)
	s.RequireTownOpen = pick(d.Filters.RequireTownOpen, s.RequireTownOpen)
	s.RequireTownPublic = pick(d.Filters.RequireTownPublic, s.RequireTownPublic)
	s.RequireAffordable = pick(d.Filters.RequireAffordable, s.RequireAffordable)
	s.ResidentialOnly = pick(d.Filters.ResidentialOnly, s.ResidentialOnly)
	return s
}

// Manager loads and reloads the settings file. It is owned by the app and
// passed to consumers; nothing in the module reads settings globally.
type Manager struct {
	path   string
	schema *jsonschema.Schema

	mu      sync.RWMutex
	current Settings
}

// NewManager opens the settings file at path, creating it from defaults when
// absent and merging any missing default keys into an existing file.
func NewManager(path string) (*Manager, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("settings path is empty")
	}
	schema, err := jsonschema.CompileString("settings.schema.json", schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile settings schema: %w", err)
	}
	m := &Manager{path: path, schema: schema, current: Defaults()}
	if err := m.init(); err != nil {
		return nil, err
	}
	return m, nil
}

// Path returns the settings file location.
func (m *Manager) Path() string {
	return m.path
}

// Current returns the active settings.
func (m *Manager) Current() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Reload re-reads the file. On error the previous settings stay active.
func (m *Manager) Reload() error {
	raw, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	doc, err := parseNode(raw)
	if err != nil {
		return err
	}
	mergeDefaults(doc, Defaults())
	next, err := m.decode(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.current = next
	m.mu.Unlock()
	return nil
}

func (m *Manager) init() error {
	raw, err := os.ReadFile(m.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read settings: %w", err)
	}
	doc, err := parseNode(raw)
	if err != nil {
		return err
	}
	if mergeDefaults(doc, Defaults()) {
		if err := writeNode(m.path, doc); err != nil {
			return err
		}
	}
	next, err := m.decode(doc)
	if err != nil {
		return err
	}
	m.current = next
	return nil
}

func (m *Manager) decode(doc *yaml.Node) (Settings, error) {
	normalizeBools(doc)
	var generic interface{}
	if err := doc.Decode(&generic); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if generic == nil {
		generic = map[string]interface{}{}
	}
	// the schema validator expects encoding/json shaped values
	buf, err := json.Marshal(generic)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var normalized interface{}
	if err := json.Unmarshal(buf, &normalized); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := m.schema.Validate(normalized); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var d document
	if err := doc.Decode(&d); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return d.settings(), nil
}

func parseNode(raw []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalid)
	}
	return &doc, nil
}

// mergeDefaults adds missing sections and keys. Existing values, including
// ones of the wrong type, are left for validation to report.
func mergeDefaults(doc *yaml.Node, defaults Settings) bool {
	root := doc.Content[0]
	changed := false
	for _, d := range defaultKeys {
		section := mappingValue(root, d.section)
		if section == nil {
			section = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			root.Content = append(root.Content, scalar("!!str", d.section), section)
			changed = true
		}
		// "plots:" with every key removed parses as null.
		if section.Kind == yaml.ScalarNode && section.ShortTag() == "!!null" {
			*section = yaml.Node{
				Kind:        yaml.MappingNode,
				Tag:         "!!map",
				HeadComment: section.HeadComment,
				LineComment: section.LineComment,
				FootComment: section.FootComment,
			}
			changed = true
		}
		if section.Kind != yaml.MappingNode {
			continue
		}
		if mappingValue(section, d.key) != nil {
			continue
		}
		section.Content = append(section.Content,
			scalar("!!str", d.key),
			scalar("!!bool", strconv.FormatBool(d.value(defaults))),
		)
		changed = true
	}
	return changed
}

// normalizeBools rewrites unquoted YAML 1.1 booleans under known keys into
// canonical !!bool scalars. Quoted strings are left for validation to reject.
func normalizeBools(doc *yaml.Node) {
	root := doc.Content[0]
	for _, d := range defaultKeys {
		v := mappingValue(mappingValue(root, d.section), d.key)
		if v == nil || v.Kind != yaml.ScalarNode || v.Style != 0 || v.ShortTag() != "!!str" {
			continue
		}
		switch strings.ToLower(v.Value) {
		case "yes", "on":
			v.Tag, v.Value = "!!bool", "true"
		case "no", "off":
			v.Tag, v.Value = "!!bool", "false"
		}
	}
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func writeNode(path string, doc *yaml.Node) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
