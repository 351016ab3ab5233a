package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/gosimple/slug"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shieldtechhub/droidcheck/data/profiles"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"
)

const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var ProfileFormats = []string{FormatTOML, FormatYAML, FormatJSON}

const (
	DefaultTitle         = "Shield Kids"
	DefaultPackagePrefix = "package "
	DefaultTODOPattern   = `(?i)//[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]*TODO`
)

type StructureProfile struct {
	Paths    []string `json:"paths" toml:"paths"`
	Severity Severity `json:"severity,omitempty" toml:"severity"`
}

type ManifestProfile struct {
	Path               string   `json:"path" toml:"path"`
	Permissions        []string `json:"permissions" toml:"permissions"`
	PermissionSeverity Severity `json:"permissionseverity,omitempty" toml:"permissionseverity"`
	Components         []string `json:"components" toml:"components"`
	ComponentSeverity  Severity `json:"componentseverity,omitempty" toml:"componentseverity"`
}

type KeyFile struct {
	ID          string `json:"id,omitempty" toml:"id"`
	Path        string `json:"path" toml:"path"`
	Description string `json:"description" toml:"description"`
}

type SourcesProfile struct {
	Dir             string     `json:"dir" toml:"dir"`
	PackagePrefix   string     `json:"packageprefix,omitempty" toml:"packageprefix"`
	TODOPattern     string     `json:"todopattern,omitempty" toml:"todopattern"`
	MissingSeverity Severity   `json:"missingseverity,omitempty" toml:"missingseverity"`
	PackageSeverity Severity   `json:"packageseverity,omitempty" toml:"packageseverity"`
	TODOSeverity    Severity   `json:"todoseverity,omitempty" toml:"todoseverity"`
	ReadSeverity    Severity   `json:"readseverity,omitempty" toml:"readseverity"`
	Files           []*KeyFile `json:"files" toml:"files"`

	todoRegexp *regexp.Regexp
}

type ResourcesProfile struct {
	Dir      string   `json:"dir" toml:"dir"`
	Paths    []string `json:"paths" toml:"paths"`
	Severity Severity `json:"severity,omitempty" toml:"severity"`
}

type DependenciesProfile struct {
	Path     string   `json:"path" toml:"path"`
	Names    []string `json:"names" toml:"names"`
	Severity Severity `json:"severity,omitempty" toml:"severity"`
}

// Profile describes what a compliant project has to contain. A missing
// section disables the corresponding phase.
type Profile struct {
	Title        string               `json:"title,omitempty" toml:"title"`
	Structure    *StructureProfile    `json:"structure,omitempty" toml:"structure"`
	Manifest     *ManifestProfile     `json:"manifest,omitempty" toml:"manifest"`
	Sources      *SourcesProfile      `json:"sources,omitempty" toml:"sources"`
	Resources    *ResourcesProfile    `json:"resources,omitempty" toml:"resources"`
	Dependencies *DependenciesProfile `json:"dependencies,omitempty" toml:"dependencies"`
}

// FormatFromFilename maps a file extension to one of ProfileFormats.
func FormatFromFilename(fname string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fname)), ".")
	if ext == "yml" {
		ext = FormatYAML
	}
	if !slices.Contains(ProfileFormats, ext) {
		return "", errors.Errorf("unknown file extension in '%s' only .json, .toml and .yaml supported", fname)
	}
	return ext, nil
}

func DefaultProfile() (*Profile, error) {
	p, err := LoadProfile(profiles.DefaultProfile, FormatTOML)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load embedded default profile")
	}
	return p, nil
}

func LoadProfileFile(fname string) (*Profile, error) {
	format, err := FormatFromFilename(fname)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read profile '%s'", fname)
	}
	p, err := LoadProfile(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load profile '%s'", fname)
	}
	return p, nil
}

// LoadProfile decodes, schema-validates and normalizes a profile document.
func LoadProfile(data []byte, format string) (*Profile, error) {
	var raw any
	switch format {
	case FormatTOML:
		var m = map[string]any{}
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, errors.Wrap(err, "cannot decode toml profile")
		}
		raw = m
	case FormatYAML:
		var m any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(err, "cannot decode yaml profile")
		}
		var err error
		if raw, err = toStringKeys(m); err != nil {
			return nil, errors.Wrap(err, "cannot convert map[any]any to map[string]any")
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "cannot decode json profile")
		}
	default:
		return nil, errors.Errorf("unknown profile format '%s'", format)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal profile to json")
	}
	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal profile json")
	}
	schema, err := jsonschema.CompileString(profiles.ProfileSchemaURL, string(profiles.ProfileSchema))
	if err != nil {
		return nil, errors.Wrap(err, "cannot compile profile schema")
	}
	if err := schema.Validate(doc); err != nil {
		return nil, errors.Wrap(err, "invalid profile")
	}

	p := &Profile{}
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, errors.Wrap(err, "cannot decode profile")
	}
	if err := p.normalize(); err != nil {
		return nil, errors.WithStack(err)
	}
	return p, nil
}

func (p *Profile) normalize() error {
	var err error
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if s := p.Structure; s != nil {
		if s.Paths, err = cleanPaths(s.Paths); err != nil {
			return errors.Wrap(err, "structure")
		}
		if s.Severity, err = severityOr(s.Severity, SeverityError); err != nil {
			return errors.Wrap(err, "structure")
		}
	}
	if m := p.Manifest; m != nil {
		if m.Path, err = cleanPath(m.Path); err != nil {
			return errors.Wrap(err, "manifest")
		}
		if m.PermissionSeverity, err = severityOr(m.PermissionSeverity, SeverityWarning); err != nil {
			return errors.Wrap(err, "manifest")
		}
		if m.ComponentSeverity, err = severityOr(m.ComponentSeverity, SeverityError); err != nil {
			return errors.Wrap(err, "manifest")
		}
	}
	if s := p.Sources; s != nil {
		if s.Dir, err = cleanPath(s.Dir); err != nil {
			return errors.Wrap(err, "sources")
		}
		if s.PackagePrefix == "" {
			s.PackagePrefix = DefaultPackagePrefix
		}
		if s.TODOPattern == "" {
			s.TODOPattern = DefaultTODOPattern
		}
		if s.todoRegexp, err = regexp.Compile(s.TODOPattern); err != nil {
			return errors.Wrapf(err, "sources: invalid todo pattern '%s'", s.TODOPattern)
		}
		for _, sev := range []struct {
			target *Severity
			def    Severity
		}{
			{&s.MissingSeverity, SeverityError},
			{&s.PackageSeverity, SeverityWarning},
			{&s.TODOSeverity, SeverityWarning},
			{&s.ReadSeverity, SeverityWarning},
		} {
			if *sev.target, err = severityOr(*sev.target, sev.def); err != nil {
				return errors.Wrap(err, "sources")
			}
		}
		for _, kf := range s.Files {
			if kf.Path, err = cleanPath(kf.Path); err != nil {
				return errors.Wrapf(err, "sources: file '%s'", kf.Description)
			}
			if kf.ID == "" {
				kf.ID = slug.Make(kf.Description)
			}
		}
	}
	if r := p.Resources; r != nil {
		if r.Dir, err = cleanPath(r.Dir); err != nil {
			return errors.Wrap(err, "resources")
		}
		if r.Paths, err = cleanPaths(r.Paths); err != nil {
			return errors.Wrap(err, "resources")
		}
		if r.Severity, err = severityOr(r.Severity, SeverityWarning); err != nil {
			return errors.Wrap(err, "resources")
		}
	}
	if d := p.Dependencies; d != nil {
		if d.Path, err = cleanPath(d.Path); err != nil {
			return errors.Wrap(err, "dependencies")
		}
		if d.Severity, err = severityOr(d.Severity, SeverityWarning); err != nil {
			return errors.Wrap(err, "dependencies")
		}
	}
	return nil
}

// Encode writes the profile as toml.
func (p *Profile) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "    "
	if err := enc.Encode(p); err != nil {
		return errors.Wrap(err, "cannot encode profile")
	}
	return nil
}

func severityOr(sev, def Severity) (Severity, error) {
	if sev == "" {
		return def, nil
	}
	return ParseSeverity(string(sev))
}

func cleanPath(p string) (string, error) {
	cleaned := path.Clean(filepath.ToSlash(strings.TrimSpace(p)))
	if !fs.ValidPath(cleaned) {
		return "", errors.Errorf("invalid path '%s'", p)
	}
	return cleaned, nil
}

func cleanPaths(ps []string) ([]string, error) {
	result := make([]string, 0, len(ps))
	for _, p := range ps {
		cleaned, err := cleanPath(p)
		if err != nil {
			return nil, err
		}
		result = append(result, cleaned)
	}
	return result, nil
}

func toStringKeys(val any) (any, error) {
	var err error
	switch val := val.(type) {
	case map[any]any:
		m := make(map[string]any)
		for k, v := range val {
			ks, ok := k.(string)
			if !ok {
				return nil, errors.New(fmt.Sprintf("found non-string key '%v'", k))
			}
			m[ks], err = toStringKeys(v)
			if err != nil {
				return nil, err
			}
		}
		return m, nil
	case []any:
		var l = make([]any, len(val))
		for i, v := range val {
			l[i], err = toStringKeys(v)
			if err != nil {
				return nil, err
			}
		}
		return l, nil
	default:
		return val, nil
	}
}
