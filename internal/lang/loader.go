package lang

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestName is the optional per-directory file describing each language.
	ManifestName = "languages.yaml"

	tableFilePrefix = "nonbreaking_prefix."
)

type manifest struct {
	Languages map[string]manifestEntry `yaml:"languages"`
}

type manifestEntry struct {
	Strategy        string `yaml:"strategy"`
	HyphenSplitting *bool  `yaml:"hyphen_splitting"`
	// Table names another language whose prefix file is shared ("cz" -> "cs").
	Table string `yaml:"table"`
}

// LoadDir builds a Registry from a directory laid out like the Moses
// share/nonbreaking_prefixes folder. See LoadFS.
func LoadDir(dir string) (*Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("rule table dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("rule table dir %q is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS builds a Registry from nonbreaking_prefix.<code> files at the root of
// fsys and an optional languages.yaml manifest. A language appears in the
// registry when it has a table file or a manifest entry; strategy and hyphen
// policy default to DefaultStrategy and true.
func LoadFS(fsys fs.FS) (*Registry, error) {
	tables, err := readTables(fsys)
	if err != nil {
		return nil, err
	}

	m, err := readManifest(fsys)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(tables)+len(m.Languages))
	for code := range tables {
		codes = append(codes, code)
	}
	for code := range m.Languages {
		code = normalizeCode(code)
		if _, ok := tables[code]; !ok {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)
	codes = slices.Compact(codes)

	entries := make(map[string]manifestEntry, len(m.Languages))
	for code, e := range m.Languages {
		entries[normalizeCode(code)] = e
	}

	var (
		profiles []*Profile
		errs     error
	)
	for _, code := range codes {
		p, err := buildFromEntry(code, entries[code], tables)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		profiles = append(profiles, p)
	}
	if errs != nil {
		return nil, errs
	}

	return NewRegistry(profiles...)
}

func buildFromEntry(code string, e manifestEntry, tables map[string][]Prefix) (*Profile, error) {
	strategy := DefaultStrategy(code)
	if e.Strategy != "" {
		s, err := ParseStrategy(e.Strategy)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", code, err)
		}
		strategy = s
	}

	hyphens := true
	if e.HyphenSplitting != nil {
		hyphens = *e.HyphenSplitting
	}

	table := code
	if e.Table != "" {
		table = normalizeCode(e.Table)
		if _, ok := tables[table]; !ok {
			return nil, fmt.Errorf("%w: %s: shared table %q not found", ErrInvalidRuleTable, code, e.Table)
		}
	}

	return BuildProfile(code, tables[table], strategy, hyphens)
}

func readTables(fsys fs.FS) (map[string][]Prefix, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list rule tables: %w", err)
	}

	tables := make(map[string][]Prefix)
	var errs error
	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || !strings.HasPrefix(name, tableFilePrefix) {
			continue
		}
		code := normalizeCode(strings.TrimPrefix(name, tableFilePrefix))

		f, err := fsys.Open(name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("open %s: %w", name, err))
			continue
		}
		prefixes, err := ParsePrefixTable(f)
		_ = f.Close()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		tables[code] = prefixes
	}
	if errs != nil {
		return nil, errs
	}
	return tables, nil
}

func readManifest(fsys fs.FS) (manifest, error) {
	data, err := fs.ReadFile(fsys, ManifestName)
	if errors.Is(err, fs.ErrNotExist) {
		return manifest{}, nil
	}
	if err != nil {
		return manifest{}, fmt.Errorf("read %s: %w", ManifestName, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return manifest{}, fmt.Errorf("%w: decode %s: %v", ErrInvalidRuleTable, ManifestName, err)
	}
	return m, nil
}
