package watchlist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// List is a named group of tickers read from a YAML watchlist document:
//
//	watchlist:
//	  - sym: D05.SI
//	  - name: Banks
//	    watchlist:
//	      - sym: O39.SI
type List struct {
	Name    string
	Tickers []string
}

// LoadYAML reads a YAML file, or every .yaml/.yml file below a directory.
// Lists from a directory are prefixed with the file's relative path.
func LoadYAML(path string) ([]List, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		lists, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for i := range lists {
			if strings.TrimSpace(lists[i].Name) == "" {
				lists[i].Name = base
			}
		}
		return lists, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var all []List
	for _, full := range files {
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, err
		}
		lists, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", full, err)
		}
		rel, err := filepath.Rel(path, full)
		if err != nil {
			rel = filepath.Base(full)
		}
		prefix := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		for i := range lists {
			if strings.TrimSpace(lists[i].Name) == "" {
				lists[i].Name = prefix
			} else if prefix != "" {
				lists[i].Name = prefix + "/" + lists[i].Name
			}
		}
		all = append(all, lists...)
	}
	return all, nil
}

// ParseYAML splits a document into its named groups. Items are either
// maps with a "sym" key or bare ticker strings.
func ParseYAML(data []byte) ([]List, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	node, ok := root["watchlist"]
	if !ok || node == nil {
		return nil, fmt.Errorf("invalid yaml: missing 'watchlist'")
	}

	var lists []List
	var walk func(node any, path []string)
	walk = func(node any, path []string) {
		items, ok := node.([]any)
		if !ok {
			items = []any{node}
		}
		var syms []string
		for _, e := range items {
			if s, ok := symOf(e); ok {
				syms = append(syms, s)
			}
		}
		if len(syms) > 0 {
			lists = append(lists, List{Name: strings.Join(path, "/"), Tickers: dedupe(syms)})
		}
		for _, e := range items {
			g, ok := e.(map[string]any)
			if !ok {
				continue
			}
			child, ok := g["watchlist"]
			if !ok {
				continue
			}
			next := append([]string(nil), path...)
			if name, ok := g["name"].(string); ok && name != "" {
				next = append(next, name)
			}
			walk(child, next)
		}
	}
	walk(node, nil)
	return lists, nil
}

func symOf(v any) (string, bool) {
	switch e := v.(type) {
	case string:
		s := strings.TrimSpace(e)
		return s, s != ""
	case map[string]any:
		if _, group := e["watchlist"]; group {
			return "", false
		}
		sym, ok := e["sym"]
		if !ok || sym == nil {
			return "", false
		}
		s := strings.TrimSpace(fmt.Sprint(sym))
		return s, s != ""
	}
	return "", false
}

// Flatten joins the tickers of every list, first occurrence wins.
func Flatten(lists []List) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l.Tickers...)
	}
	return dedupe(all)
}

type yamlItem struct {
	Sym string `yaml:"sym"`
}

type yamlGroup struct {
	Name      string     `yaml:"name"`
	Watchlist []yamlItem `yaml:"watchlist"`
}

// ExportYAML writes tickers as a watchlist document, nested under a named
// group when name is set.
func ExportYAML(w io.Writer, name string, tickers []string) error {
	items := make([]yamlItem, 0, len(tickers))
	for _, t := range tickers {
		items = append(items, yamlItem{Sym: t})
	}
	var doc any = map[string]any{"watchlist": items}
	if name != "" {
		doc = map[string]any{"watchlist": []yamlGroup{{Name: name, Watchlist: items}}}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
