package gallery

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the fixed, ordered record list. It is built once and never
// mutated, so it is safe for concurrent readers.
type Catalog struct {
	records []ImageRecord
	byID    map[int]int
}

func NewCatalog(records []ImageRecord) (*Catalog, error) {
	c := &Catalog{
		records: slices.Clone(records),
		byID:    make(map[int]int, len(records)),
	}
	for i, r := range c.records {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate image id %d", r.ID)
		}
		c.byID[r.ID] = i
	}
	return c, nil
}

type catalogFile struct {
	Images []ImageRecord `yaml:"images"`
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) ([]ImageRecord, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return f.Images, nil
}

// LoadCatalogRecords reads the catalog at path, or the embedded default when
// path is empty.
func LoadCatalogRecords(path string) ([]ImageRecord, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
	}
	return ParseCatalog(data)
}

func (c *Catalog) All() []ImageRecord {
	return slices.Clone(c.records)
}

func (c *Catalog) Len() int {
	return len(c.records)
}

func (c *Catalog) Get(id int) (ImageRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ImageRecord{}, false
	}
	return c.records[i], true
}

func (c *Catalog) Has(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Filter is Filter over the catalog's records.
func (c *Catalog) Filter(cat Category) []ImageRecord {
	return Filter(c.records, cat)
}

// Categories lists the "all" tab followed by every known category that has at
// least one record.
func (c *Catalog) Categories() []CategoryCount {
	counts := make(map[Category]int)
	for _, r := range c.records {
		counts[r.Category]++
	}

	out := []CategoryCount{{Category: CategoryAll, Name: CategoryAll.DisplayName(), Count: len(c.records)}}
	for _, cat := range knownCategories {
		if counts[cat] == 0 {
			continue
		}
		out = append(out, CategoryCount{Category: cat, Name: cat.DisplayName(), Count: counts[cat]})
	}
	return out
}

// Offered reports whether cat is "all" or a category with records in the
// catalog.
func (c *Catalog) Offered(cat Category) bool {
	for _, cc := range c.Categories() {
		if cc.Category == cat {
			return true
		}
	}
	return false
}

// Featured returns up to n featured records for the home page.
func (c *Catalog) Featured(n int) []ImageRecord {
	var out []ImageRecord
	for _, r := range c.records {
		if len(out) == n {
			break
		}
		if r.Featured {
			out = append(out, r)
		}
	}
	return out
}
