package snapshot

import (
	"fmt"
	"path"
	"strings"

	internalstrings "github.com/amonks/xtask/internal/strings"
	"github.com/amonks/xtask/internal/validation"
)

// Kind selects how a fixture is built and run.
type Kind string

const (
	// KindBin is a binary fixture under src/bin.
	KindBin Kind = "bin"
	// KindTest is a test-harness fixture under tests.
	KindTest Kind = "test"
)

// Case is one entry in the snapshot catalog.
type Case struct {
	// Name is the stable identifier, also accepted on the command line.
	Name string
	Kind Kind
	// Features are cargo features enabled for both build and run.
	Features []string
	// Target overrides the configured default target when set.
	Target string
}

// Source returns the fixture source path relative to the snapshot tests directory.
func (c Case) Source() string {
	return path.Join(c.dir(), c.Name+".rs")
}

// Golden returns the golden file path relative to the snapshot tests directory.
func (c Case) Golden() string {
	return path.Join(c.dir(), c.Name+".out")
}

func (c Case) dir() string {
	if c.Kind == KindTest {
		return "tests"
	}
	return path.Join("src", "bin")
}

// builtinCases is the closed set of snapshot tests, in run order.
var builtinCases = []Case{
	{Name: "log", Kind: KindBin},
	{Name: "bitflags", Kind: KindBin},
	{Name: "timestamp", Kind: KindBin},
	{Name: "panic", Kind: KindBin},
	{Name: "assert", Kind: KindBin},
	{Name: "assert-eq", Kind: KindBin},
	{Name: "assert-ne", Kind: KindBin},
	{Name: "unwrap", Kind: KindBin},
	{Name: "defmt-test", Kind: KindTest},
	{Name: "hints", Kind: KindBin},
	{Name: "hints_inner", Kind: KindBin},
	{Name: "dbg", Kind: KindBin},
	{Name: "zero_timestamp", Kind: KindBin},
	{Name: "net", Kind: KindBin},
	{Name: "alloc", Kind: KindBin, Features: []string{"alloc"}},
}

// Catalog is an immutable, ordered set of uniquely named cases.
type Catalog struct {
	cases  []Case
	byName map[string]int
}

var defaultCatalog = mustCatalog(builtinCases...)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// NewCatalog builds a catalog from cases, keeping their order.
func NewCatalog(cases ...Case) (*Catalog, error) {
	catalog := &Catalog{
		cases:  make([]Case, 0, len(cases)),
		byName: make(map[string]int, len(cases)),
	}
	for _, c := range cases {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("snapshot case name is required")
		}
		if c.Name != internalstrings.NormalizeLowerTrimSpace(c.Name) {
			return nil, fmt.Errorf("snapshot case name %q must be lowercase without surrounding space", c.Name)
		}
		if c.Kind == "" {
			c.Kind = KindBin
		}
		if c.Kind != KindBin && c.Kind != KindTest {
			return nil, fmt.Errorf("snapshot case %q: invalid kind %q", c.Name, c.Kind)
		}
		if _, ok := catalog.byName[c.Name]; ok {
			return nil, fmt.Errorf("duplicate snapshot case %q", c.Name)
		}
		c.Features = append([]string(nil), c.Features...)
		catalog.byName[c.Name] = len(catalog.cases)
		catalog.cases = append(catalog.cases, c)
	}
	return catalog, nil
}

func mustCatalog(cases ...Case) *Catalog {
	catalog, err := NewCatalog(cases...)
	if err != nil {
		panic(err)
	}
	return catalog
}

// Names returns every case name in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.cases))
	for i, entry := range c.cases {
		names[i] = entry.Name
	}
	return names
}

// Cases returns a copy of every case in catalog order.
func (c *Catalog) Cases() []Case {
	cases := make([]Case, len(c.cases))
	for i, entry := range c.cases {
		entry.Features = append([]string(nil), entry.Features...)
		cases[i] = entry
	}
	return cases
}

// Len returns the number of cases.
func (c *Catalog) Len() int {
	return len(c.cases)
}

// Lookup finds a case by name. Matching ignores case and surrounding space.
func (c *Catalog) Lookup(name string) (Case, error) {
	idx, ok := c.byName[internalstrings.NormalizeLowerTrimSpace(name)]
	if !ok {
		return Case{}, validation.FormatInvalidValueError(ErrUnknownCase, name, c.Names())
	}
	found := c.cases[idx]
	found.Features = append([]string(nil), found.Features...)
	return found, nil
}
