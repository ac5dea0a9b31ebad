package version

import (
	"github.com/Masterminds/semver/v3"
)

type CompareResult struct {
	Comparable bool
	Result     int // -1, 0, 1 (only when comparable)
}

type Parser interface {
	Name() string
	CanParse(version string) bool
	Parse(version string) (interface{}, error)
	Compare(a, b interface{}) int
}

// Comparator tries each registered parser in order and compares two
// version strings only when the same parser accepts both.
type Comparator struct {
	parsers []Parser
}

func NewComparator() *Comparator {
	return &Comparator{
		parsers: []Parser{
			&StrictParser{},  // 1: full SemVer grammar
			&LenientParser{}, // 2: fallback 3-component grammar
		},
	}
}

func (c *Comparator) AddParser(p Parser) {
	c.parsers = append(c.parsers, p)
}

func (c *Comparator) Compare(v1, v2 string) CompareResult {
	parsed1, p1 := c.parseVersion(v1)
	parsed2, p2 := c.parseVersion(v2)

	// must use the same type of parser
	if p1 != nil && p1 == p2 {
		return CompareResult{
			Comparable: true,
			Result:     p1.Compare(parsed1, parsed2),
		}
	}
	return CompareResult{Comparable: false}
}

func (c *Comparator) parseVersion(v string) (interface{}, Parser) {
	for _, p := range c.parsers {
		if p.CanParse(v) {
			if parsed, err := p.Parse(v); err == nil {
				return parsed, p
			}
		}
	}
	return nil, nil
}

// StrictParser accepts canonical semantic versions, including
// prerelease and metadata parts our own grammar does not model.
type StrictParser struct{}

func (p *StrictParser) Name() string {
	return "StrictParser"
}

func (p *StrictParser) CanParse(v string) bool {
	_, err := semver.StrictNewVersion(v)
	return err == nil
}

func (p *StrictParser) Parse(v string) (interface{}, error) {
	return semver.StrictNewVersion(v)
}

func (p *StrictParser) Compare(a, b interface{}) int {
	verA := a.(*semver.Version)
	verB := b.(*semver.Version)
	return verA.Compare(verB)
}

// LenientParser accepts anything the Parse function in this package
// accepts, which is nearly everything. It is registered last.
type LenientParser struct{}

func (p *LenientParser) Name() string {
	return "LenientParser"
}

func (p *LenientParser) CanParse(v string) bool {
	_, err := Parse(v)
	return err == nil
}

func (p *LenientParser) Parse(v string) (interface{}, error) {
	ver, err := Parse(v)
	if err != nil {
		return nil, err
	}
	return ver, nil
}

func (p *LenientParser) Compare(a, b interface{}) int {
	verA := a.(Version)
	verB := b.(Version)
	return Compare(verA, verB)
}
