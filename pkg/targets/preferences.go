package targets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dd0wney/strongties/pkg/graph"
)

// Preferences holds the companies and roles a user wants flagged. Both
// lists are deduplicated on insert and keep insertion order for output.
// A nil *Preferences matches nothing.
type Preferences struct {
	companies []string
	roles     []string

	companySet map[string]struct{}
	roleSet    map[string]struct{}
}

// document is the on-disk JSON shape.
type document struct {
	Companies []string `json:"companies" validate:"dive,notblank"`
	Roles     []string `json:"roles" validate:"dive,notblank"`
}

// New creates preferences from the given lists, dropping duplicates.
func New(companies, roles []string) *Preferences {
	p := &Preferences{
		companySet: make(map[string]struct{}),
		roleSet:    make(map[string]struct{}),
	}
	for _, c := range companies {
		p.AddCompany(c)
	}
	for _, r := range roles {
		p.AddRole(r)
	}
	return p
}

// AddCompany adds a company if it is not already present.
func (p *Preferences) AddCompany(company string) {
	p.companies = addUnique(p.companies, &p.companySet, company)
}

// AddRole adds a role if it is not already present.
func (p *Preferences) AddRole(role string) {
	p.roles = addUnique(p.roles, &p.roleSet, role)
}

func addUnique(list []string, set *map[string]struct{}, v string) []string {
	if *set == nil {
		*set = make(map[string]struct{})
	}
	if _, ok := (*set)[v]; ok {
		return list
	}
	(*set)[v] = struct{}{}
	return append(list, v)
}

// Companies returns a copy of the company list in insertion order.
func (p *Preferences) Companies() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.companies...)
}

// Roles returns a copy of the role list in insertion order.
func (p *Preferences) Roles() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.roles...)
}

// Empty reports whether there is nothing to match against.
func (p *Preferences) Empty() bool {
	return p == nil || (len(p.companies) == 0 && len(p.roles) == 0)
}

// Matches reports whether the node's company is a target company or its
// role is a target role. Comparison is exact and case-sensitive.
func (p *Preferences) Matches(attrs *graph.NodeAttributes) bool {
	if p == nil || attrs == nil {
		return false
	}
	if company, ok := attrs.Get(graph.AttrCompany); ok {
		if _, hit := p.companySet[company]; hit {
			return true
		}
	}
	if role, ok := attrs.Get(graph.AttrRole); ok {
		if _, hit := p.roleSet[role]; hit {
			return true
		}
	}
	return false
}

// ToMap returns the preferences as {"companies": [...], "roles": [...]}.
func (p *Preferences) ToMap() map[string][]string {
	return map[string][]string{
		"companies": nonNil(p.Companies()),
		"roles":     nonNil(p.Roles()),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// MarshalJSON implements json.Marshaler.
func (p *Preferences) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		Companies: nonNil(p.Companies()),
		Roles:     nonNil(p.Roles()),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Missing keys mean empty lists.
func (p *Preferences) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*p = *New(doc.Companies, doc.Roles)
	return nil
}

// Save writes the preferences as indented JSON, creating parent
// directories as needed.
func (p *Preferences) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode target preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write target preferences %s: %w", path, err)
	}
	return nil
}
