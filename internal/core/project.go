package core

import (
	"fmt"
	"regexp"
)

// Project tracks the stores that belong to one simulation and owns name
// assignment for them. A store keeps an explicit back-reference to its
// project, set at construction; nothing is discovered through a
// process-wide registry.
type Project struct {
	objects []*Domain
	seq     map[string]int
}

// NewProject constructs an empty project.
func NewProject() *Project {
	return &Project{seq: make(map[string]int)}
}

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// GenerateName produces the next unique name for the given prefix,
// e.g. "net_01", "net_02".
func (p *Project) GenerateName(prefix string) string {
	if prefix == "" {
		prefix = "obj"
	}
	for {
		p.seq[prefix]++
		name := fmt.Sprintf("%s_%02d", prefix, p.seq[prefix])
		if err := p.ValidateName(name); err == nil {
			return name
		}
	}
}

// ValidateName rejects malformed names and names already taken by a
// sibling object.
func (p *Project) ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid object name %q", name)
	}
	for _, obj := range p.objects {
		if obj.Name() == name {
			return fmt.Errorf("name %q already in use", name)
		}
	}
	return nil
}

// register adds a store to the project. Called from NewDomain.
func (p *Project) register(d *Domain) {
	p.objects = append(p.objects, d)
}

// Objects returns the registered stores in registration order.
func (p *Project) Objects() []*Domain {
	return append([]*Domain(nil), p.objects...)
}

// Find returns the registered store with the given name.
func (p *Project) Find(name string) (*Domain, bool) {
	for _, obj := range p.objects {
		if obj.Name() == name {
			return obj, true
		}
	}
	return nil, false
}
