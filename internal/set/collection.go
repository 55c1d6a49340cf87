package set

import "github.com/boshu2/fuzzy/internal/types"

// Collection is an insertion-ordered group of fuzzy sets loaded from one
// definitions source.
type Collection struct {
	sets []*Set
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends a set, preserving insertion order. Names are not deduplicated;
// later cached degrees for a duplicated name overwrite earlier ones in
// MembershipValues.
func (c *Collection) Add(s *Set) {
	c.sets = append(c.sets, s)
}

// All returns every set in insertion order.
func (c *Collection) All() []*Set {
	return c.sets
}

// Len returns the number of sets.
func (c *Collection) Len() int {
	return len(c.sets)
}

// Inputs returns the input sets in insertion order.
func (c *Collection) Inputs() []*Set {
	return c.byRole(RoleInput)
}

// Outputs returns the output sets in insertion order.
func (c *Collection) Outputs() []*Set {
	return c.byRole(RoleOutput)
}

func (c *Collection) byRole(role Role) []*Set {
	var out []*Set
	for _, s := range c.sets {
		if s.Role == role {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the first set with the given name, or nil.
func (c *Collection) Find(name string) *Set {
	for _, s := range c.sets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// MembershipValues merges the cached fuzzified degrees of all input sets into
// one map from set name to degree. Sets that were never fuzzified contribute
// nothing.
func (c *Collection) MembershipValues() map[string]float64 {
	values := make(map[string]float64)
	for _, s := range c.Inputs() {
		for name, degree := range s.Degrees() {
			values[name] = degree
		}
	}
	return values
}

// Validate runs per-set definition checks over the whole collection.
func (c *Collection) Validate() []types.Diagnostic {
	var diags []types.Diagnostic
	for _, s := range c.sets {
		diags = append(diags, s.Validate()...)
	}
	return diags
}
