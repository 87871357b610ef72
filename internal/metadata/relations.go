package metadata

import (
	"fmt"
	"strings"

	"pault.ag/go/debian/dependency"
)

// ParseRelations parses a relation field such as
// "libfoo (>= 1.0) | libbar, baz [amd64]" into its relations
func ParseRelations(value string) ([]dependency.Relation, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\n", " "))
	if value == "" {
		return nil, nil
	}

	dep, err := dependency.Parse(value)
	if err != nil {
		return nil, err
	}

	for _, rel := range dep.Relations {
		for _, possi := range rel.Possibilities {
			if len(possi.StageSets) > 0 {
				return nil, fmt.Errorf("build profiles are not supported in %q", possi.Name)
			}
		}
	}

	return dep.Relations, nil
}

// FormatPossibility renders a single alternative in canonical form
func FormatPossibility(p dependency.Possibility) string {
	if p.Substvar {
		return "${" + p.Name + "}"
	}

	var b strings.Builder
	b.WriteString(p.Name)

	if p.Arch != nil {
		b.WriteString(":")
		b.WriteString(p.Arch.String())
	}

	if p.Version != nil {
		fmt.Fprintf(&b, " (%s %s)", p.Version.Operator, p.Version.Number)
	}

	if p.Architectures != nil && len(p.Architectures.Architectures) > 0 {
		arches := make([]string, 0, len(p.Architectures.Architectures))
		for i := range p.Architectures.Architectures {
			arch := p.Architectures.Architectures[i].String()
			if p.Architectures.Not {
				arch = "!" + arch
			}
			arches = append(arches, arch)
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(arches, " "))
	}

	return b.String()
}

// FormatRelation renders an OR group, alternatives joined with " | "
func FormatRelation(r dependency.Relation) string {
	parts := make([]string, len(r.Possibilities))
	for i, possi := range r.Possibilities {
		parts[i] = FormatPossibility(possi)
	}
	return strings.Join(parts, " | ")
}

// FormatRelations renders relations joined with ", "
func FormatRelations(rels []dependency.Relation) string {
	parts := make([]string, len(rels))
	for i, rel := range rels {
		parts[i] = FormatRelation(rel)
	}
	return strings.Join(parts, ", ")
}

// RelationSet is an ordered set of relations. Two relations are the same
// when their parsed forms are equal, so formatting differences in the source
// text do not produce duplicates.
type RelationSet struct {
	seen      map[string]struct{}
	relations []dependency.Relation
}

// NewRelationSet creates an empty set
func NewRelationSet() *RelationSet {
	return &RelationSet{seen: make(map[string]struct{})}
}

// Add appends relations not yet in the set, keeping first-seen order. It
// returns the number of relations actually added.
func (s *RelationSet) Add(rels ...dependency.Relation) int {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}

	added := 0
	for _, rel := range rels {
		key := FormatRelation(rel)
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.relations = append(s.relations, rel)
		added++
	}
	return added
}

// Len returns the number of distinct relations
func (s *RelationSet) Len() int {
	return len(s.relations)
}

// String renders the set as a relation field value
func (s *RelationSet) String() string {
	return FormatRelations(s.relations)
}
