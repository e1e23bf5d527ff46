// Package taxonomy implements the two-level tag classification used to group
// benchmark cases. A taxonomy is loaded once per evaluation run and is
// immutable afterwards; cases may only reference tags it contains.
package taxonomy

import (
	"sort"

	"github.com/unieval-ai/unieval/api"
)

// Taxonomy is the loaded, immutable tag classification.
// All accessors are pure lookups.
type Taxonomy struct {
	tags     []api.Tag
	parent   map[string]string   // level2 id -> level1 id
	children map[string][]string // level1 id -> sorted level2 ids
}

// Load validates spec and builds a Taxonomy. It fails with
// *api.MalformedTaxonomyError when a level-2 tag lacks a level-1 parent,
// when a level-2 id repeats, or when an id is reused across levels.
func Load(spec []api.Tag) (*Taxonomy, error) {
	t := &Taxonomy{
		tags:     make([]api.Tag, 0, len(spec)),
		parent:   make(map[string]string, len(spec)),
		children: make(map[string][]string),
	}

	level1Seen := make(map[string]bool)
	for _, tag := range spec {
		if tag.Level2 == "" {
			return nil, &api.MalformedTaxonomyError{Reason: "empty level-2 id", TagID: tag.Level1}
		}
		if tag.Level1 == "" {
			return nil, &api.MalformedTaxonomyError{Reason: "level-2 tag has no level-1 parent", TagID: tag.Level2}
		}
		if _, dup := t.parent[tag.Level2]; dup {
			return nil, &api.MalformedTaxonomyError{Reason: "duplicate level-2 id", TagID: tag.Level2}
		}
		if tag.Level1 == tag.Level2 {
			return nil, &api.MalformedTaxonomyError{Reason: "id used at both levels", TagID: tag.Level2}
		}
		if level1Seen[tag.Level2] {
			return nil, &api.MalformedTaxonomyError{Reason: "id used at both levels", TagID: tag.Level2}
		}
		if _, clash := t.parent[tag.Level1]; clash {
			return nil, &api.MalformedTaxonomyError{Reason: "id used at both levels", TagID: tag.Level1}
		}

		level1Seen[tag.Level1] = true
		t.parent[tag.Level2] = tag.Level1
		t.children[tag.Level1] = append(t.children[tag.Level1], tag.Level2)
		t.tags = append(t.tags, tag)
	}

	for _, ids := range t.children {
		sort.Strings(ids)
	}
	return t, nil
}

// ParentOf returns the level-1 parent of a level-2 tag id.
func (t *Taxonomy) ParentOf(level2 string) (string, bool) {
	p, ok := t.parent[level2]
	return p, ok
}

// Level2Under returns the sorted level-2 ids grouped under a level-1 id.
func (t *Taxonomy) Level2Under(level1 string) []string {
	ids := t.children[level1]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Level1IDs returns all level-1 ids, sorted.
func (t *Taxonomy) Level1IDs() []string {
	ids := make([]string, 0, len(t.children))
	for id := range t.children {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Level2IDs returns all level-2 ids, sorted.
func (t *Taxonomy) Level2IDs() []string {
	ids := make([]string, 0, len(t.parent))
	for id := range t.parent {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasLevel2 reports whether a level-2 tag id exists.
func (t *Taxonomy) HasLevel2(id string) bool {
	_, ok := t.parent[id]
	return ok
}

// Tag returns the full Tag record for a level-2 id.
func (t *Taxonomy) Tag(level2 string) (api.Tag, bool) {
	for _, tag := range t.tags {
		if tag.Level2 == level2 {
			return tag, true
		}
	}
	return api.Tag{}, false
}

// Tags returns the taxonomy entries in load order.
func (t *Taxonomy) Tags() []api.Tag {
	out := make([]api.Tag, len(t.tags))
	copy(out, t.tags)
	return out
}
