package htmltree

import (
	"slices"
	"strings"
)

// TagSet is an immutable set of lower-case tag names.
type TagSet struct {
	tags map[string]struct{}
}

// NewTagSet returns a set of the given tag names. Names are trimmed and
// lower-cased; empty names are ignored.
func NewTagSet(tags ...string) TagSet {
	m := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		m[tag] = struct{}{}
	}
	return TagSet{tags: m}
}

// DefaultIrrelevantTags returns the tags whose content is excluded from
// content analysis unless configured otherwise.
func DefaultIrrelevantTags() TagSet {
	return NewTagSet(
		"script",
		"style",
		"noscript",
		"template",
		"code",
		"pre",
		"textarea",
		"iframe",
		"object",
		"svg",
		"math",
	)
}

// Has reports whether tag is in the set. The lookup is case-insensitive.
func (s TagSet) Has(tag string) bool {
	_, ok := s.tags[strings.ToLower(tag)]
	return ok
}

// Len returns the number of tags in the set.
func (s TagSet) Len() int {
	return len(s.tags)
}

// Tags returns the tag names in sorted order.
func (s TagSet) Tags() []string {
	tags := make([]string, 0, len(s.tags))
	for tag := range s.tags {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
