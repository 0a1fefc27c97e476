// Package htmltree converts HTML content fragments into a tree of semantic
// blocks for content analysis. Every node carries its byte range in the
// original markup, and every inline formatting span inside a heading or
// paragraph additionally carries its range in the block's plain text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, goquery/, etree/).
package htmltree
