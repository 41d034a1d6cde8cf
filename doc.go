// Package jsontree implements an in-memory JSON value tree: a
// recursive-descent parser, a mutating builder API, deep equality,
// structural schema validation, and a canonical string escaper.
//
// The object container is an insertion-ordered, open-addressed hash
// table (see internal/omap) rather than a plain map, so iterating a
// parsed object yields keys in the order they appeared in the source
// document.
package jsontree
