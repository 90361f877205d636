// Package country holds the country record, the code-keyed catalog built from
// a fetched collection, and the list filter and detail projections shared by
// the terminal and browser front ends.
//
// A Catalog is immutable once built and safe for concurrent readers.
package country
