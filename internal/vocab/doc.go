// Package vocab holds the vocabulary data model: words, their example
// sentences and speech references. Records arriving from any backing
// service are normalized here once, so the rest of the program never has
// to care which identifier field a backend used.
package vocab
