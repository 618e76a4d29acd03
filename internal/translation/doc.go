// Package translation provides translation between Swedish and English,
// used when a learner adds a word of their own. It includes an in-memory
// translation cache for batch operations.
package translation
