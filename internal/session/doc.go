// Package session implements the study session: the word currently shown,
// whether its translation is revealed, the examples shown for it and the
// back/forward history of words. A Session is the only owner of this state
// and is safe for concurrent use; user actions map to its methods.
//
// While example generation is in flight the session is in the Loading
// state and the navigation actions (GoPrevious, GoNext, OnWordActivate)
// as well as further generation requests are ignored.
package session
