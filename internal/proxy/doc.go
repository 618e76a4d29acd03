// Package proxy is the client of the svenska backend proxy. The proxy holds
// the vocabulary database and the provider API keys; through it the client
// reads and updates words, generates examples, translates custom words and
// synthesizes speech. All calls go through a circuit breaker so a dead
// proxy fails fast instead of stalling every action.
package proxy
