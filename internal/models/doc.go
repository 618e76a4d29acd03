// Package models lists the OpenAI models that can serve as speech
// synthesizers or example generators.
package models
