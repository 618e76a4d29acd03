// Package examples generates example sentence pairs for vocabulary words.
// A Service sends one request per call to a Generator (the backend proxy,
// OpenAI or Gemini) and never retries; retrying is up to the user.
package examples
