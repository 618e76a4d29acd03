package translation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/svenska/internal/apierr"
)

// Language codes used throughout the module
const (
	Swedish = "sv"
	English = "en"
)

// Translator translates text between two languages
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// LanguageName returns the English name of a language code
func LanguageName(code string) string {
	switch code {
	case Swedish:
		return "Swedish"
	case English:
		return "English"
	default:
		return code
	}
}

// OpenAITranslator translates with the OpenAI chat API
type OpenAITranslator struct {
	apiKey string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance. baseURL may be empty.
func NewOpenAITranslator(apiKey, baseURL string) *OpenAITranslator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAITranslator{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// Translate translates a word or short phrase
func (t *OpenAITranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the %s word or phrase '%s' to %s. Respond with only the %s translation, nothing else.",
					LanguageName(sourceLang), text, LanguageName(targetLang), LanguageName(targetLang)),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", apierr.OpenAI("translate", err)
	}

	if len(resp.Choices) == 0 {
		return "", &apierr.MalformedResponseError{Reason: "no translation returned"}
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", &apierr.MalformedResponseError{Reason: "empty translation"}
	}
	return translation, nil
}

// TranslationCache stores translations in memory for batch operations
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(word, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[word] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(word string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[word]
	return translation, ok
}

// CachingTranslator remembers translations of a wrapped Translator
type CachingTranslator struct {
	next  Translator
	cache *TranslationCache
}

// NewCachingTranslator wraps next with cache
func NewCachingTranslator(next Translator, cache *TranslationCache) *CachingTranslator {
	if cache == nil {
		cache = NewTranslationCache()
	}
	return &CachingTranslator{next: next, cache: cache}
}

// Translate returns a cached translation or asks the wrapped translator
func (c *CachingTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	key := sourceLang + ">" + targetLang + ":" + strings.ToLower(strings.TrimSpace(text))
	if translation, ok := c.cache.Get(key); ok {
		return translation, nil
	}

	translation, err := c.next.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, translation)
	return translation, nil
}
