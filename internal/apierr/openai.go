package apierr

import (
	"errors"

	"github.com/sashabaranov/go-openai"
)

// OpenAI classifies an error returned by the go-openai client.
func OpenAI(op string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Op: op, Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := ""
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return &ProviderError{Op: op, Status: reqErr.HTTPStatusCode, Message: msg}
	}

	return Network(op, err)
}
