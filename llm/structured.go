package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// GenerateStructured runs an inference and decodes the model's reply into T.
// The model is expected to emit a JSON object somewhere in its output; text
// around the object (markdown fences, chatter) is tolerated. Returns an error
// when the provider fails or no conforming object is found, so callers can
// substitute a safe default.
func GenerateStructured[T any](ctx context.Context, client LLMClient, messages []Message, opts ...LLMOption) (*T, error) {
	var response strings.Builder
	err := client.GenerateInference(ctx, messages, func(chunk string) error {
		response.WriteString(chunk)
		return nil
	}, opts...)

	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := UnmarshalResponse(response.String(), out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnmarshalResponse extracts the first top-level JSON object from an LLM
// reply and decodes it into out.
func UnmarshalResponse(response string, out any) error {
	response = strings.TrimSpace(response)

	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || startIdx >= endIdx {
		return fmt.Errorf("no valid JSON found in response")
	}

	jsonStr := response[startIdx : endIdx+1]
	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		return fmt.Errorf("error unmarshaling structured response: %w", err)
	}
	return nil
}
