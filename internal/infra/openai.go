package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// extractorSystemPrompt is the fixed instruction for every extraction
// call. The model may only report information explicitly present in the
// text; inference and fabrication are forbidden.
const extractorSystemPrompt = `You are a contact information extractor. Extract contact information from the provided text and return it as a JSON array.

Rules:
- Only extract information that is explicitly mentioned in the text
- Do not make up or infer information that isn't clearly stated
- Return an array of contacts, even if only one person is mentioned
- If no contact information is found, return an empty array
- Each contact should have at least name, or email

Output format should be an array of objects with these fields:
- name: person's full name
- email: email address
- company: company/organization name
- location: city, country, or address
- phone: phone number
- job_title: person's job title or role
- notes: free-form remarks about the person
- custom_fields: array of {label, value} objects for other information`

// extractionSchema constrains the completion to the extraction
// contract: an object whose contacts array holds contact-shaped
// entries with explicit nulls for unknown fields.
var extractionSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "contacts": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": ["string", "null"]},
          "email": {"type": ["string", "null"]},
          "company": {"type": ["string", "null"]},
          "location": {"type": ["string", "null"]},
          "phone": {"type": ["string", "null"]},
          "job_title": {"type": ["string", "null"]},
          "notes": {"type": ["string", "null"]},
          "custom_fields": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "label": {"type": "string"},
                "value": {"type": "string"}
              },
              "required": ["label", "value"],
              "additionalProperties": false
            }
          }
        },
        "required": ["name", "email", "company", "location", "phone", "job_title", "notes", "custom_fields"],
        "additionalProperties": false
      }
    }
  },
  "required": ["contacts"],
  "additionalProperties": false
}`)

// OpenAIClient calls the OpenAI chat-completions API with the fixed
// extractor prompt and a JSON-schema response constraint. It returns
// raw completion content; parsing and validation belong to the
// extraction pipeline.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}
}

// Complete sends one extraction request. The user text is the sole
// user-role input; everything else is fixed.
func (c *OpenAIClient) Complete(ctx context.Context, text string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "contact_extraction_response",
				Schema: extractionSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("openai: completion carried no content")
	}
	return resp.Choices[0].Message.Content, nil
}
