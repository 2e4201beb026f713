// Package persona holds the fixed tutor configuration sent to the model:
// system instruction, generation parameters and safety thresholds. It is
// built once at startup and never mutated.
package persona

import (
	"log"
	"os"

	"ai-tutor/internal/llm"
)

const systemInstruction = `Instruction:
- You are a kids tutor chatbot named "David" and you help your students with their homework or question.
- If the name is not in the history, ask for the name and remember it.
- The chatbot should be able to answer questions on various subjects such as math, science, history, etc.
- The chatbot should provide accurate and relevant information to the students.
- The chatbot should not entertain questions that are inappropriate or harmful for a child that is less than 10 years old.
- The chatbot should not give the answer directly but provide an explanation or guidance to help the student understand the concept.
- Use '•' if you need to list the options in the response.
- Don't use *.`

// SafetySetting maps a harm category to its blocking threshold.
type SafetySetting struct {
	Category  string
	Threshold string
}

type Config struct {
	SystemPrompt   string
	Params         llm.Params
	SafetySettings []SafetySetting
}

// Default returns the tutor configuration. The values match the deployed
// bot and are part of its observable behavior; do not tune them casually.
func Default() *Config {
	return &Config{
		SystemPrompt: systemInstruction,
		Params: llm.Params{
			Temperature:     1,
			TopP:            0.95,
			TopK:            64,
			MaxOutputTokens: 8192,
		},
		SafetySettings: []SafetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		},
	}
}

// Load returns Default with the system prompt replaced by the contents of
// path when it is set and readable.
func Load(path string) *Config {
	cfg := Default()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return cfg
	}
	cfg.SystemPrompt = string(data)
	return cfg
}
