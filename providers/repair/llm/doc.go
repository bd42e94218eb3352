// Package llm implements the repair capability on top of an OpenAI-compatible
// chat completions endpoint. The credential and endpoint are read once from
// the environment (API_KEY, OPENAI_ENDPOINT) via [ConfigFromEnv]; missing
// configuration fails fast at startup instead of surfacing inside extraction
// calls.
package llm
