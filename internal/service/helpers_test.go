package service

import (
	"github.com/flatwalay/backend/internal/config"

	"go.uber.org/zap"
)

// disabledLLM returns a client with no API key, so every service under test
// runs its deterministic path
func disabledLLM() *LLMClient {
	return NewLLMClient(config.LLMConfig{Timeout: 1})
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
