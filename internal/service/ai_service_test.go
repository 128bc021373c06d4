package service

import (
	"language_center_backend/internal/config"
	"strings"
	"testing"
)

func TestBuildMessages(t *testing.T) {
	s := NewAIService(config.AIConfig{Model: "test-model"})

	history := []AIChatMessage{
		{Role: "user", Content: "hola"},
		{Role: "assistant", Content: "¡Hola! ¿Cómo estás?"},
	}

	messages := s.buildMessages("como se dice thanks", "Spanish", history)

	if len(messages) != 4 {
		t.Fatalf("len(messages) = %d, want 4", len(messages))
	}
	if messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", messages[0].Role)
	}
	if !strings.Contains(messages[0].Content, "Spanish") {
		t.Errorf("system prompt should mention the target language: %q", messages[0].Content)
	}
	if messages[1].Content != "hola" || messages[2].Role != "assistant" {
		t.Error("history not replayed in order")
	}
	if last := messages[len(messages)-1]; last.Role != "user" || last.Content != "como se dice thanks" {
		t.Errorf("last message = %+v", last)
	}
}

func TestSystemPromptWithoutLanguage(t *testing.T) {
	prompt := systemPrompt("")
	if strings.Contains(prompt, "learning %s") {
		t.Error("unformatted placeholder leaked into the prompt")
	}
	if !strings.Contains(prompt, "language") {
		t.Errorf("prompt should frame a language tutor: %q", prompt)
	}
}
