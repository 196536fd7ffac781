package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OpenRouterConfig
		wantErr bool
		model   string
	}{
		{"valid config", OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.5-flash"}, false, "google/gemini-2.5-flash"},
		{"model passed through", OpenRouterConfig{APIKey: "sk-or-test", Model: "gpt-4o"}, false, "gpt-4o"},
		{"custom base URL", OpenRouterConfig{APIKey: "sk-or-test", Model: "m", BaseURL: "https://custom.example/v1"}, false, "m"},
		{"empty API key", OpenRouterConfig{Model: "m"}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != tt.model {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.model)
			}
		})
	}
}
