package llm

import (
	"context"
	"errors"
	"testing"
)

// MockProvider is a configurable fake for extractor tests
type MockProvider struct {
	name      string
	response  *ExtractResponse
	err       error
	available bool
	lastReq   ExtractRequest
}

func (m *MockProvider) Name() string { return m.name }

func (m *MockProvider) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool { return m.available }

func TestExtractorDisabled(t *testing.T) {
	e, err := NewExtractor(Config{Provider: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.IsEnabled() {
		t.Error("extractor with no provider should report disabled")
	}
	if e.ProviderName() != "none" {
		t.Errorf("ProviderName() = %q", e.ProviderName())
	}
	if _, err := e.Extract(context.Background(), "some text", "doc.txt"); err == nil {
		t.Error("Extract on a disabled extractor should error")
	}
}

func TestExtractorUnknownProvider(t *testing.T) {
	if _, err := NewExtractor(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestExtractorPassesConfigThrough(t *testing.T) {
	mock := &MockProvider{
		name:      "mock",
		available: true,
		response:  &ExtractResponse{RawJSON: []byte(`{"lbaStatus":"sent"}`), Model: "mock-1", TokensUsed: 12},
	}
	e := NewExtractorWithProvider(mock, Config{Provider: "mock", Model: "mock-1", MaxTokens: 500})

	resp, err := e.Extract(context.Background(), "Invoice INV-1 unpaid", "invoice.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.RawJSON) != `{"lbaStatus":"sent"}` {
		t.Errorf("RawJSON = %s", resp.RawJSON)
	}
	if mock.lastReq.Model != "mock-1" || mock.lastReq.MaxTokens != 500 {
		t.Errorf("config not threaded into request: %+v", mock.lastReq)
	}
	if mock.lastReq.SourceName != "invoice.pdf" {
		t.Errorf("source name = %q", mock.lastReq.SourceName)
	}
}

func TestExtractorRejectsEmptyText(t *testing.T) {
	e := NewExtractorWithProvider(&MockProvider{name: "mock"}, Config{})
	if _, err := e.Extract(context.Background(), "   \n", "x"); err == nil {
		t.Error("blank input should be rejected before hitting the provider")
	}
}

func TestExtractorWrapsProviderError(t *testing.T) {
	wantErr := errors.New("boom")
	e := NewExtractorWithProvider(&MockProvider{name: "mock", err: wantErr}, Config{})
	_, err := e.Extract(context.Background(), "text", "x")
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{}\n```  ", `{}`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripFences(tt.in); got != tt.want {
			t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
