package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

func TestPick(t *testing.T) {
	tests := []struct {
		name   string
		models []domain.ModelCandidate
		want   string
		wantOK bool
	}{
		{
			name: "preference beats catalog order",
			models: []domain.ModelCandidate{
				{Name: "models/gemini-pro", SupportsGeneration: true},
				{Name: "models/gemini-1.5-flash", SupportsGeneration: true},
			},
			want:   "gemini-1.5-flash",
			wantOK: true,
		},
		{
			name: "preferred but not capable is skipped",
			models: []domain.ModelCandidate{
				{Name: "models/gemini-1.5-flash", SupportsGeneration: false},
				{Name: "models/gemini-1.5-pro", SupportsGeneration: true},
			},
			want:   "gemini-1.5-pro",
			wantOK: true,
		},
		{
			name: "any capable entry",
			models: []domain.ModelCandidate{
				{Name: "models/embedding-001", SupportsGeneration: false},
				{Name: "models/gemini-2.0-flash", SupportsGeneration: true},
			},
			want:   "gemini-2.0-flash",
			wantOK: true,
		},
		{
			name: "nothing capable",
			models: []domain.ModelCandidate{
				{Name: "models/embedding-001", SupportsGeneration: false},
			},
			wantOK: false,
		},
		{
			name:   "empty catalog",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pick(tt.models, DefaultPreferredModels)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "catalog with preferred model",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"models":[
					{"name":"models/gemini-pro","supportedGenerationMethods":["generateContent"]},
					{"name":"models/gemini-1.5-flash","supportedGenerationMethods":["generateContent"]}
				]}`))
			},
			want: "gemini-1.5-flash",
		},
		{
			name: "catalog with only unknown capable model",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"models":[{"name":"models/gemini-exp","supportedGenerationMethods":["generateContent"]}]}`))
			},
			want: "gemini-exp",
		},
		{
			name: "no models field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
			want: DefaultFallbackModel,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
			want: DefaultFallbackModel,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			want: DefaultFallbackModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			resolver := NewResolver(NewClient(server.URL, server.Client(), discardLogger()), nil, "", discardLogger())
			assert.Equal(t, tt.want, resolver.Resolve(context.Background(), "k"))
		})
	}
}

func TestResolve_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	resolver := NewResolver(NewClient(url, nil, discardLogger()), nil, "", discardLogger())
	assert.Equal(t, "gemini-1.5-flash", resolver.Resolve(context.Background(), "k"))
}

func TestResolve_CustomFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver := NewResolver(NewClient(server.URL, server.Client(), discardLogger()), []string{"models/x"}, "gemini-2.0-flash", discardLogger())
	assert.Equal(t, "gemini-2.0-flash", resolver.Resolve(context.Background(), "k"))
}
