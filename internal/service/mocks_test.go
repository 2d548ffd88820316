package service

import (
	"context"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/Rrens/weather-advisor/internal/llm"
	"github.com/stretchr/testify/mock"
)

// MockWeatherProvider mocks the weather.Provider interface
type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) Fetch(ctx context.Context, location string) (*domain.WeatherSnapshot, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherSnapshot), args.Error(1)
}

// MockSuggestionProvider mocks the llm.Provider interface
type MockSuggestionProvider struct {
	mock.Mock
}

func (m *MockSuggestionProvider) Name() string {
	return "mock"
}

func (m *MockSuggestionProvider) DefaultModel() string {
	return "mock-model"
}

func (m *MockSuggestionProvider) IsConfigured() bool {
	return true
}

func (m *MockSuggestionProvider) GenerateSuggestion(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	args := m.Called(ctx, req, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}

// MockTranscriptionProvider mocks the transcribe.Provider interface
type MockTranscriptionProvider struct {
	mock.Mock
}

func (m *MockTranscriptionProvider) Transcribe(ctx context.Context, audio []byte, format string, language domain.Language) (string, error) {
	args := m.Called(ctx, audio, format, language)
	return args.String(0), args.Error(1)
}
