package generate

import (
	"github.com/hrygo/cutverse/ai/core/llm"
	"github.com/hrygo/cutverse/internal/profile"
)

// ConfigFromProfile builds a generator configuration from the runtime profile.
func ConfigFromProfile(p *profile.Profile, keys KeySource, recorder Recorder) Config {
	return Config{
		Keys:          keys,
		EnvAPIKey:     p.LLMAPIKey,
		RatePerMinute: p.AIRatePerMinute,
		Burst:         p.AIRateBurst,
		Recorder:      recorder,
		NewService: func(apiKey string) (llm.Service, error) {
			return llm.NewService(&llm.Config{
				Provider:   p.LLMProvider,
				Model:      p.LLMModel,
				ImageModel: p.LLMImageModel,
				APIKey:     apiKey,
				BaseURL:    p.LLMBaseURL,
				MaxTokens:  p.LLMMaxTokens,
				Timeout:    p.LLMTimeout,
			})
		},
	}
}
