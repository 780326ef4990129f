package usecase

import (
	"context"
	"errors"
	"testing"

	"supplier-core/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls   int
	results []*entity.GenerationResult
	errs    []error
}

func (c *countingProvider) Generate(context.Context, string) (*entity.GenerationResult, error) {
	i := c.calls
	c.calls++
	if i >= len(c.errs) {
		i = len(c.errs) - 1
	}
	return c.results[i], c.errs[i]
}

func TestResilientProviderRetriesTransient(t *testing.T) {
	primary := &countingProvider{
		results: []*entity.GenerationResult{nil, {Content: "recovered"}},
		errs:    []error{errors.New("503 service unavailable"), nil},
	}
	fallback := &countingProvider{results: []*entity.GenerationResult{nil}, errs: []error{errors.New("unused")}}
	provider := NewResilientProvider(primary, fallback)
	provider.baseDelay = 0

	resp, err := provider.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Content)
	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestResilientProviderNonTransientGoesStraightToFallback(t *testing.T) {
	primary := &countingProvider{
		results: []*entity.GenerationResult{nil},
		errs:    []error{errors.New("400 invalid argument")},
	}
	fallback := &countingProvider{
		results: []*entity.GenerationResult{{Content: "plan b"}},
		errs:    []error{nil},
	}
	provider := NewResilientProvider(primary, fallback)
	provider.baseDelay = 0

	resp, err := provider.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "plan b", resp.Content)
	assert.Equal(t, 1, primary.calls, "non-transient errors are not retried")
	assert.Equal(t, 1, fallback.calls)
}

func TestResilientProviderBothFail(t *testing.T) {
	failing := func() *countingProvider {
		return &countingProvider{
			results: []*entity.GenerationResult{nil},
			errs:    []error{errors.New("overloaded")},
		}
	}
	primary, fallback := failing(), failing()
	provider := NewResilientProvider(primary, fallback)
	provider.baseDelay = 0

	_, err := provider.Generate(context.Background(), "p")
	assert.ErrorContains(t, err, "both primary and fallback failed")
	assert.Equal(t, 3, primary.calls, "primary gets maxRetries+1 attempts")
}
