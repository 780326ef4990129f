package usecase

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"supplier-core/internal/domain/entity"
	"supplier-core/internal/domain/repository"
)

// ResilientProvider fronts two AI backends: the primary is retried with
// exponential backoff on transient failures, then a cheaper fallback model
// gets one attempt. A per-generation timeout caps the whole sequence so one
// slow upstream call cannot hold a request goroutine indefinitely.
type ResilientProvider struct {
	primary    repository.AIProvider
	fallback   repository.AIProvider
	maxRetries int
	baseDelay  time.Duration
	timeout    time.Duration
}

func NewResilientProvider(primary, fallback repository.AIProvider) *ResilientProvider {
	return &ResilientProvider{
		primary:    primary,
		fallback:   fallback,
		maxRetries: 2,
		baseDelay:  500 * time.Millisecond,
		timeout:    25 * time.Second,
	}
}

func (r *ResilientProvider) Generate(ctx context.Context, prompt string) (*entity.GenerationResult, error) {
	genCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.tryPrimary(genCtx, prompt)
	if err == nil {
		return resp, nil
	}
	log.Printf("[PROVIDER] primary exhausted, switching to fallback: %v", err)

	resp, err = r.fallback.Generate(genCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("both primary and fallback failed: %w", err)
	}
	return resp, nil
}

func (r *ResilientProvider) tryPrimary(ctx context.Context, prompt string) (*entity.GenerationResult, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		resp, err := r.primary.Generate(ctx, prompt)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isTransient(err) || attempt == r.maxRetries {
			break
		}
		select {
		case <-time.After(r.backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// Transient means rate limits (429) and upstream server errors.
func isTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "deadline")
}

func (r *ResilientProvider) backoff(attempt int) time.Duration {
	wait := float64(r.baseDelay) * float64(int(1)<<attempt)
	jitter := rand.Float64() * 0.2 * wait
	return time.Duration(wait + jitter)
}
