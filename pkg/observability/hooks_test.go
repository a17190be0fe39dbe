package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Sampler hooks
	s := NoopSamplerHooks{}
	s.OnRun("vbss", 12, time.Millisecond)
	s.OnImproved("vbss", 12)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "best")
	c.OnCacheMiss(ctx, "best")
	c.OnCacheSet(ctx, "best", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Sampler().(NoopSamplerHooks); !ok {
		t.Error("Sampler() should return NoopSamplerHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customSampler := &testSamplerHooks{}
	SetSamplerHooks(customSampler)
	if Sampler() != customSampler {
		t.Error("SetSamplerHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Sampler().(NoopSamplerHooks); !ok {
		t.Error("Reset() should restore NoopSamplerHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSamplerHooks{}
	SetSamplerHooks(custom)

	// Setting nil should be ignored
	SetSamplerHooks(nil)

	if Sampler() != custom {
		t.Error("SetSamplerHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSamplerHooks struct{ NoopSamplerHooks }
type testCacheHooks struct{ NoopCacheHooks }
