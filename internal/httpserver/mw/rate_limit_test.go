package mw

import (
	"testing"
	"time"
)

func TestLimiterAllowsBurstThenBlocks(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 3, PerMinute: 60})
	now := time.Now()

	for i := 0; i < 3; i++ {
		ok, _ := l.allow("1.2.3.4", now)
		if !ok {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}

	ok, retry := l.allow("1.2.3.4", now)
	if ok {
		t.Fatal("request past burst should be rejected")
	}
	if retry < 1 {
		t.Errorf("retry-after = %d, want >= 1", retry)
	}
}

func TestLimiterRefills(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, PerMinute: 60}) // 1 token/sec
	now := time.Now()

	if ok, _ := l.allow("1.2.3.4", now); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := l.allow("1.2.3.4", now); ok {
		t.Fatal("second immediate request should be rejected")
	}
	if ok, _ := l.allow("1.2.3.4", now.Add(2*time.Second)); !ok {
		t.Fatal("request after refill window should be allowed")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, PerMinute: 1})
	now := time.Now()

	if ok, _ := l.allow("1.2.3.4", now); !ok {
		t.Fatal("first ip should be allowed")
	}
	if ok, _ := l.allow("5.6.7.8", now); !ok {
		t.Fatal("second ip should not share the first ip's bucket")
	}
}

func TestLimiterSweepsStaleBuckets(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, PerMinute: 1})
	now := time.Now()

	l.allow("1.2.3.4", now)
	l.allow("5.6.7.8", now.Add(20*time.Minute))

	l.mu.Lock()
	_, stale := l.buckets["1.2.3.4"]
	l.mu.Unlock()
	if stale {
		t.Error("bucket idle past the sweep threshold should be dropped")
	}
}
