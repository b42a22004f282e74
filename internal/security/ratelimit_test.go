package security

import (
	"testing"
	"time"
)

func TestAllowUnderLimit(t *testing.T) {
	l := NewLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("request %d unexpectedly limited", i)
		}
	}
	if l.Allow() {
		t.Error("expected limit after max requests")
	}
}

func TestWindowExpiry(t *testing.T) {
	l := NewLimiter(1, 10*time.Millisecond)
	if !l.Allow() {
		t.Fatal("first request limited")
	}
	if l.Allow() {
		t.Fatal("second request should be limited")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow() {
		t.Error("request after window expiry should be allowed")
	}
}
