package telegram

import (
	"errors"
	"testing"
	"time"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryDelay(t *testing.T) {
	cases := []struct {
		err  error
		want time.Duration
	}{
		{nil, 0},
		{errors.New("Too Many Requests: retry after 7"), 7 * time.Second},
		{errors.New("too many requests"), 3 * time.Second},
		{timeoutErr{}, 2 * time.Second},
		{errors.New("connection reset"), time.Second},
	}
	for _, tc := range cases {
		if got := RetryDelay(tc.err); got != tc.want {
			t.Fatalf("RetryDelay(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestShortHash(t *testing.T) {
	a := ShortHash("123:abc")
	if len(a) != 16 {
		t.Fatalf("len = %d", len(a))
	}
	if a != ShortHash("123:abc") {
		t.Fatalf("hash is not stable")
	}
	if a == ShortHash("123:abd") {
		t.Fatalf("different tokens collide")
	}
}
