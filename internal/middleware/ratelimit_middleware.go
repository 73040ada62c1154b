package middleware

import (
	"sync"
	"time"
)

// Rate limiter ONLY for failed login attempts.
type FailedLoginRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

func NewFailedLoginRateLimiter() *FailedLoginRateLimiter {
	rl := &FailedLoginRateLimiter{
		attempts: make(map[string]*attemptInfo),
	}
	go rl.cleanup()
	return rl
}

// Allow checks if IP can make another attempt.
// Limit: 5 failed attempts per minute.
func (r *FailedLoginRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, exists := r.attempts[ip]
	if !exists {
		return true
	}

	if time.Since(info.firstAt) > time.Minute {
		delete(r.attempts, ip)
		return true
	}
	return info.count < 5
}

// RecordFailure counts a failed login for the IP.
func (r *FailedLoginRateLimiter) RecordFailure(ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	info, exists := r.attempts[ip]
	if !exists || now.Sub(info.firstAt) > time.Minute {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return
	}
	info.count++
}

func (r *FailedLoginRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, info := range r.attempts {
			if now.Sub(info.firstAt) > time.Minute {
				delete(r.attempts, ip)
			}
		}
		r.mu.Unlock()
	}
}
