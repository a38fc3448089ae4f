package ratelimit

import (
	"log"
	"sync"
	"time"
)

// AILimiter caps daily calls to the paid AI services. A max of 0 means
// the corresponding budget is unlimited.
type AILimiter struct {
	mu             sync.Mutex
	classifyCount  int
	translateCount int
	totalCount     int
	maxClassify    int
	maxTranslate   int
	maxTotal       int
	resetTime      time.Time
}

// NewAILimiter creates a limiter with per-service and total daily budgets.
func NewAILimiter(maxClassify, maxTranslate, maxTotal int) *AILimiter {
	return &AILimiter{
		maxClassify:  maxClassify,
		maxTranslate: maxTranslate,
		maxTotal:     maxTotal,
		resetTime:    time.Now().Add(24 * time.Hour),
	}
}

// AllowClassify consumes one unit of the classification budget. It returns
// false without consuming anything when the budget is exhausted.
func (rl *AILimiter) AllowClassify() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxClassify > 0 && rl.classifyCount >= rl.maxClassify {
		log.Printf("classification budget exhausted (%d/%d)", rl.classifyCount, rl.maxClassify)
		return false
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		log.Printf("total AI budget exhausted (%d/%d)", rl.totalCount, rl.maxTotal)
		return false
	}

	rl.classifyCount++
	rl.totalCount++
	return true
}

// AllowTranslate consumes one unit of the translation budget.
func (rl *AILimiter) AllowTranslate() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxTranslate > 0 && rl.translateCount >= rl.maxTranslate {
		log.Printf("translation budget exhausted (%d/%d)", rl.translateCount, rl.maxTranslate)
		return false
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		log.Printf("total AI budget exhausted (%d/%d)", rl.totalCount, rl.maxTotal)
		return false
	}

	rl.translateCount++
	rl.totalCount++
	return true
}

// GetStats returns a snapshot for the monitoring endpoint.
func (rl *AILimiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"classify_used":   rl.classifyCount,
		"classify_limit":  rl.maxClassify,
		"translate_used":  rl.translateCount,
		"translate_limit": rl.maxTranslate,
		"total_used":      rl.totalCount,
		"total_limit":     rl.maxTotal,
		"reset_time":      rl.resetTime,
	}
}

// checkReset rolls the counters over once the daily window has passed.
// Callers must hold rl.mu.
func (rl *AILimiter) checkReset() {
	if time.Now().After(rl.resetTime) {
		log.Printf("resetting daily AI budgets (classify=%d, translate=%d, total=%d)",
			rl.classifyCount, rl.translateCount, rl.totalCount)
		rl.classifyCount = 0
		rl.translateCount = 0
		rl.totalCount = 0
		rl.resetTime = time.Now().Add(24 * time.Hour)
	}
}
