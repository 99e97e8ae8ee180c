package cache

import "fmt"

func JobStatusKey(jobID string) string {
	return fmt.Sprintf("job:%s:status", jobID)
}

func RateLimitKey(owner string) string {
	return fmt.Sprintf("ratelimit:%s", owner)
}
