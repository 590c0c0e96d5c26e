package common

import (
	"fmt"
)

func LockKeySubmission(userID, taskID string) string {
	return fmt.Sprintf("lock:submission:%s:%s", userID, taskID)
}

func LockKeyUserPoints(userID string) string {
	return fmt.Sprintf("lock:points:%s", userID)
}
