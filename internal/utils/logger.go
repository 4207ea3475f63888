package utils

import (
	"log"
	"strings"
)

// LogEvent writes one event line in the shared format
// "[MODULE] action=... request_id=... msg=...".
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
