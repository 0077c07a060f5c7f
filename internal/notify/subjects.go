package notify

const (
	StreamName   = "VITALITY_EVENTS"
	StreamMaxAge = "720h" // 30 days

	// Wildcard for mail delivery subscribers.
	SubjectAnyResultGenerated = "vitality.result.*.generated"
)

func SubjectResultGenerated(resultID string) string {
	return "vitality.result." + resultID + ".generated"
}

func SubjectUserCreated(userID string) string {
	return "vitality.user." + userID + ".created"
}
