package ports

// Notifier delivers user-facing messages to the acting player. Messages may
// carry &-prefixed color codes; implementations decide how to render them.
// All engine output goes through a Notifier, never straight to a transport.
type Notifier interface {
	Success(message string)
	Failure(message string)
}
