package ports

// MessageSource looks up operator-configurable message templates by key,
// falling back to a built-in default when the key is absent.
type MessageSource interface {
	Message(key, fallback string) string
}
