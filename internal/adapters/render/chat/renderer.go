// Package chat renders engine messages for a terminal, translating the
// &-prefixed color codes carried by configured message templates.
package chat

import (
	"fmt"
	"io"
	"strings"

	"github.com/jumpypanter/serverforms/internal/ports"
)

// Renderer writes styled success and failure lines to an output stream.
type Renderer struct {
	out io.Writer
}

var _ ports.Notifier = (*Renderer)(nil)

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Success(message string) {
	_, _ = fmt.Fprintln(r.out, Format(message))
}

func (r *Renderer) Failure(message string) {
	// Messages without an explicit leading code get the error color.
	if !strings.HasPrefix(message, "&") {
		message = "&c" + message
	}
	_, _ = fmt.Fprintln(r.out, Format(message))
}
