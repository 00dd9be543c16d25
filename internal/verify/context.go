package verify

import (
	"strings"

	"github.com/etkecc/emailscore/internal/email"
)

// Context is an immutable view of the address being verified
type Context struct {
	// Original is the trimmed input
	Original string
	// Email is the normalized address
	Email string
	// Local part of the normalized address
	Local string
	// Domain part of the normalized address, always lowercase
	Domain string
}

// NewContext splits normalized address on the last @
func NewContext(original, normalized string) *Context {
	local, domain := email.Split(normalized)
	return &Context{
		Original: original,
		Email:    normalized,
		Local:    local,
		Domain:   strings.ToLower(domain),
	}
}
