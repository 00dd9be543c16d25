package email

import (
	"strings"

	"github.com/mcnijman/go-emailaddress"
)

// AddressValid checks if email address is syntactically valid
func AddressValid(email string) bool {
	addr, err := emailaddress.Parse(email)
	if err != nil || addr == nil {
		return false
	}
	return addr.LocalPart != "" && addr.Domain != ""
}

// Normalize trims the address and lowercases its domain.
// Addresses without exactly one @ are returned trimmed, but otherwise untouched
func Normalize(email string, enabled, lowercaseLocal bool) string {
	email = strings.TrimSpace(email)
	if !enabled {
		return email
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := strings.TrimSpace(parts[0])
	domain := strings.ToLower(strings.TrimSpace(parts[1]))
	if lowercaseLocal {
		local = strings.ToLower(local)
	}

	return local + "@" + domain
}

// Split returns local and domain parts of the address, divided by the last @
func Split(email string) (local, domain string) {
	return Mailbox(email), Hostname(email)
}

// Mailbox returns mailbox (local) part from email address
func Mailbox(email string) string {
	index := strings.LastIndex(email, "@")
	if index == -1 {
		return email
	}
	return email[:index]
}

// Hostname returns hostname part from email address, empty if there is no @
func Hostname(email string) string {
	index := strings.LastIndex(email, "@")
	if index == -1 {
		return ""
	}
	return email[index+1:]
}
