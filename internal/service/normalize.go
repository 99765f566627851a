package service

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

// Punycode only encodes; no UTS-46 width or compatibility mapping is applied.
var idnaProfile = idna.Punycode

// normalizeEmail trims surrounding whitespace; comparison is case-insensitive.
func normalizeEmail(raw string) string {
	return strings.TrimSpace(raw)
}

// normalizePhone keeps digits only. Country codes are deliberately left alone,
// so 0821234567 and +27821234567 stay distinct.
func normalizePhone(raw string) string {
	return phonenumbers.NormalizeDigitsOnly(strings.TrimSpace(raw))
}

func emailsEqual(a, b string) bool {
	a, b = normalizeEmail(a), normalizeEmail(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(foldDomain(a), foldDomain(b))
}

// foldDomain lowercases the domain part and punycode-encodes any unicode label,
// so a unicode domain and its xn-- spelling compare equal. Domains that fail
// to encode are left as is.
func foldDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return email
	}
	ascii, err := idnaProfile.ToASCII(strings.ToLower(email[at+1:]))
	if err != nil || ascii == "" {
		return email
	}
	return email[:at+1] + ascii
}

func phonesEqual(a, b string) bool {
	a, b = normalizePhone(a), normalizePhone(b)
	if a == "" || b == "" {
		return false
	}
	return a == b
}
