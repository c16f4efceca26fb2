package entity

import (
	"net/mail"
	"strings"
)

// commonProviders are consumer mail domains that never identify a company
var commonProviders = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"outlook.com": true,
	"hotmail.com": true,
	"icloud.com":  true,
}

// ParseAddress returns the lower-cased email of "Name <email>" or a bare address
func ParseAddress(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if addr, err := mail.ParseAddress(raw); err == nil {
		return strings.ToLower(addr.Address), true
	}

	// Fall back to the part between angle brackets for addresses net/mail rejects
	if i, j := strings.LastIndex(raw, "<"), strings.LastIndex(raw, ">"); i >= 0 && j > i {
		raw = raw[i+1 : j]
	}
	raw = strings.ToLower(strings.Trim(strings.TrimSpace(raw), `"'`))
	if at := strings.LastIndex(raw, "@"); at <= 0 || at == len(raw)-1 || strings.ContainsAny(raw, " ,;") {
		return "", false
	}
	return raw, true
}

// ParseAddresses splits a header value that may carry several comma-separated addresses
func ParseAddresses(raw string) []string {
	if list, err := mail.ParseAddressList(raw); err == nil {
		out := make([]string, 0, len(list))
		for _, a := range list {
			out = append(out, strings.ToLower(a.Address))
		}
		return out
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if email, ok := ParseAddress(part); ok {
			out = append(out, email)
		}
	}
	return out
}

// Domain returns the part after @
func Domain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// LocalPart returns the part before @
func LocalPart(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at]
}

// IsBusinessDomain reports whether a domain can identify a customer company
func IsBusinessDomain(domain string) bool {
	return domain != "" && !commonProviders[strings.ToLower(domain)]
}

// CompanyNameFromDomain capitalizes the first label: "acme.co.uk" becomes "Acme"
func CompanyNameFromDomain(domain string) string {
	label := strings.ToLower(domain)
	if i := strings.Index(label, "."); i >= 0 {
		label = label[:i]
	}
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
