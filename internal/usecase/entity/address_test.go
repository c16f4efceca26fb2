package entity

import (
	"reflect"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"jane@acme.com", "jane@acme.com", true},
		{"Jane Doe <Jane.Doe@Acme.com>", "jane.doe@acme.com", true},
		{`"Doe, Jane" <jane@acme.com>`, "jane@acme.com", true},
		{"<ops@acme.com>", "ops@acme.com", true},
		{"not an address", "", false},
		{"", "", false},
		{"@acme.com", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAddress(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseAddress(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseAddresses(t *testing.T) {
	got := ParseAddresses("Jane <jane@acme.com>, bob@beta.io")
	want := []string{"jane@acme.com", "bob@beta.io"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestBusinessDomainAndCompanyName(t *testing.T) {
	for _, d := range []string{"gmail.com", "Yahoo.com", "outlook.com", "hotmail.com", "icloud.com", ""} {
		if IsBusinessDomain(d) {
			t.Fatalf("%q should not be a business domain", d)
		}
	}
	if !IsBusinessDomain("acme.com") {
		t.Fatalf("acme.com should be a business domain")
	}

	names := map[string]string{
		"acme.com":     "Acme",
		"ACME.co.uk":   "Acme",
		"localhost":    "Localhost",
		"beta-labs.io": "Beta-labs",
	}
	for domain, want := range names {
		if got := CompanyNameFromDomain(domain); got != want {
			t.Fatalf("CompanyNameFromDomain(%q) = %q want %q", domain, got, want)
		}
	}
}
