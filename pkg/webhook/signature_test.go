package webhook

import "testing"

func TestVerifyHMAC(t *testing.T) {
	payload := []byte(`{"event":"bot.done"}`)
	sig := Sign("s3cret", payload)

	tests := []struct {
		name   string
		secret string
		sig    string
		want   bool
	}{
		{"valid", "s3cret", sig, true},
		{"prefixed", "s3cret", "sha256=" + sig, true},
		{"wrong secret", "other", sig, false},
		{"empty secret", "", sig, false},
		{"empty signature", "s3cret", "", false},
		{"garbage", "s3cret", "abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyHMAC(tt.secret, payload, tt.sig); got != tt.want {
				t.Fatalf("VerifyHMAC = %v, want %v", got, tt.want)
			}
		})
	}
}
