package usecase

import "testing"

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"alice.smith@example.com",
		"a+tag@sub.example.org",
	}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"a@",
		"a@b",
		"a@.com",
		"a@b.",
		"a b@example.com",
		"a@@example.com",
	}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
