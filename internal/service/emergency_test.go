package service

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	t.Parallel()

	valid := []string{
		"+15551234567",
		"5551234567",
		"(555) 123-4567",
		"555.123.4567",
		"+442071234567",
	}
	for _, phone := range valid {
		if !ValidatePhoneNumber(phone) {
			t.Errorf("ValidatePhoneNumber(%q) = false, want true", phone)
		}
	}

	invalid := []string{
		"",
		"not-a-number",
		"+",
		"0123456789", // leading zero without country code
		"12345678901234567890",
	}
	for _, phone := range invalid {
		if ValidatePhoneNumber(phone) {
			t.Errorf("ValidatePhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"+15551234567", "+15551234567"},
		{"15551234567", "+15551234567"},
		{"5551234567", "+15551234567"},
		{"(555) 123-4567", "+15551234567"},
		{"+44 20 7123 4567", "+442071234567"},
		{"123", "123"}, // too short to infer a country code
	}

	for _, tc := range cases {
		if got := FormatPhoneNumber(tc.in); got != tc.want {
			t.Errorf("FormatPhoneNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
