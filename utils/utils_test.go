package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	t.Setenv("DEFAULT_COUNTRY_CODE", "+880")

	cases := []struct {
		in   string
		want string
	}{
		{"+8801712345678", "+8801712345678"},
		{"+880 171 234-5678", "+8801712345678"},
		{"008801712345678", "+8801712345678"},
		{"01712345678", "+8801712345678"},
		{"(017) 123-45678", "+8801712345678"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestNormalizePhoneDefaultCountryCode(t *testing.T) {
	t.Setenv("DEFAULT_COUNTRY_CODE", "")

	// Falls back to +91 when nothing is configured
	assert.Equal(t, "+919876543210", NormalizePhone("09876543210"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "+88*****678", MaskPhone("+8801712345678"))
	assert.Equal(t, "+91*****210", MaskPhone("+919876543210"))

	// Too short to mask meaningfully
	assert.Equal(t, "12345", MaskPhone("12345"))
	assert.Equal(t, "", MaskPhone(""))
}
