package support

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		message string
		want    string
	}{
		{"shipping keyword", "How long does shipping take?", ReplyShipping},
		{"shipping uppercase", "SHIPPING estimate please", ReplyShipping},
		{"return keyword", "How do I return this?", ReplyReturn},
		{"refund does not match return", "I want a refund", ReplyDefault},
		{"returned substring matches", "I returned my watch yesterday", ReplyReturn},
		{"warranty keyword", "Is there a warranty on the band?", ReplyWarranty},
		{"first match wins", "shipping and warranty question", ReplyShipping},
		{"no keyword", "Hello there", ReplyDefault},
		{"empty message", "", ReplyDefault},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.message); got != tc.want {
				t.Fatalf("Classify(%q) = %q, want %q", tc.message, got, tc.want)
			}
		})
	}
}
