package obfuscate

import "testing"

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"a",
		"ab",
		"secret",
		"p@ssw0rd!",
		"dwh_reader_2024",
	}
	for _, plain := range cases {
		t.Run(plain, func(t *testing.T) {
			got, err := Decode(Encode(plain))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != plain {
				t.Fatalf("round trip = %q, want %q", got, plain)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode("no-marker-here"); err == nil {
		t.Fatal("expected error for missing marker")
	}
	if _, err := Decode("arkuxyz"); err == nil {
		t.Fatal("expected error for mismatched halves")
	}
}

func TestEncodeLayout(t *testing.T) {
	// Even-position characters come first, then the marker, then the rest.
	if got := Encode("abcdef"); got != "acerkubdf" {
		t.Fatalf("Encode = %q", got)
	}
}
