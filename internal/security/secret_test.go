package security

import (
	"errors"
	"strings"
	"testing"
)

func TestRandomStringValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		want     error
	}{
		{name: "zero length", length: 0, alphabet: "abc", want: ErrInvalidLength},
		{name: "negative length", length: -4, alphabet: "abc", want: ErrInvalidLength},
		{name: "empty alphabet", length: 4, alphabet: "", want: ErrInvalidAlphabet},
		{name: "oversized alphabet", length: 4, alphabet: strings.Repeat("a", 257), want: ErrInvalidAlphabet},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if _, err := RandomString(test.length, test.alphabet); !errors.Is(err, test.want) {
				t.Fatalf("RandomString(%d, len %d) error = %v, want %v", test.length, len(test.alphabet), err, test.want)
			}
		})
	}
}

func TestRandomStringStaysInAlphabet(t *testing.T) {
	t.Parallel()

	const alphabet = "xyz"
	got, err := RandomString(200, alphabet)
	if err != nil {
		t.Fatalf("RandomString returned error: %v", err)
	}
	if len(got) != 200 {
		t.Fatalf("len = %d, want 200", len(got))
	}
	for _, char := range got {
		if !strings.ContainsRune(alphabet, char) {
			t.Fatalf("unexpected char %q in %q", char, got)
		}
	}

	single, err := RandomString(6, "Q")
	if err != nil {
		t.Fatalf("RandomString single alphabet: %v", err)
	}
	if single != "QQQQQQ" {
		t.Fatalf("single alphabet result = %q", single)
	}
}

func TestNewSecretKeyIsLongAndUnique(t *testing.T) {
	t.Parallel()

	first, err := NewSecretKey()
	if err != nil {
		t.Fatalf("NewSecretKey returned error: %v", err)
	}
	second, err := NewSecretKey()
	if err != nil {
		t.Fatalf("NewSecretKey returned error: %v", err)
	}
	if len(first) != SecretKeyLength {
		t.Fatalf("secret length = %d, want %d", len(first), SecretKeyLength)
	}
	if first == second {
		t.Fatal("two generated secrets should differ")
	}
}
