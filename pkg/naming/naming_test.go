package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/postcard/pkg/naming"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple lowercase", "welcome", "Welcome"},
		{"namespace separator", "welcome:en", "WelcomeEn"},
		{"multiple separators", "emails:auth:reset", "EmailsAuthReset"},
		{"source extension", "welcome.card", "Welcome"},
		{"separator and extension", "welcome:fr.card", "WelcomeFr"},
		{"kebab case", "order-confirmation", "OrderConfirmation"},
		{"already canonical", "OrderConfirmation", "OrderConfirmation"},
		{"mixed punctuation", "my_component.v2", "MyComponentV2"},
		{"interior caps preserved", "myCard", "MyCard"},
		{"whitespace as boundary", "hello world", "HelloWorld"},
		{"empty string", "", ""},
		{"only separators", ":::", ""},
		{"digits", "promo2024:en", "Promo2024En"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, naming.Canonical(tt.in))
		})
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	inputs := []string{
		"welcome:en",
		"welcome.card",
		"order-confirmation",
		"Foo:bar",
		"Foo-bar",
		"x.card.card",
		"",
		"ALLCAPS",
		"über:größe",
	}

	for _, in := range inputs {
		once := naming.Canonical(in)
		twice := naming.Canonical(once)
		assert.Equal(t, once, twice, "Canonical must be idempotent for %q", in)
	}
}

func TestCanonicalCollisions(t *testing.T) {
	// Namespaced and kebab-case spellings of the same name must collide so
	// that registration and lookup agree on a single key.
	assert.Equal(t, naming.Canonical("Foo:bar"), naming.Canonical("Foo-bar"))
	assert.Equal(t, naming.Canonical("welcome:en"), naming.Canonical("welcome-en.card"))
}

func TestPascal(t *testing.T) {
	assert.Equal(t, "HelloWorld", naming.Pascal("hello-world"))
	assert.Equal(t, "HelloWorld", naming.Pascal("HelloWorld"))
	assert.Equal(t, "H", naming.Pascal("h"))
	assert.Equal(t, "", naming.Pascal("---"))
}
