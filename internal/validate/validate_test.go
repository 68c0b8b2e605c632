package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bargainbay/internal/validate"
)

func TestStars(t *testing.T) {
	for in, want := range map[string]int{"1": 1, " 5 ": 5, "3": 3} {
		got, ok := validate.Stars(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"0", "6", "-1", "", "four", "2.5"} {
		_, ok := validate.Stars(in)
		assert.False(t, ok, in)
	}
}

func TestDelta(t *testing.T) {
	n, ok := validate.Delta("-1")
	assert.True(t, ok)
	assert.Equal(t, -1, n)

	_, ok = validate.Delta("0")
	assert.False(t, ok)
	_, ok = validate.Delta("999")
	assert.False(t, ok)
}

func TestAddress(t *testing.T) {
	a, ok := validate.Address("  221B Baker Street ")
	assert.True(t, ok)
	assert.Equal(t, "221B Baker Street", a)

	_, ok = validate.Address("   ")
	assert.False(t, ok)
	_, ok = validate.Address(strings.Repeat("x", 301))
	assert.False(t, ok)
}

func TestQ(t *testing.T) {
	assert.Equal(t, "red shoe", validate.Q("red\x00 shoe"))
	assert.Equal(t, " shoe ", validate.Q(" shoe "))
	assert.Len(t, []rune(validate.Q(strings.Repeat("é", 150))), 100)
}

func TestPrice(t *testing.T) {
	p, ok := validate.Price("19.99")
	assert.True(t, ok)
	assert.Equal(t, "19.99", p.String())

	_, ok = validate.Price("-1")
	assert.False(t, ok)
	_, ok = validate.Price("abc")
	assert.False(t, ok)
}

func TestEmailAndID(t *testing.T) {
	_, ok := validate.Email("alice@bargainbay.test")
	assert.True(t, ok)
	_, ok = validate.Email("alice@")
	assert.False(t, ok)

	_, ok = validate.ID("p-001")
	assert.True(t, ok)
	_, ok = validate.ID("../etc")
	assert.False(t, ok)
}
