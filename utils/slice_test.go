package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	names := []string{"Alice Howard", "Bob Lin", "Cara Diaz"}

	short := Filter(names, func(s string) bool { return len(s) < 10 })
	assert.Equal(t, []string{"Bob Lin", "Cara Diaz"}, short)

	none := Filter(names, func(s string) bool { return false })
	assert.Empty(t, none)
}

func TestMap(t *testing.T) {
	names := []string{"Alice Howard", "Bob Lin"}

	upper := Map(names, strings.ToUpper)
	assert.Equal(t, []string{"ALICE HOWARD", "BOB LIN"}, upper)
}
