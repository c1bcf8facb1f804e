package main

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFilteredSplit(t *testing.T) {
	have := filteredSplit(" lib : :inc::", ":")
	assert.Equal(t, 2, len(have))
	assert.Equal(t, "lib", have[0])
	assert.Equal(t, "inc", have[1])
}
