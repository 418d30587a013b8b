package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadNamesSkipsCommentsAndBlanks(t *testing.T) {
	in := "# header\nLondon\n\n  Paris  \n#Tokyo\nNew York\n"
	names, err := readNames(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"London", "Paris", "New York"}, names)
}
