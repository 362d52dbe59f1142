package biref_test

import (
	"testing"

	"github.com/jcpaschoal/biadmin/business/types/biref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	r, err := biref.Parse(" f089354e-8366-4e18-aea3-4cb4a3a50b48 ")
	require.NoError(t, err)
	assert.Equal(t, "f089354e-8366-4e18-aea3-4cb4a3a50b48", r.String())

	_, err = biref.Parse("  ")
	assert.Error(t, err)

	assert.Panics(t, func() { biref.MustParse("") })
}
