package role_test

import (
	"testing"

	"github.com/jcpaschoal/biadmin/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, v := range []string{"admin", "ADMIN", " Admin "} {
		r, err := role.Parse(v)
		require.NoError(t, err, v)
		assert.True(t, r.Equal(role.Admin))
	}

	r, err := role.Parse("user")
	require.NoError(t, err)
	assert.Equal(t, role.User, r)

	_, err = role.Parse("superuser")
	assert.Error(t, err)

	assert.Panics(t, func() { role.MustParse("") })
}
