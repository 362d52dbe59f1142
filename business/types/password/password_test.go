package password_test

import (
	"testing"

	"github.com/jcpaschoal/biadmin/business/types/password"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	_, err := password.Parse("short")
	assert.Error(t, err)

	p, err := password.Parse("gophers")
	assert.NoError(t, err)
	assert.Equal(t, "gophers", p.String())

	// Runes, not bytes, are counted.
	_, err = password.Parse("ñandú")
	assert.Error(t, err)
}
