package name_test

import (
	"strings"
	"testing"

	"github.com/jcpaschoal/biadmin/business/types/name"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "plain", value: "Acme", want: "Acme"},
		{name: "trimmed", value: "  Acme Corp ", want: "Acme Corp"},
		{name: "max length", value: strings.Repeat("a", name.MaxLength), want: strings.Repeat("a", name.MaxLength)},
		{name: "empty", value: "", wantErr: true},
		{name: "blank", value: "   ", wantErr: true},
		{name: "too long", value: strings.Repeat("a", name.MaxLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := name.Parse(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseNull(t *testing.T) {
	n, err := name.ParseNull("")
	require.NoError(t, err)
	assert.False(t, n.Valid())
	assert.False(t, name.ToSQLNullString(n).Valid)

	n, err = name.ParseNull(" Bill ")
	require.NoError(t, err)
	assert.True(t, n.Valid())
	assert.Equal(t, "Bill", n.String())

	_, err = name.ParseNull(strings.Repeat("b", name.MaxLength+1))
	assert.Error(t, err)
}
