package order_test

import (
	"testing"

	"github.com/jcpaschoal/biadmin/business/sdk/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fields = map[string]string{
	"name":       "b",
	"created_at": "e",
}

func TestParse(t *testing.T) {
	def := order.NewBy("e", order.DESC)

	tests := []struct {
		name    string
		orderBy string
		want    order.By
		wantErr bool
	}{
		{name: "default", orderBy: "", want: def},
		{name: "field only", orderBy: "name", want: order.NewBy("b", order.ASC)},
		{name: "lower direction", orderBy: "created_at, desc", want: order.NewBy("e", order.DESC)},
		{name: "unknown field", orderBy: "email", wantErr: true},
		{name: "unknown direction", orderBy: "name,UP", wantErr: true},
		{name: "too many parts", orderBy: "name,ASC,x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := order.Parse(fields, tt.orderBy, def)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewByInvalidDirection(t *testing.T) {
	assert.Equal(t, order.ASC, order.NewBy("b", "sideways").Direction)
}
