package page_test

import (
	"testing"

	"github.com/jcpaschoal/biadmin/business/sdk/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		rows    string
		number  int
		perPage int
		offset  int
		wantErr bool
	}{
		{name: "defaults", number: 1, perPage: 10, offset: 0},
		{name: "third page", page: "3", rows: "20", number: 3, perPage: 20, offset: 40},
		{name: "max rows", page: "1", rows: "100", number: 1, perPage: 100},
		{name: "zero page", page: "0", wantErr: true},
		{name: "too many rows", rows: "101", wantErr: true},
		{name: "not a number", page: "one", wantErr: true},
		{name: "negative rows", rows: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg, err := page.Parse(tt.page, tt.rows)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.number, pg.Number())
			assert.Equal(t, tt.perPage, pg.RowsPerPage())
			assert.Equal(t, tt.offset, pg.Offset())
		})
	}
}
