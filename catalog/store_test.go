package catalog

import (
	"reflect"
	"testing"
)

func TestOldestFirst(t *testing.T) {
	tests := []struct {
		name string
		ids  []int64
		want []int64
	}{
		{
			// The query returns newest first; the session model wants
			// oldest first.
			name: "two recent purchases",
			ids:  []int64{42, 7},
			want: []int64{7, 42},
		},
		{
			name: "odd length",
			ids:  []int64{3, 2, 1},
			want: []int64{1, 2, 3},
		},
		{
			name: "single purchase",
			ids:  []int64{5},
			want: []int64{5},
		},
		{
			name: "no purchases",
			ids:  nil,
			want: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oldestFirst(tt.ids)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("oldestFirst(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}
