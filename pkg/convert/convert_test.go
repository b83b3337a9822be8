// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/voxmundi/pkg/convert"
)

func TestYearPrefix(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{date: "1999-10-15", want: 1999},
		{date: "2010", want: 2010},
		{date: "", want: 0},
		{date: "19x9-01-01", want: 0},
		{date: "99", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.YearPrefix(tt.date))
		})
	}
}

func TestToIntD(t *testing.T) {
	assert.Equal(t, 25, convert.ToIntD(" 25 ", 10))
	assert.Equal(t, 10, convert.ToIntD("", 10))
	assert.Equal(t, 10, convert.ToIntD("ten", 10))
	assert.True(t, convert.IsDigits("550"))
	assert.False(t, convert.IsDigits("tt0137523"))
}
