// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/voxmundi/pkg/slice"
)

func TestUnique(t *testing.T) {
	assert.Nil(t, slice.Unique[string](nil))
	assert.Equal(t, []string{"b", "a", "c"}, slice.Unique([]string{"b", "a", "b", "c", "a"}))
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []int{1, 3}, slice.Difference([]int{1, 2, 3}, []int{2, 4}))
	assert.Empty(t, slice.Difference([]int{1}, []int{1}))
}

func TestMapFilter(t *testing.T) {
	upper := slice.Map([]string{"bach", "", "ravel"}, strings.ToUpper)
	assert.Equal(t, []string{"BACH", "", "RAVEL"}, upper)

	nonEmpty := slice.Filter(upper, func(s string) bool { return s != "" })
	assert.Equal(t, []string{"BACH", "RAVEL"}, nonEmpty)
}
