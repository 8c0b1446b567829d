// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntSlice(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		expect []int
	}{
		{name: "repeated_values", input: []string{"1", "7", "12"}, expect: []int{1, 7, 12}},
		{name: "skips_garbage", input: []string{"1", "x", "", "3"}, expect: []int{1, 3}},
		{name: "all_invalid", input: []string{"a", "b"}, expect: nil},
		{name: "empty", input: nil, expect: nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expect, IntSlice(test.input))
		})
	}
}

func TestStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, StringSlice(" a, b ,"))
	assert.Nil(t, StringSlice(""))
	assert.Nil(t, StringSlice(" , "))
}
