// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/silo/pkg/slug"
)

/*
TestFrom verifies Unicode normalization and hyphenation rules.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Laptop", "laptop"},
		{"spaces", "Spare Parts", "spare-parts"},
		{"accents", "Équipement Réseau", "equipement-reseau"},
		{"punctuation", "19\" Rack (HP)", "19-rack-hp"},
		{"collapse_hyphens", "a -- b", "a-b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestLabel verifies the silo ID label form: upper-case, no hyphens.
*/
func TestLabel(t *testing.T) {
	assert.Equal(t, "LAPTOP", slug.Label("Laptop"))
	assert.Equal(t, "SPAREPARTS", slug.Label("Spare Parts"))
	assert.Equal(t, "EQUIPEMENT", slug.Label("Équipement"))
}
