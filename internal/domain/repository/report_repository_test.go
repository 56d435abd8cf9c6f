package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/textfold"
)

func TestProductFilter_ExcludesName(t *testing.T) {
	f := repository.ProductFilter{ExcludeNames: textfold.SplitCSV("acai, ete ,nandu, garcon")}

	cases := []struct {
		name string
		want bool
	}{
		{"Açaí Bowl", true},
		{"Vestido ÉTÉ", true},
		{"Bolso  Ñandú", true},
		{"Blusa Garçon", true},
		{"Camisa", false},
		{"Pantalón", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.ExcludesName(tc.name))
		})
	}

	assert.False(t, repository.ProductFilter{}.ExcludesName("Açaí Bowl"), "sin términos no excluye")
}
