package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	s := &MinioImageStore{bucket: "productos", baseURL: "https://cdn.boutique.test"}
	assert.Equal(t, "https://cdn.boutique.test/productos/p1/abc.jpg", s.objectURL("p1/abc.jpg"))
}
