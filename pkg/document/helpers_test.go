package document_test

import (
	"fmt"

	"github.com/aretw0/draftkit/pkg/document"
)

// sequentialKeys returns an engine whose block keys are k1, k2, ...
func sequentialKeys() *document.Engine {
	n := 0
	return document.NewEngine(document.WithKeyGenerator(func() string {
		n++
		return fmt.Sprintf("k%d", n)
	}))
}
