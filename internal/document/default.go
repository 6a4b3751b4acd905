package document

import (
	"bytes"
	_ "embed"
)

//go:embed default_config.json
var defaultConfigJSON []byte

// Default returns a fresh copy of the bundled default document, the
// starting point for a new editing session and the target of reset.
func Default() *Document {
	doc, err := Load(bytes.NewReader(defaultConfigJSON))
	if err != nil {
		// The bundled document ships with the binary; a load failure is
		// a build defect, not a runtime condition.
		panic("document: bundled default is invalid: " + err.Error())
	}
	return doc
}
