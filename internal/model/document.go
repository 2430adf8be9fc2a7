package model

// Document is the single persisted object holding the code pool and the bindings.
// A code appears in at most one of Codes or Bindings.
type Document struct {
	Codes    []string          `json:"codes"`
	Bindings map[string]string `json:"bindings"`
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Codes:    []string{},
		Bindings: map[string]string{},
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return NewDocument()
	}

	clone := &Document{
		Codes:    make([]string, len(d.Codes)),
		Bindings: make(map[string]string, len(d.Bindings)),
	}
	copy(clone.Codes, d.Codes)
	for code, game := range d.Bindings {
		clone.Bindings[code] = game
	}

	return clone
}

// EnsureDefaults replaces nil collections with empty ones so the document
// always serialises as {"codes": [], "bindings": {}}.
func (d *Document) EnsureDefaults() {
	if d.Codes == nil {
		d.Codes = []string{}
	}
	if d.Bindings == nil {
		d.Bindings = map[string]string{}
	}
}
