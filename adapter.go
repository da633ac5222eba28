package toon

import "github.com/go-toon/toon/internal/normalize"

// Encodable is the out-of-scope user-defined type normalization adapter
// collaborator: a type implementing it controls its own projection into
// the value tree instead of going through reflection.
type Encodable = normalize.Encodable
