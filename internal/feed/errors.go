package feed

import (
	"errors"
	"fmt"
)

// ErrorKind clasifica las fallas del agregador
type ErrorKind string

const (
	// SourceUnavailable indica que el catálogo o el almacén de medios falló.
	SourceUnavailable ErrorKind = "SOURCE_UNAVAILABLE"

	// PartialAssetMismatch indica un producto sin registro de medios. Se resuelve
	// con la miniatura del catálogo y nunca se propaga.
	PartialAssetMismatch ErrorKind = "PARTIAL_ASSET_MISMATCH"
)

// ErrInvalidPage se retorna para índices negativos o tamaños no positivos
var ErrInvalidPage = errors.New("invalid page request")

// SourceError envuelve una falla de una fuente de datos
type SourceError struct {
	Kind   ErrorKind
	Source string
	Page   int
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s page %d: %v", e.Kind, e.Source, e.Page, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsSourceUnavailable reporta si err es una falla de fuente, incluso envuelta
func IsSourceUnavailable(err error) bool {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind == SourceUnavailable
	}
	return false
}
