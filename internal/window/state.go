package window

import "fmt"

type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

const (
	// VisibilityThreshold es la fracción del viewport que un item debe ocupar para ser el actual
	VisibilityThreshold = 0.6

	DefaultEndReachedThreshold = 3

	// RetryMessage se muestra cuando falla una página posterior a la primera
	RetryMessage = "Unable to load more items. Keep scrolling to retry."
)

// WindowState es una foto del estado del controlador
type WindowState struct {
	CurrentIndex    int       `json:"current_index"`
	Direction       Direction `json:"direction"`
	LoadedItemCount int       `json:"loaded_item_count"`
	IsFetchingMore  bool      `json:"is_fetching_more"`
	HasMore         bool      `json:"has_more"`
	Page            int       `json:"next_page"`
	Err             error     `json:"-"`
}

// Empty indica que no hay nada que mostrar y la vista debe ofrecer recargar
func (s WindowState) Empty() bool {
	return s.LoadedItemCount == 0
}

// ErrorMessage retorna el mensaje para el usuario, o "" si no hay error
func (s WindowState) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return RetryMessage
}

// FetchError es una falla reintentable al pedir una página. Es distinta del agotamiento.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("load page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable siempre es true: el próximo avance hacia el final reintenta la misma página
func (e *FetchError) Retryable() bool {
	return true
}
