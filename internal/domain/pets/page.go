package pets

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest describe la página pedida. El único orden estable entre
// variantes es por id, así que Desc alcanza como spec de orden.
type PageRequest struct {
	Page int
	Size int
	Desc bool
}

// Normalize acota page/size a valores sanos. Los adapters la aplican antes
// de calcular offset/limit para que todos pagineen igual.
func (pr PageRequest) Normalize() PageRequest {
	if pr.Page < 0 {
		pr.Page = 0
	}
	if pr.Size <= 0 {
		pr.Size = DefaultPageSize
	}
	if pr.Size > MaxPageSize {
		pr.Size = MaxPageSize
	}
	return pr
}

func (pr PageRequest) Offset() int { return pr.Page * pr.Size }
func (pr PageRequest) Limit() int  { return pr.Size }

// Page es el resultado paginado del repo. Content guarda valores Pet sin
// borrar la variante: la conversión a wire corre por item, después.
type Page struct {
	Content       []Pet
	TotalElements int64
	Number        int
	Size          int
}

func (p Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}
