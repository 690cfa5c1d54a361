package dto

// Paginado é o envelope de listas paginadas do backend.
type Paginado[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Pagina int `json:"pagina"`
	Limite int `json:"limite"`
}

func (p Paginado[T]) TotalPaginas() int {
	if p.Limite <= 0 {
		return 1
	}
	n := (p.Total + p.Limite - 1) / p.Limite
	if n < 1 {
		return 1
	}
	return n
}

func (p Paginado[T]) TemAnterior() bool {
	return p.Pagina > 1
}

func (p Paginado[T]) TemProxima() bool {
	return p.Pagina < p.TotalPaginas()
}
