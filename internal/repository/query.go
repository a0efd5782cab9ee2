package repository

// ListActivityQuery holds parameters for listing feed activities.
type ListActivityQuery struct {
	Filter  string
	OrderBy string
	Limit   int
}

func (q *ListActivityQuery) GetFilter() string { return q.Filter }

func (q *ListActivityQuery) GetOrderBy() string { return q.OrderBy }
