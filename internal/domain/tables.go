package domain

// Tables lists every model managed by the schema manager, parents first.
var Tables = []interface{}{
	&Product{},
	&Order{},
}
