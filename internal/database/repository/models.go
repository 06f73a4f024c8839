package repository

// SalesPerson represents a sales_people row. Position preserves registry
// order across restarts.
type SalesPerson struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Position  int
}

// Region represents a regions row plus its territory set.
type Region struct {
	Name          string
	Color         string
	SalesPersonID string
	Position      int
	Territories   []string
}
