package domain

// Item is one entry of the sample data set.
type Item struct {
	ID       int
	Name     string
	Category string
}

var items = []Item{ //nolint: gochecknoglobals
	{ID: 1, Name: "Item One", Category: "alpha"},
	{ID: 2, Name: "Item Two", Category: "beta"},
	{ID: 3, Name: "Item Three", Category: "gamma"},
}

// Items returns the sample data set. The returned slice is a copy.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)

	return out
}
