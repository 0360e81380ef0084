// pkg/items/item.go
package items

// DefaultStatus is applied on create when no status is supplied.
const DefaultStatus = "active"

// Item is the single resource managed by the service.
type Item struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// CreateInput carries the fields accepted on create. Nil means "not supplied".
type CreateInput struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

// UpdateInput carries a partial overwrite. Only non-nil, non-empty fields are applied.
type UpdateInput struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

// Seed returns the records every registry starts with.
func Seed() []Item {
	return []Item{
		{ID: 1, Name: "Practice Item 1", Status: "active"},
		{ID: 2, Name: "Practice Item 2", Status: "inactive"},
		{ID: 3, Name: "Practice Item 3", Status: "active"},
	}
}

// Str is a small helper for building inputs.
func Str(s string) *string { return &s }

func present(p *string) bool { return p != nil && *p != "" }
