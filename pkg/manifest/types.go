package manifest

// HandlerType enumerates the supported handler kinds.
type HandlerType string

const (
	// HandlerInproc dispatches to a handler registered in-process by name.
	HandlerInproc HandlerType = "inproc"
)

// Handler names registered by the items service.
const (
	ItemsList   = "items.list"
	ItemsGet    = "items.get"
	ItemsCreate = "items.create"
	ItemsUpdate = "items.update"
	ItemsDelete = "items.delete"
)

// TagLogBody marks a route whose small JSON request bodies may be access-logged.
const TagLogBody = "log_body"

// HasTag reports whether r carries tag.
func (r Route) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
