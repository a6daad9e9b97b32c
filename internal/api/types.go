package api

// Todo mirrors a single record returned by the todos API.
type Todo struct {
	ID        string `json:"_id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Patch is a partial update. Nil fields are left untouched by the server.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TitlePatch builds a patch that only renames a todo.
func TitlePatch(title string) Patch {
	return Patch{Title: &title}
}

// CompletedPatch builds a patch that only sets the completion flag.
func CompletedPatch(completed bool) Patch {
	return Patch{Completed: &completed}
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// ListResponse mirrors GET {base}.
type ListResponse struct {
	Todos []Todo `json:"todos"`
}

// TodoResponse mirrors the create and update payloads.
type TodoResponse struct {
	Todo Todo `json:"todo"`
}

// ErrorResponse is the body the API sends alongside a non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
