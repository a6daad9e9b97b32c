package syncer

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/five82/checkoff/internal/api"
)

// fakeGateway is an in-memory todos API that counts calls.
type fakeGateway struct {
	mu     sync.Mutex
	todos  []api.Todo
	nextID int

	listCalls, createCalls, updateCalls, deleteCalls int

	listErr, createErr, updateErr, deleteErr error

	// reorder, when set, rewrites the listing order the server returns.
	reorder func([]api.Todo) []api.Todo
}

var _ api.Gateway = (*fakeGateway)(nil)

func newFakeGateway(todos ...api.Todo) *fakeGateway {
	return &fakeGateway{todos: todos, nextID: len(todos) + 1}
}

func (f *fakeGateway) List(ctx context.Context) ([]api.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]api.Todo, len(f.todos))
	copy(out, f.todos)
	if f.reorder != nil {
		out = f.reorder(out)
	}
	return out, nil
}

func (f *fakeGateway) Create(ctx context.Context, title string) (api.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return api.Todo{}, f.createErr
	}
	todo := api.Todo{ID: "t" + strconv.Itoa(f.nextID), Title: title}
	f.nextID++
	f.todos = append(f.todos, todo)
	return todo, nil
}

func (f *fakeGateway) Update(ctx context.Context, id string, patch api.Patch) (api.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.updateErr != nil {
		return api.Todo{}, f.updateErr
	}
	for i := range f.todos {
		if f.todos[i].ID != id {
			continue
		}
		if patch.Title != nil {
			f.todos[i].Title = *patch.Title
		}
		if patch.Completed != nil {
			f.todos[i].Completed = *patch.Completed
		}
		return f.todos[i], nil
	}
	return api.Todo{}, notFound(api.OpUpdate)
}

func (f *fakeGateway) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return notFound(api.OpDelete)
}

func (f *fakeGateway) calls() (list, create, update, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls, f.updateCalls, f.deleteCalls
}

func notFound(op api.Op) error {
	return &api.StatusError{Op: op, Status: http.StatusNotFound, Message: "Todo not found"}
}

// gatedGateway holds every List call until the test hands it a listing.
// Only List is implemented.
type gatedGateway struct {
	api.Gateway
	pending chan chan []api.Todo
}

func newGatedGateway() *gatedGateway {
	return &gatedGateway{pending: make(chan chan []api.Todo)}
}

func (g *gatedGateway) List(ctx context.Context) ([]api.Todo, error) {
	reply := make(chan []api.Todo)
	select {
	case g.pending <- reply:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case items := <-reply:
		return items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
