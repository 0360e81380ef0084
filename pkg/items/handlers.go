// pkg/items/handlers.go
package items

import (
	"context"
	"net/http"

	"github.com/joeydtaylor/steeze-items/pkg/codec"
	"github.com/joeydtaylor/steeze-items/pkg/core"
	manifest "github.com/joeydtaylor/steeze-items/pkg/manifest"
	"github.com/joeydtaylor/steeze-items/pkg/transport/httpx"
	"go.uber.org/zap"
)

const msgDeleted = "Item deleted successfully"

type listResponse struct {
	Success bool   `json:"success"`
	Data    []Item `json:"data"`
	Count   int    `json:"count"`
}

type itemResponse struct {
	Success bool   `json:"success"`
	Data    Item   `json:"data"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// API exposes a Registry as in-process route handlers.
type API struct {
	reg *Registry
	log *zap.Logger
}

func NewAPI(reg *Registry, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{reg: reg, log: log.Named("items")}
}

// Register binds every item operation under its manifest handler name.
func (a *API) Register(hs *core.Handlers) {
	hs.Register(manifest.ItemsList, a.List)
	hs.Register(manifest.ItemsGet, a.Get)
	hs.Register(manifest.ItemsCreate, a.Create)
	hs.Register(manifest.ItemsUpdate, a.Update)
	hs.Register(manifest.ItemsDelete, a.Delete)
}

func (a *API) List(_ context.Context, _ []byte) ([]byte, int, error) {
	list := a.reg.List()
	return reply(listResponse{Success: true, Data: list, Count: len(list)}, http.StatusOK)
}

func (a *API) Get(ctx context.Context, _ []byte) ([]byte, int, error) {
	id, ok := pathID(ctx)
	if !ok {
		return failure(ErrNotFound)
	}
	it, err := a.reg.Get(id)
	if err != nil {
		return failure(err)
	}
	return reply(itemResponse{Success: true, Data: it}, http.StatusOK)
}

func (a *API) Create(_ context.Context, body []byte) ([]byte, int, error) {
	var in CreateInput
	if err := codec.JSON.Unmarshal(body, &in); err != nil {
		return failure(ErrInvalidBody)
	}
	it, err := a.reg.Create(in)
	if err != nil {
		return failure(err)
	}
	a.log.Info("item created", zap.Int("id", it.ID), zap.String("name", it.Name), zap.String("status", it.Status))
	return reply(itemResponse{Success: true, Data: it}, http.StatusCreated)
}

func (a *API) Update(ctx context.Context, body []byte) ([]byte, int, error) {
	id, ok := pathID(ctx)
	if !ok {
		return failure(ErrNotFound)
	}
	// A missing item wins over a malformed body.
	if _, err := a.reg.Get(id); err != nil {
		return failure(err)
	}
	var in UpdateInput
	if err := codec.JSON.Unmarshal(body, &in); err != nil {
		return failure(ErrInvalidBody)
	}
	it, err := a.reg.Update(id, in)
	if err != nil {
		return failure(err)
	}
	a.log.Info("item updated", zap.Int("id", it.ID), zap.String("name", it.Name), zap.String("status", it.Status))
	return reply(itemResponse{Success: true, Data: it}, http.StatusOK)
}

func (a *API) Delete(ctx context.Context, _ []byte) ([]byte, int, error) {
	id, ok := pathID(ctx)
	if !ok {
		return failure(ErrNotFound)
	}
	it, err := a.reg.Delete(id)
	if err != nil {
		return failure(err)
	}
	a.log.Info("item deleted", zap.Int("id", it.ID))
	return reply(itemResponse{Success: true, Data: it, Message: msgDeleted}, http.StatusOK)
}

func pathID(ctx context.Context) (int, bool) {
	return ParseID(httpx.PathParam(ctx, "id"))
}

func reply(v any, status int) ([]byte, int, error) {
	b, err := codec.JSONStrict.Marshal(v)
	if err != nil {
		return nil, 0, err
	}
	return b, status, nil
}

// failure maps registry errors onto status codes. Errors without a Kind are
// returned as-is so the router answers 500.
func failure(err error) ([]byte, int, error) {
	var status int
	switch KindOf(err) {
	case KindInvalidInput:
		status = http.StatusBadRequest
	case KindNotFound:
		status = http.StatusNotFound
	default:
		return nil, 0, err
	}
	return reply(errorResponse{Error: err.Error()}, status)
}
