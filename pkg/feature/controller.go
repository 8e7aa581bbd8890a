package feature

import "context"

// API is the CRUD surface the controller drives. *Client[T] implements it;
// tests substitute fakes.
type API[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, dto any) (T, error)
	Update(ctx context.Context, id string, dto any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Controller glues a store to an API client: every call dispatches FetchStart
// before the request and FetchSuccess or FetchError after it. Errors are
// recorded in state and also returned so callers can observe failures
// locally.
type Controller[T any] struct {
	store *Store[T]
	api   API[T]
}

// NewController creates a controller over the given store and API.
func NewController[T any](store *Store[T], api API[T]) *Controller[T] {
	return &Controller[T]{store: store, api: api}
}

// Store exposes the underlying store, e.g. for subscriptions.
func (c *Controller[T]) Store() *Store[T] {
	return c.store
}

// State returns the current state.
func (c *Controller[T]) State() State[T] {
	return c.store.State()
}

// Fetch loads a single record into the store.
func (c *Controller[T]) Fetch(ctx context.Context, id string) (T, error) {
	c.store.Dispatch(StartAction[T]())
	out, err := c.api.Get(ctx, id)
	if err != nil {
		c.store.Dispatch(ErrorAction[T](err))
		var zero T
		return zero, err
	}
	c.store.Dispatch(SuccessAction(&out))
	return out, nil
}

// FetchFirst loads the collection and stores only its first element. This
// mirrors the generated list hooks, which discard everything past index
// zero; an empty collection stores nil.
func (c *Controller[T]) FetchFirst(ctx context.Context) (T, error) {
	c.store.Dispatch(StartAction[T]())
	list, err := c.api.List(ctx)
	if err != nil {
		c.store.Dispatch(ErrorAction[T](err))
		var zero T
		return zero, err
	}
	if len(list) == 0 {
		c.store.Dispatch(SuccessAction[T](nil))
		var zero T
		return zero, nil
	}
	first := list[0]
	c.store.Dispatch(SuccessAction(&first))
	return first, nil
}

// Create stores a new record and loads the server's copy of it.
func (c *Controller[T]) Create(ctx context.Context, dto any) (T, error) {
	c.store.Dispatch(StartAction[T]())
	out, err := c.api.Create(ctx, dto)
	if err != nil {
		c.store.Dispatch(ErrorAction[T](err))
		var zero T
		return zero, err
	}
	c.store.Dispatch(SuccessAction(&out))
	return out, nil
}

// Update patches a record and loads the server's merged copy.
func (c *Controller[T]) Update(ctx context.Context, id string, dto any) (T, error) {
	c.store.Dispatch(StartAction[T]())
	out, err := c.api.Update(ctx, id, dto)
	if err != nil {
		c.store.Dispatch(ErrorAction[T](err))
		var zero T
		return zero, err
	}
	c.store.Dispatch(SuccessAction(&out))
	return out, nil
}

// Delete removes a record and clears the loaded data.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	c.store.Dispatch(StartAction[T]())
	if err := c.api.Delete(ctx, id); err != nil {
		c.store.Dispatch(ErrorAction[T](err))
		return err
	}
	c.store.Dispatch(SuccessAction[T](nil))
	return nil
}

// Merge applies a local partial update without touching the network.
func (c *Controller[T]) Merge(partial map[string]any) State[T] {
	return c.store.Dispatch(UpdateAction[T](partial))
}

// Reset returns the module to its initial state.
func (c *Controller[T]) Reset() State[T] {
	return c.store.Dispatch(ResetAction[T]())
}
