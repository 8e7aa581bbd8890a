package feature

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeAPI scripts each CRUD call for controller tests.
type fakeAPI struct {
	list   func(ctx context.Context) ([]widget, error)
	get    func(ctx context.Context, id string) (widget, error)
	create func(ctx context.Context, dto any) (widget, error)
	update func(ctx context.Context, id string, dto any) (widget, error)
	del    func(ctx context.Context, id string) error
}

func (f *fakeAPI) List(ctx context.Context) ([]widget, error) { return f.list(ctx) }
func (f *fakeAPI) Get(ctx context.Context, id string) (widget, error) {
	return f.get(ctx, id)
}
func (f *fakeAPI) Create(ctx context.Context, dto any) (widget, error) {
	return f.create(ctx, dto)
}
func (f *fakeAPI) Update(ctx context.Context, id string, dto any) (widget, error) {
	return f.update(ctx, id, dto)
}
func (f *fakeAPI) Delete(ctx context.Context, id string) error { return f.del(ctx, id) }

func TestFetchTransitionsThroughLoading(t *testing.T) {
	now := time.Now().UTC()
	want := widget{ID: "t1", CreatedAt: now, UpdatedAt: now}

	store := NewStore[widget]()
	ctrl := NewController[widget](store, &fakeAPI{
		get: func(context.Context, string) (widget, error) { return want, nil },
	})

	var loadingSeq []bool
	store.Subscribe(func(s State[widget]) {
		loadingSeq = append(loadingSeq, s.Loading)
	})

	if store.State().Loading {
		t.Fatalf("expected loading false before fetch")
	}

	got, err := ctrl.Fetch(context.Background(), "t1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.ID != "t1" {
		t.Fatalf("unexpected result: %+v", got)
	}

	if len(loadingSeq) != 2 || !loadingSeq[0] || loadingSeq[1] {
		t.Fatalf("expected loading false -> true -> false, observed %v", loadingSeq)
	}

	final := store.State()
	if final.Err != nil {
		t.Fatalf("expected nil error, got %v", final.Err)
	}
	if final.Data == nil || *final.Data != want {
		t.Fatalf("expected fetched widget in state, got %+v", final.Data)
	}
}

func TestFetchErrorIsRecordedAndReturned(t *testing.T) {
	boom := errors.New("boom")

	store := NewStore[widget]()
	ctrl := NewController[widget](store, &fakeAPI{
		get: func(context.Context, string) (widget, error) { return widget{}, boom },
	})

	_, err := ctrl.Fetch(context.Background(), "t1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected error returned to caller, got %v", err)
	}

	final := store.State()
	if final.Loading {
		t.Fatalf("expected loading cleared after error")
	}
	if final.Data != nil {
		t.Fatalf("expected no data, got %+v", final.Data)
	}
	if final.Err == nil || final.Err.Error() != "boom" {
		t.Fatalf("expected boom recorded in state, got %v", final.Err)
	}
}

func TestFetchFirstStoresOnlyFirstElement(t *testing.T) {
	store := NewStore[widget]()
	ctrl := NewController[widget](store, &fakeAPI{
		list: func(context.Context) ([]widget, error) {
			return []widget{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	})

	got, err := ctrl.FetchFirst(context.Background())
	if err != nil {
		t.Fatalf("fetch first: %v", err)
	}
	if got.ID != "a" {
		t.Fatalf("expected first element, got %+v", got)
	}
	if data := store.State().Data; data == nil || data.ID != "a" {
		t.Fatalf("expected only first element stored, got %+v", data)
	}
}

func TestFetchFirstWithEmptyCollectionStoresNil(t *testing.T) {
	store := NewStore[widget]()
	ctrl := NewController[widget](store, &fakeAPI{
		list: func(context.Context) ([]widget, error) { return nil, nil },
	})

	if _, err := ctrl.FetchFirst(context.Background()); err != nil {
		t.Fatalf("fetch first: %v", err)
	}
	s := store.State()
	if s.Data != nil || s.Err != nil || s.Loading {
		t.Fatalf("expected empty success state, got %+v", s)
	}
}

func TestCreateAndUpdateStoreServerCopy(t *testing.T) {
	store := NewStore[widget]()
	ctrl := NewController[widget](store, &fakeAPI{
		create: func(_ context.Context, dto any) (widget, error) {
			return widget{ID: "srv-1", Name: "created"}, nil
		},
		update: func(_ context.Context, id string, dto any) (widget, error) {
			return widget{ID: id, Name: "patched"}, nil
		},
	})

	if _, err := ctrl.Create(context.Background(), map[string]string{"name": "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if data := store.State().Data; data == nil || data.Name != "created" {
		t.Fatalf("expected created record in state, got %+v", data)
	}

	if _, err := ctrl.Update(context.Background(), "srv-1", map[string]string{"name": "y"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if data := store.State().Data; data == nil || data.Name != "patched" {
		t.Fatalf("expected patched record in state, got %+v", data)
	}
}

func TestDeleteClearsData(t *testing.T) {
	store := NewStore[widget]()
	store.Dispatch(SuccessAction(&widget{ID: "w1"}))

	ctrl := NewController[widget](store, &fakeAPI{
		del: func(context.Context, string) error { return nil },
	})

	if err := ctrl.Delete(context.Background(), "w1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if store.State().Data != nil {
		t.Fatalf("expected data cleared after delete")
	}
}

func TestMergeAppliesLocalPartial(t *testing.T) {
	store := NewStore[widget]()
	store.Dispatch(SuccessAction(&widget{ID: "w1", Name: "old", Count: 4}))

	ctrl := NewController[widget](store, &fakeAPI{})
	next := ctrl.Merge(map[string]any{"name": "new"})

	if next.Data == nil || next.Data.Name != "new" || next.Data.Count != 4 {
		t.Fatalf("unexpected merged state: %+v", next.Data)
	}
}
