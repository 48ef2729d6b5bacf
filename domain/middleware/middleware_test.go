package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
)

func echoFormula() formula.Formula {
	return formula.NewBuilder("echo").
		WithHandler(func(_ context.Context, in json.RawMessage) (formula.Result, error) {
			return formula.OK(in, nil), nil
		}).
		MustBuild()
}

func recorder(name string, order *[]string) middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, ec *middleware.ExecutionContext) (formula.Result, error) {
			*order = append(*order, "before-"+name)
			res, err := next(ctx, ec)
			*order = append(*order, "after-"+name)
			return res, err
		}
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	h := middleware.Chain(recorder("1", &order), recorder("2", &order))(middleware.Evaluate)

	res, err := h(context.Background(), &middleware.ExecutionContext{
		Formula: echoFormula(),
		Input:   json.RawMessage(`{"a":1}`),
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Outputs) != `{"a":1}` {
		t.Errorf("Outputs = %s", res.Outputs)
	}

	want := []string{"before-1", "before-2", "after-2", "after-1"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestChain_ShortCircuit(t *testing.T) {
	t.Parallel()

	errBlocked := errors.New("blocked")
	block := func(middleware.Handler) middleware.Handler {
		return func(context.Context, *middleware.ExecutionContext) (formula.Result, error) {
			return formula.Result{}, errBlocked
		}
	}

	called := false
	final := func(context.Context, *middleware.ExecutionContext) (formula.Result, error) {
		called = true
		return formula.Result{}, nil
	}

	_, err := middleware.Chain(block)(final)(context.Background(), &middleware.ExecutionContext{})
	if !errors.Is(err, errBlocked) {
		t.Errorf("err = %v, want errBlocked", err)
	}
	if called {
		t.Error("final handler should not run")
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	var order []string
	r := middleware.NewRegistry().
		Use("logging", recorder("logging", &order)).
		Use("cache", recorder("cache", &order))

	if r.Len() != 2 {
		t.Errorf("Len() = %d", r.Len())
	}
	if names := r.Names(); names[0] != "logging" || names[1] != "cache" {
		t.Errorf("Names() = %v", names)
	}

	if _, err := r.Chain()(middleware.Evaluate)(context.Background(), &middleware.ExecutionContext{
		Formula: echoFormula(),
		Input:   json.RawMessage(`{}`),
	}); err != nil {
		t.Fatal(err)
	}
	if len(order) != 4 || order[0] != "before-logging" {
		t.Errorf("order = %v", order)
	}

	if middleware.NewRegistry().Chain() == nil {
		t.Error("empty registry chain should be Noop")
	}
}
