package engine

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"sync"

	sqlite "modernc.org/sqlite"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterSphereFunctions registers asin, sqrt, sin, cos, radians and pow with
// the driver so they are available on new connections opened after this call.
// Note: existing open connections will not see new functions.
func RegisterSphereFunctions(_ *sql.DB) error {
	registerOnce.Do(func() {
		unary := map[string]func(float64) float64{
			"asin":    math.Asin,
			"sqrt":    math.Sqrt,
			"sin":     math.Sin,
			"cos":     math.Cos,
			"radians": radians,
		}
		for name, fn := range unary {
			if err := sqlite.RegisterDeterministicScalarFunction(name, 1, unaryImpl(name, fn)); err != nil {
				registerErr = fmt.Errorf("engine: register %s: %w", name, err)
				return
			}
		}
		if err := sqlite.RegisterDeterministicScalarFunction("pow", 2, powImpl); err != nil {
			registerErr = fmt.Errorf("engine: register pow: %w", err)
		}
	})
	return registerErr
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func unaryImpl(name string, fn func(float64) float64) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
		}
		x, ok, err := asFloat(name, args[0])
		if err != nil || !ok {
			return nil, err
		}
		return fn(x), nil
	}
}

func powImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("pow: expected 2 arguments, got %d", len(args))
	}
	x, ok, err := asFloat("pow", args[0])
	if err != nil || !ok {
		return nil, err
	}
	y, ok, err := asFloat("pow", args[1])
	if err != nil || !ok {
		return nil, err
	}
	return math.Pow(x, y), nil
}

// asFloat converts a SQLite argument to float64. NULL yields ok=false so the
// caller can propagate NULL.
func asFloat(name string, arg driver.Value) (float64, bool, error) {
	switch v := arg.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case int64:
		return float64(v), true, nil
	default:
		return 0, false, fmt.Errorf("%s: unsupported argument type %T; want REAL or INTEGER", name, arg)
	}
}
