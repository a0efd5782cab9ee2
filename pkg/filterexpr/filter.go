package filterexpr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
)

// Msg wraps request DTOs that expose filter and order_by raw inputs.
type Msg interface {
	GetFilter() string
	GetOrderBy() string
}

// ValueKind describes the kind of value a filter variable holds.
type ValueKind string

const (
	KindString    ValueKind = "string"
	KindNumber    ValueKind = "number"
	KindTimestamp ValueKind = "timestamp"
	KindBool      ValueKind = "bool"
)

// ResourceSchema aggregates filtering and ordering rules for a resource.
type ResourceSchema struct {
	Filter map[string]ValueKind
	Order  OrderSchema
}

// Query is the compiled form of a filter/order_by pair.
type Query struct {
	Predicate *Predicate
	Order     Order
}

// Bind compiles the request filter and parses its order_by against schema.
func Bind[M Msg](msg M, schema ResourceSchema) (Query, error) {
	pred, err := Compile(msg.GetFilter(), schema.Filter)
	if err != nil {
		return Query{}, fmt.Errorf("filter: %w", err)
	}
	order, err := ParseOrderBy(msg.GetOrderBy(), schema.Order)
	if err != nil {
		return Query{}, fmt.Errorf("order_by: %w", err)
	}
	return Query{Predicate: pred, Order: order}, nil
}

// Predicate is a type-checked boolean CEL program. A nil Predicate matches everything.
type Predicate struct {
	source  string
	program cel.Program
	fields  map[string]ValueKind
}

// Compile parses and type-checks filter against the declared variables.
// An empty filter yields a nil Predicate.
func Compile(filter string, fields map[string]ValueKind) (*Predicate, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}
	if len(fields) == 0 {
		return nil, errors.New("filter schema has no fields defined")
	}

	env, err := buildEnv(fields)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter must evaluate to bool, got %s", ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}
	return &Predicate{source: filter, program: program, fields: fields}, nil
}

// String returns the filter source.
func (p *Predicate) String() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Match evaluates the predicate against vars. Every declared field must be present.
func (p *Predicate) Match(vars map[string]any) (bool, error) {
	if p == nil {
		return true, nil
	}
	for name, kind := range p.fields {
		value, ok := vars[name]
		if !ok {
			return false, fmt.Errorf("missing value for field %q", name)
		}
		if err := validateValue(kind, value); err != nil {
			return false, fmt.Errorf("field %q: %w", name, err)
		}
	}

	out, _, err := p.program.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("evaluate filter: %w", err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter produced %T, want bool", out.Value())
	}
	return matched, nil
}

func buildEnv(fields map[string]ValueKind) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields)+1)
	for name, kind := range fields {
		celType, err := celTypeForKind(kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber:
		return cel.DoubleType, nil
	case KindTimestamp:
		return cel.TimestampType, nil
	case KindBool:
		return cel.BoolType, nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}

func validateValue(kind ValueKind, value any) error {
	var ok bool
	switch kind {
	case KindString:
		_, ok = value.(string)
	case KindNumber:
		_, ok = value.(float64)
	case KindTimestamp:
		_, ok = value.(time.Time)
	case KindBool:
		_, ok = value.(bool)
	default:
		return fmt.Errorf("unsupported field kind %s", kind)
	}
	if !ok {
		return fmt.Errorf("expected %s value, got %T", kind, value)
	}
	return nil
}
