// Package cel evaluates CEL filter expressions against plant records.
package cel

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"

	"github.com/herbverse/plantdb"
)

// Evaluator struct contains the CEL expression & the cel program used to evaluate expression vs. a plant.
type Evaluator struct {
	Name       string
	Expression string
	program    cel.Program
}

// NewEvaluator compiles a boolean expression over the variable `plant`, a map keyed by the plant
// table's column names, e.g. `plant.difficulty_level == "Easy" && "India" in plant.region`.
func NewEvaluator(name string, expression string) (*Evaluator, error) {
	if name == "" {
		return nil, fmt.Errorf("name can't be empty string")
	}
	if expression == "" {
		return nil, fmt.Errorf("expression can't be empty string")
	}

	env, err := cel.NewEnv(
		cel.Variable("plant", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating CEL environment: %v", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("error compiling CEL expression: %v", issues.Err())
	}
	if t := ast.OutputType(); !t.IsExactType(cel.BoolType) && !t.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("CEL expression must produce a bool, got %v", t)
	}
	p, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("error creating Program: %v", err)
	}
	return &Evaluator{
		Name:       name,
		Expression: expression,
		program:    p,
	}, nil
}

// Evaluate runs the expression against a plant given as its column map.
func (e *Evaluator) Evaluate(plant map[string]any) (bool, error) {
	out, _, err := e.program.Eval(map[string]any{
		"plant": plant,
	})
	if err != nil {
		return false, fmt.Errorf("error evaluating CEL expression: %v", err)
	}
	nv, err := out.ConvertToNative(reflect.TypeOf(true))
	if err != nil {
		return false, fmt.Errorf("error ConvertToNative, got err: %v", err)
	}
	if v, ok := nv.(bool); !ok {
		return false, fmt.Errorf("error converting to bool, nv: %v", nv)
	} else {
		return v, nil
	}
}

// EvaluateRecord converts rec to its column map and evaluates the expression against it.
func (e *Evaluator) EvaluateRecord(rec *plantdb.PlantRecord) (bool, error) {
	m, err := FromRecord(rec)
	if err != nil {
		return false, err
	}
	return e.Evaluate(m)
}

// FromRecord converts a record to the map form the expressions see. List fields that are nil
// become empty lists so `in` and macros work on them.
func FromRecord(rec *plantdb.PlantRecord) (map[string]any, error) {
	ba, err := plantdb.DefaultMarshaler.Marshal(rec)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := plantdb.DefaultMarshaler.Unmarshal(ba, &m); err != nil {
		return nil, err
	}
	for k, v := range m {
		if v == nil {
			m[k] = []any{}
		}
	}
	return m, nil
}
