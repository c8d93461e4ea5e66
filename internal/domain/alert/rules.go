package alert

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"prepstock/internal/domain/ingredient"
)

// Rule is a compiled alert condition evaluated against one ingredient.
// Conditions are CEL expressions over the variables:
//
//	name           string   ingredient name
//	unit           string   measurement unit
//	stock          double   packs on hand
//	pack_quantity  double   natural units per pack
//	days_to_expiry int      whole days until expiry (negative if past)
type Rule struct {
	Name      string
	AlertType Type
	Message   string // format string receiving the ingredient name
	program   cel.Program
}

// DefaultExpiryDays is the warning window used by the built-in rules.
const DefaultExpiryDays = 7

// NewRule compiles a CEL condition into a Rule.
func NewRule(name string, alertType Type, message, condition string) (*Rule, error) {
	env, err := cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("unit", cel.StringType),
		cel.Variable("stock", cel.DoubleType),
		cel.Variable("pack_quantity", cel.DoubleType),
		cel.Variable("days_to_expiry", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("create rule env: %w", err)
	}

	ast, issues := env.Compile(condition)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile rule %q: %w", name, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("rule %q must evaluate to bool, got %s", name, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build rule %q: %w", name, err)
	}

	return &Rule{
		Name:      name,
		AlertType: alertType,
		Message:   message,
		program:   program,
	}, nil
}

// Matches evaluates the rule against an ingredient snapshot.
func (r *Rule) Matches(ing *ingredient.Ingredient, daysToExpiry int) (bool, error) {
	out, _, err := r.program.Eval(map[string]any{
		"name":           ing.Name,
		"unit":           string(ing.Unit),
		"stock":          ing.Stock.InexactFloat64(),
		"pack_quantity":  ing.PackQuantity.InexactFloat64(),
		"days_to_expiry": daysToExpiry,
	})
	if err != nil {
		return false, fmt.Errorf("eval rule %q: %w", r.Name, err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q returned %T, want bool", r.Name, out.Value())
	}
	return matched, nil
}

// DefaultRules returns the built-in rule set: stock expiring within a week
// and stock fully depleted.
func DefaultRules() ([]*Rule, error) {
	expiry, err := NewRule(
		"expiring-soon",
		TypeExpirationWarning,
		"%s expires within the next 7 days",
		fmt.Sprintf("days_to_expiry >= 0 && days_to_expiry <= %d", DefaultExpiryDays),
	)
	if err != nil {
		return nil, err
	}

	depleted, err := NewRule(
		"out-of-stock",
		TypeOutOfStock,
		"%s is out of stock",
		"stock == 0.0",
	)
	if err != nil {
		return nil, err
	}

	return []*Rule{expiry, depleted}, nil
}
