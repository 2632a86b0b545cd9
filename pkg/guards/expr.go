package guards

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprEnv is the evaluation environment visible to guard expressions.
// param(key) resolves path parameters with query fallback and returns ""
// for missing keys, which keeps comparisons well-defined.
func exprEnv(req *domain.TransitionRequest) map[string]any {
	return map[string]any{
		"target": req.Target,
		"origin": req.Origin,
		"params": req.Params,
		"query":  req.Query,
		"param":  func(key string) string { return req.Param(key) },
	}
}

// Expr compiles a boolean predicate over the transition request into a guard.
// The expression sees `target`, `origin`, `params`, `query` and the helper
// `param(key)`. A false result aborts with 403; an evaluation error becomes
// a non-fatal internal Fail. Compilation errors surface at construction so
// route tables fail fast, not mid-navigation.
//
//	g, err := guards.Expr("weekday-only", `param("day") != "sunday"`)
func Expr(name, code string) (domain.Guard, error) {
	program, err := expr.Compile(code,
		expr.Env(exprEnv(&domain.TransitionRequest{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("guard %q: invalid expression: %w", name, err)
	}

	return exprGuard(name, program), nil
}

func exprGuard(name string, program *vm.Program) domain.Guard {
	return func(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
		out, err := expr.Run(program, exprEnv(req))
		if err != nil {
			return domain.Failf(domain.FailInternal, false, "guard %q: %v", name, err)
		}
		ok, isBool := out.(bool)
		if !isBool {
			return domain.Failf(domain.FailInternal, false, "guard %q: expression did not yield a boolean", name)
		}
		if !ok {
			return domain.Abort(http.StatusForbidden, fmt.Sprintf("rejected by %q", name))
		}
		return domain.Continue()
	}
}
