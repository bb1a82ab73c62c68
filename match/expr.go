// Package match narrows decoded resources with expr-lang expressions.
//
// Expressions see the fields of an Item as lower-case variables:
//
//	rating > 80 and not nsfw
//	like(title, "titan") and year >= 2013
//	subtype in ["TV", "movie"] and episodes <= 13
package match

import (
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Matcher is a compiled expression. It is safe for concurrent use.
type Matcher struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables caching of compiled expressions
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds helper functions to the expression environment
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// Compiler compiles expressions into Matchers
type Compiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// NewCompiler creates a new expression compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCompiler = NewCompiler(WithCache(32))

// Compile compiles an expression with the default, caching compiler
func Compile(expression string) (*Matcher, error) {
	return defaultCompiler.Compile(expression)
}

// Compile compiles an expression into a Matcher
func (c *Compiler) Compile(expression string) (*Matcher, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Compile against a zero item so field types and unknown names are checked
	env := itemEnvironment(Item{})
	maps.Copy(env, c.helperFuncs)

	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	m := &Matcher{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, m)
	}

	return m, nil
}

// CacheLen returns the number of cached expressions
func (c *Compiler) CacheLen() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// ClearCache removes all cached expressions
func (c *Compiler) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Expression returns the source expression
func (m *Matcher) Expression() string {
	return m.expression
}

// Match evaluates the expression against item
func (m *Matcher) Match(item Item) (bool, error) {
	env := itemEnvironment(item)
	maps.Copy(env, m.helpers)

	result, err := expr.Run(m.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: m.expression,
			ItemID:     item.ID,
			Err:        err,
		}
	}

	// AsBool at compile time guarantees the type
	return result.(bool), nil
}

// itemEnvironment exposes an item's fields to expressions
func itemEnvironment(item Item) map[string]any {
	return map[string]any{
		"id":         item.ID,
		"kind":       item.Type,
		"title":      item.Title,
		"name":       item.Title,
		"slug":       item.Slug,
		"subtype":    item.Subtype,
		"status":     item.Status,
		"rating":     item.Rating,
		"hasRating":  item.HasRating,
		"nsfw":       item.NSFW,
		"episodes":   item.Episodes,
		"chapters":   item.Chapters,
		"popularity": item.Popularity,
		"favorites":  item.Favorites,
		"year":       item.Year,
	}
}

// createHelperFunctions returns helpers that complement the expr builtins
// (lower, upper, hasPrefix and the contains/startsWith operators are builtin)
func createHelperFunctions() map[string]any {
	return map[string]any{
		"like": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
	}
}
