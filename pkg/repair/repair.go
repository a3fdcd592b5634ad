// Package repair turns the raw text returned by a classifier into a category tree.
//
// Classifier output is not guaranteed to be valid JSON. The parser tries a fixed
// cascade of rewriting strategies, each applied on top of the previous one, and
// never fails: in the worst case it yields an empty category along with a diagnostic.
package repair

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/oneconcern/foldersort/pkg/dlogger"
	"github.com/oneconcern/foldersort/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxDiagnosticInput = 200

// Result of a repair
type Result struct {
	Tree model.Category

	// Strategy names the rewriting step that produced a valid document. It is empty when all strategies failed.
	Strategy string

	// Extracted is true when the document was found by extracting the outermost braces of the input
	Extracted bool

	// Diagnostic explains why no strategy succeeded
	Diagnostic string
}

// OK tells if some strategy succeeded
func (r Result) OK() bool {
	return r.Strategy != ""
}

// Parser repairs classifier output
type Parser struct {
	l *zap.Logger
}

// Option for the parser
type Option func(*Parser)

// Logger sets a logger for this parser
func Logger(logger *zap.Logger) Option {
	return func(p *Parser) {
		p.l = dlogger.OrNop(logger)
	}
}

// New builds a parser
func New(opts ...Option) *Parser {
	p := &Parser{l: zap.NewNop()}
	for _, apply := range opts {
		apply(p)
	}
	return p
}

var defaultParser = New()

// Repair the raw output of a classifier into a category tree, using a parser without logging
func Repair(raw string) model.Category {
	return defaultParser.Parse(raw).Tree
}

// Parse raw classifier output
func (p *Parser) Parse(raw string) (res Result) {
	defer func() {
		// the parser contract is to never fail
		if r := recover(); r != nil {
			res = p.fail(raw, fmt.Sprintf("unexpected failure: %v", r))
		}
	}()

	tree, name, lastErr := p.tryCascade(raw)
	if lastErr == nil {
		return Result{Tree: tree, Strategy: name}
	}

	if sub, ok := extractBraces(raw); ok && sub != raw {
		tree, name, err := p.tryCascade(sub)
		if err == nil {
			p.l.Debug("classifier output repaired from extracted braces", zap.String("strategy", name))
			return Result{Tree: tree, Strategy: name, Extracted: true}
		}
		lastErr = err
	}

	msg := "no structured data found"
	if lastErr != nil {
		msg = lastErr.Error()
	}
	return p.fail(raw, msg)
}

func (p *Parser) fail(raw, msg string) Result {
	excerpt := raw
	if len(excerpt) > maxDiagnosticInput {
		excerpt = excerpt[:maxDiagnosticInput]
	}
	diagnostic := fmt.Sprintf("could not repair classifier output: %s", msg)
	p.l.Warn(diagnostic, zap.String("input", excerpt))
	return Result{Tree: model.Category{}, Diagnostic: diagnostic}
}

func (p *Parser) tryCascade(input string) (model.Category, string, error) {
	candidate := input
	var lastErr error
	for _, step := range cascade {
		candidate = step.rewrite(candidate)
		tree, err := decode(candidate)
		if err == nil {
			if step.name != cascade[0].name {
				p.l.Debug("classifier output repaired", zap.String("strategy", step.name))
			}
			return tree, step.name, nil
		}
		lastErr = err
	}
	return nil, "", lastErr
}

func decode(doc string) (model.Category, error) {
	var v interface{}
	if err := json.UnmarshalFromString(doc, &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, ErrNotAnObject
	}
	return normalizeCategory(obj), nil
}
