package check

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"typon/pkg/sig"
	"typon/pkg/types"
)

// Checker applies the caller policy around the Validator: strict mode
// aborts a call on the first violation, lenient mode logs advisory
// warnings and lets the call proceed. This mirrors gradual typing: checks
// can be advisory without changing program behavior.
type Checker struct {
	validator *Validator
	parser    *sig.Parser
	strict    bool
	rejectFx  bool
	log       zerolog.Logger
}

type Option func(*Checker)

// Strict makes violations abort calls instead of warning.
func Strict() Option { return func(c *Checker) { c.strict = true } }

// RejectUnknownEffects turns typos in effect tags into wrap-time errors.
func RejectUnknownEffects() Option { return func(c *Checker) { c.rejectFx = true } }

func WithLogger(log zerolog.Logger) Option { return func(c *Checker) { c.log = log } }

func WithValidator(v *Validator) Option { return func(c *Checker) { c.validator = v } }

func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		validator: NewValidator(),
		parser:    sig.NewParser(),
		log:       zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) Strict() bool { return c.strict }

func (c *Checker) Validator() *Validator { return c.validator }

// Fn is the shape of a wrappable dynamically-typed function.
type Fn func(args ...any) any

// CheckedFn is a function bound to its parsed signature. Calls validate
// arguments before invoking and the return value after.
type CheckedFn struct {
	Name string
	sig  *sig.TypeSignature
	fn   Fn
	c    *Checker
	skip bool // degraded: signature did not parse, calls pass through
}

func (f *CheckedFn) Signature() *sig.TypeSignature { return f.sig }

func (f *CheckedFn) HasEffect(name string) bool { return f.sig.HasEffect(name) }

func (f *CheckedFn) IsPure() bool { return f.sig.IsPure() }

// Call runs the wrapped function under the checker's policy.
//
// Strict: the first argument violation aborts before the function runs;
// the return value is validated only when all arguments passed, and a
// return violation discards the result.
//
// Lenient: every violation is logged and collected, the function always
// runs, and its result is always returned. The aggregated error is
// advisory; callers running fully gradually ignore it.
func (f *CheckedFn) Call(args ...any) (any, error) {
	if f.skip {
		return f.fn(args...), nil
	}
	c := f.c
	var verrs *multierror.Error

	if err := c.validator.ValidateArgs(f.sig.Params, args); err != nil {
		if c.strict {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		c.warn(f.Name, err)
		verrs = multierror.Append(verrs, err)
	}

	result := f.fn(args...)

	if err := c.validator.ValidateReturn(f.sig.Return, result); err != nil {
		if c.strict {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		c.warn(f.Name, err)
		verrs = multierror.Append(verrs, err)
	}

	return result, verrs.ErrorOrNil()
}

// Wrap parses a signature and binds it to fn. An unparseable signature is
// an error in strict mode; in lenient mode it degrades gracefully by
// skipping runtime checks (the returned CheckedFn passes calls through).
func (c *Checker) Wrap(name, signature string, fn Fn) (*CheckedFn, error) {
	parsed, err := c.parser.Parse(signature)
	if err != nil {
		if c.strict {
			return nil, err
		}
		c.log.Warn().Str("fn", name).Err(err).Msg("failed to parse type signature, skipping runtime checks")
		return &CheckedFn{Name: name, sig: permissiveSignature(), fn: fn, c: c, skip: true}, nil
	}
	if c.rejectFx {
		for _, e := range parsed.Effects {
			if !types.Effect(e).Known() {
				err := fmt.Errorf("unknown effect %q in signature %q", e, signature)
				if c.strict {
					return nil, err
				}
				c.log.Warn().Str("fn", name).Err(err).Msg("unknown effect tag")
			}
		}
	}
	return &CheckedFn{Name: name, sig: parsed, fn: fn, c: c}, nil
}

// ValidateCall checks a call shape without invoking anything; the CLI and
// other external collaborators use it for one-shot checks.
func (c *Checker) ValidateCall(signature string, args []any, result any) error {
	parsed, err := c.parser.Parse(signature)
	if err != nil {
		return err
	}
	var verrs *multierror.Error
	if err := c.validator.ValidateArgs(parsed.Params, args); err != nil {
		if c.strict {
			return err
		}
		c.warn(signature, err)
		verrs = multierror.Append(verrs, err)
	}
	if err := c.validator.ValidateReturn(parsed.Return, result); err != nil {
		if c.strict {
			return err
		}
		c.warn(signature, err)
		verrs = multierror.Append(verrs, err)
	}
	return verrs.ErrorOrNil()
}

func (c *Checker) warn(name string, err error) {
	c.log.Warn().Str("fn", name).Msg(err.Error())
}

// permissiveSignature accepts any call: zero declared params is not
// enforced because the arity check is skipped for the degraded path.
func permissiveSignature() *sig.TypeSignature {
	return &sig.TypeSignature{Return: &sig.ParsedType{BaseType: "Any"}}
}
