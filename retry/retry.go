// Package retry validates the retryThrottling and retryPolicy slices of a
// service config.
package retry

import (
	"strings"
	"time"

	svcconfig "github.com/rpckit/svcconfig"
)

// ParserName is the registry name of this parser.
const ParserName = "retry"

// OptEnableHedging gates the experimental hedging feature. The
// perAttemptRecvTimeout field is always syntax-checked, but it is retained
// in the parsed result only when this option is set.
const OptEnableHedging = "experimental.enable_hedging"

// maxMaxAttempts caps maxAttempts; larger configured values are clamped,
// not rejected.
const maxMaxAttempts = 5

// GlobalConfig is the parsed retryThrottling result. Token counts are kept
// in milli-token fixed point so the throttle can do integer arithmetic on
// fractional ratios.
type GlobalConfig struct {
	MaxMilliTokens  int
	MilliTokenRatio int
}

// MethodConfig is the parsed per-method retryPolicy result.
type MethodConfig struct {
	MaxAttempts           int
	InitialBackoff        time.Duration
	MaxBackoff            time.Duration
	BackoffMultiplier     float64
	PerAttemptRecvTimeout *time.Duration
	RetryableStatusCodes  CodeSet
}

// Parser validates retry configuration.
type Parser struct{}

// NewParser returns the retry parser.
func NewParser() *Parser { return &Parser{} }

// Name implements svcconfig.Parser.
func (*Parser) Name() string { return ParserName }

// ParseGlobalParams validates the optional retryThrottling object:
// maxTokens must be an integer greater than zero and tokenRatio a number
// greater than zero, stored scaled by 1000.
func (*Parser) ParseGlobalParams(opts svcconfig.Options, js svcconfig.Value) (svcconfig.ParsedConfig, *svcconfig.ErrorNode) {
	if opts.Bool(svcconfig.OptDisableParsing) {
		return nil, nil
	}
	obj, ok := js.AsObject()
	if !ok {
		return nil, nil
	}
	v, ok := obj.Get("retryThrottling")
	if !ok {
		return nil, nil
	}
	throttling, ok := v.AsObject()
	if !ok {
		return nil, svcconfig.GroupError("retryThrottling", []*svcconfig.ErrorNode{
			svcconfig.LeafError("field:retryThrottling error:should be of type object"),
		})
	}

	var errs []*svcconfig.ErrorNode
	cfg := &GlobalConfig{}

	if tokens, ok := throttling.Get("maxTokens"); !ok {
		errs = append(errs, svcconfig.LeafError("field:retryThrottling field:maxTokens error:Not found"))
	} else if n, ok := tokens.Int64(); !ok {
		errs = append(errs, svcconfig.LeafError("field:retryThrottling field:maxTokens error:should be of type number"))
	} else if n <= 0 {
		errs = append(errs, svcconfig.LeafError("field:retryThrottling field:maxTokens error:should be greater than zero"))
	} else {
		cfg.MaxMilliTokens = int(n) * 1000
	}

	if ratio, ok := throttling.Get("tokenRatio"); !ok {
		errs = append(errs, svcconfig.LeafError("field:retryThrottling field:tokenRatio error:Not found"))
	} else if text, ok := ratio.AsNumber(); !ok {
		errs = append(errs, svcconfig.LeafError("field:retryThrottling field:tokenRatio error:should be of type number"))
	} else if milli, ok := milliRatio(text); !ok {
		errs = append(errs, svcconfig.LeafError("field:retryThrottling field:tokenRatio error:Failed parsing"))
	} else {
		cfg.MilliTokenRatio = milli
	}

	if errNode := svcconfig.GroupError("retryThrottling", errs); errNode != nil {
		return nil, errNode
	}
	return cfg, nil
}

// ParsePerMethodParams validates the optional retryPolicy object.
func (*Parser) ParsePerMethodParams(opts svcconfig.Options, js svcconfig.Value) (svcconfig.ParsedConfig, *svcconfig.ErrorNode) {
	if opts.Bool(svcconfig.OptDisableParsing) {
		return nil, nil
	}
	obj, ok := js.AsObject()
	if !ok {
		return nil, nil
	}
	v, ok := obj.Get("retryPolicy")
	if !ok {
		return nil, nil
	}
	policy, ok := v.AsObject()
	if !ok {
		return nil, svcconfig.LeafError("field:retryPolicy error:should be of type object")
	}

	var errs []*svcconfig.ErrorNode
	cfg := &MethodConfig{}

	errs = append(errs, parseMaxAttempts(policy, cfg))
	errs = append(errs, parseBackoff(policy, "initialBackoff", &cfg.InitialBackoff))
	errs = append(errs, parseBackoff(policy, "maxBackoff", &cfg.MaxBackoff))
	errs = append(errs, parseBackoffMultiplier(policy, cfg))
	errs = append(errs, parseRetryableStatusCodes(policy, cfg)...)
	errs = append(errs, parsePerAttemptRecvTimeout(policy, opts.Bool(OptEnableHedging), cfg))

	if errNode := svcconfig.GroupError("retryPolicy", errs); errNode != nil {
		return nil, errNode
	}
	return cfg, nil
}

func parseMaxAttempts(policy *svcconfig.Object, cfg *MethodConfig) *svcconfig.ErrorNode {
	v, ok := policy.Get("maxAttempts")
	if !ok {
		return svcconfig.LeafError("field:maxAttempts error:required field missing")
	}
	n, ok := v.Int64()
	if !ok {
		return svcconfig.LeafError("field:maxAttempts error:should be of type number")
	}
	if n < 2 {
		return svcconfig.LeafError("field:maxAttempts error:should be at least 2")
	}
	if n > maxMaxAttempts {
		n = maxMaxAttempts
	}
	cfg.MaxAttempts = int(n)
	return nil
}

func parseBackoff(policy *svcconfig.Object, field string, out *time.Duration) *svcconfig.ErrorNode {
	v, ok := policy.Get(field)
	if !ok {
		return svcconfig.Errorf("field:%s error:does not exist", field)
	}
	d, ok := svcconfig.ParseDuration(v)
	if !ok {
		return svcconfig.Errorf("field:%s error:type should be STRING of the form given by google.proto.Duration", field)
	}
	if d <= 0 {
		return svcconfig.Errorf("field:%s error:must be greater than 0", field)
	}
	*out = d
	return nil
}

func parseBackoffMultiplier(policy *svcconfig.Object, cfg *MethodConfig) *svcconfig.ErrorNode {
	v, ok := policy.Get("backoffMultiplier")
	if !ok {
		return svcconfig.LeafError("field:backoffMultiplier error:required field missing")
	}
	f, ok := v.Float64()
	if !ok {
		return svcconfig.LeafError("field:backoffMultiplier error:should be of type number")
	}
	if f <= 0 {
		return svcconfig.LeafError("field:backoffMultiplier error:must be greater than 0")
	}
	cfg.BackoffMultiplier = f
	return nil
}

// parseRetryableStatusCodes preserves a deliberate asymmetry: an absent key
// defaults to the empty set, while an explicit empty array is an error.
func parseRetryableStatusCodes(policy *svcconfig.Object, cfg *MethodConfig) []*svcconfig.ErrorNode {
	v, ok := policy.Get("retryableStatusCodes")
	if !ok {
		return nil
	}
	list, ok := v.AsArray()
	if !ok {
		return []*svcconfig.ErrorNode{svcconfig.LeafError("field:retryableStatusCodes error:must be of type array")}
	}
	if len(list) == 0 {
		return []*svcconfig.ErrorNode{svcconfig.LeafError("field:retryableStatusCodes error:must be non-empty")}
	}
	var errs []*svcconfig.ErrorNode
	for _, item := range list {
		name, ok := item.AsString()
		if !ok {
			errs = append(errs, svcconfig.LeafError("field:retryableStatusCodes error:status codes should be of type string"))
			continue
		}
		code, ok := CodeFromString(name)
		if !ok {
			errs = append(errs, svcconfig.LeafError("field:retryableStatusCodes error:failed to parse status code"))
			continue
		}
		cfg.RetryableStatusCodes = cfg.RetryableStatusCodes.Add(code)
	}
	return errs
}

// parsePerAttemptRecvTimeout always syntax-checks the field but binds the
// result only when hedging is enabled; an unused valid value is silently
// dropped, not an error.
func parsePerAttemptRecvTimeout(policy *svcconfig.Object, hedging bool, cfg *MethodConfig) *svcconfig.ErrorNode {
	v, ok := policy.Get("perAttemptRecvTimeout")
	if !ok {
		return nil
	}
	d, ok := svcconfig.ParseDuration(v)
	if !ok {
		return svcconfig.LeafError("field:perAttemptRecvTimeout error:type must be STRING of the form given by google.proto.Duration.")
	}
	if d <= 0 {
		return svcconfig.LeafError("field:perAttemptRecvTimeout error:must be greater than 0")
	}
	if hedging {
		cfg.PerAttemptRecvTimeout = &d
	}
	return nil
}

// milliRatio converts a decimal number in text form to thousandths using
// string arithmetic, so 0.1 stays exactly 100 rather than drifting through
// a float. Negative and non-decimal inputs fail.
func milliRatio(text string) (int, bool) {
	intPart, frac := text, ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart, frac = text[:i], text[i+1:]
	}
	if intPart == "" && frac == "" {
		return 0, false
	}
	milli := 0
	for i := 0; i < len(intPart); i++ {
		c := intPart[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		milli = milli*10 + int(c-'0')
		if milli > 1<<30 {
			return 0, false
		}
	}
	milli *= 1000
	// Fraction digits beyond the third are truncated, but every remaining
	// character must still be a digit so exponent forms fail instead of
	// mis-parsing.
	scale := 100
	for i := 0; i < len(frac); i++ {
		c := frac[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		if scale > 0 {
			milli += int(c-'0') * scale
			scale /= 10
		}
	}
	if milli <= 0 {
		return 0, false
	}
	return milli, true
}
