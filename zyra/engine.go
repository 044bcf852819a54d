package zyra

import (
	"strconv"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"zyracss/cache"
	"zyracss/catalog"
	"zyracss/common"
	"zyracss/emit"
	"zyracss/parser"
	"zyracss/values"
)

// SecurityConfig bounds what a single call may feed the engine.
type SecurityConfig struct {
	MaxClassLength   int      `json:"maxClassLength" toml:"max_class_length" validate:"gte=0"`
	MaxClasses       int      `json:"maxClasses" toml:"max_classes" validate:"gte=0"`
	DataURLAllowlist []string `json:"dataUrlAllowlist" toml:"data_url_allowlist"`
}

// Config constructs an engine. Zero values select the documented defaults.
type Config struct {
	Cache       bool           `json:"cache" toml:"cache"`
	CacheSize   int            `json:"cacheSize" toml:"cache_size" validate:"gte=0"`
	Minify      bool           `json:"minify" toml:"minify"`
	Security    SecurityConfig `json:"security" toml:"security"`
	Breakpoints map[string]int `json:"breakpoints" toml:"breakpoints" validate:"dive,gt=0"`
}

// DefaultConfig returns the engine defaults: caching on, pretty output.
func DefaultConfig() Config {
	return Config{
		Cache: true,
		Security: SecurityConfig{
			MaxClassLength: parser.DefaultMaxClassLength,
			MaxClasses:     parser.DefaultMaxClasses,
		},
	}
}

var configValidator = validator.New()

// Engine is a ZyraCSS compiler instance. The catalog and validator are
// immutable after construction; the cache, the error history and the
// generation counter are the mutable state, each safe for concurrent use.
type Engine struct {
	cfg         Config
	cat         *catalog.Catalog
	parser      *parser.Parser
	validator   *values.Validator
	lru         *cache.LRU
	history     *common.ErrorHistory
	generations atomic.Uint64
}

// New constructs an engine, validating the configuration.
func New(cfg Config) (*Engine, *common.Error) {
	if err := configValidator.Struct(cfg); err != nil {
		return nil, common.NewError(common.CodeValidationFailed,
			"invalid engine configuration: %s", validationMessage(err))
	}
	if cfg.Security.MaxClassLength == 0 {
		cfg.Security.MaxClassLength = parser.DefaultMaxClassLength
	}
	if cfg.Security.MaxClasses == 0 {
		cfg.Security.MaxClasses = parser.DefaultMaxClasses
	}

	cat := catalog.Default()
	if len(cfg.Breakpoints) > 0 {
		cat = catalog.New(catalog.NewModifiers(cfg.Breakpoints))
	}

	e := &Engine{
		cfg:       cfg,
		cat:       cat,
		parser:    parser.New(cat, cfg.Security.MaxClassLength),
		validator: values.NewValidator(cfg.Security.DataURLAllowlist),
		history:   &common.ErrorHistory{},
	}
	if cfg.Cache {
		e.lru = cache.NewLRU(cfg.CacheSize)
	}
	return e, nil
}

// validationMessage flattens validator errors into one line.
func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return errs[0].Namespace() + " failed " + errs[0].Tag() + " validation"
	}
	return err.Error()
}

// Generate runs the full pipeline: extraction, parsing, validation,
// normalization, emission. Per-class failures land in the invalid list;
// only an input with candidates and zero surviving classes fails the call.
func (e *Engine) Generate(input Input, opts Options) (*Result, *common.Error) {
	e.generations.Add(1)

	// The engine-level minify default applies before the cache key is
	// derived so cached entries never cross output modes.
	if e.cfg.Minify {
		opts.Minify = true
	}

	if input.empty() {
		return &Result{Valid: []string{}, Invalid: []common.Invalid{}}, nil
	}

	candidates, truncated, err := e.collect(input)
	if err != nil {
		e.history.Record(err)
		return nil, err
	}
	if len(candidates) == 0 {
		return &Result{
			Valid:   []string{},
			Invalid: []common.Invalid{},
			Stats:   Stats{Truncated: truncated},
		}, nil
	}

	key := cache.Key(candidates, opts.Bits())
	if e.lru != nil {
		if hit, ok := e.lru.Get(key); ok {
			cached := hit.(*Result)
			result := *cached
			result.Stats.FromCache = true
			return &result, nil
		}
	}

	result := e.compile(candidates, opts)
	result.Stats.Truncated = result.Stats.Truncated || truncated

	if len(result.Valid) == 0 {
		topErr := common.NewError(common.CodeGenerationFailed,
			"no valid classes in input").
			WithContext("candidates", strconv.Itoa(len(candidates))).
			WithContext("invalid", strconv.Itoa(len(result.Invalid))).
			WithSuggestion("check the invalid entries for per-class reasons")
		e.history.Record(topErr)
		return nil, topErr
	}

	if e.lru != nil {
		stored := *result
		e.lru.Put(key, &stored)
	}
	return result, nil
}

// collect merges explicit classes with classes extracted from markup,
// deduplicated in first-appearance order and capped at the configured
// maximum.
func (e *Engine) collect(input Input) ([]string, bool, *common.Error) {
	var candidates []string
	truncated := false
	seen := make(map[string]bool)

	admit := func(class string) bool {
		if class == "" || seen[class] {
			return true
		}
		seen[class] = true
		if len(candidates) >= e.cfg.Security.MaxClasses {
			truncated = true
			return false
		}
		candidates = append(candidates, class)
		return true
	}

	for _, class := range input.Classes {
		if !admit(class) {
			return candidates, truncated, nil
		}
	}

	if len(input.HTML) > 0 {
		extracted, err := e.parser.Extract(input.HTML, parser.ExtractOptions{
			MaxClasses: e.cfg.Security.MaxClasses,
		})
		if err != nil {
			return nil, false, err
		}
		truncated = truncated || extracted.Truncated
		for _, class := range extracted.Classes {
			if !admit(class) {
				return candidates, truncated, nil
			}
		}
	}
	return candidates, truncated, nil
}

// compile runs parse/validate/normalize/emit over the candidate list.
func (e *Engine) compile(candidates []string, opts Options) *Result {
	minify, group, comments := opts.resolve()

	valid := make([]string, 0, len(candidates))
	invalid := []common.Invalid{}
	rules := make([]emit.Rule, 0, len(candidates))

	for _, class := range candidates {
		parsed, perr := e.parser.Parse(class)
		if perr != nil {
			invalid = append(invalid, common.NewInvalid(class, perr))
			e.history.Record(perr)
			continue
		}
		value, verr := e.validator.Validate(parsed.Property, parsed.RawValue, parsed.Values)
		if verr != nil {
			invalid = append(invalid, common.NewInvalid(class, verr))
			e.history.Record(verr)
			continue
		}
		rules = append(rules, emit.BuildRule(parsed, value))
		valid = append(valid, class)
	}

	renderOpts := emit.RenderOptions{
		Minify:          minify,
		GroupSelectors:  group,
		IncludeComments: comments,
	}
	css := emit.Render(rules, renderOpts)

	stats := Stats{
		ValidClasses:   len(valid),
		GeneratedRules: countRules(rules, group),
	}
	if minify && len(css) > 0 {
		prettyOpts := renderOpts
		prettyOpts.Minify = false
		if pretty := emit.Render(rules, prettyOpts); len(pretty) > 0 {
			stats.CompressionRatio = float64(len(css)) / float64(len(pretty))
		}
	}

	return &Result{CSS: css, Valid: valid, Invalid: invalid, Stats: stats}
}

// countRules reports how many rules the output holds after any grouping.
func countRules(rules []emit.Rule, grouped bool) int {
	if !grouped {
		return len(rules)
	}
	type key struct{ media, decls string }
	seen := make(map[key]bool)
	for _, r := range rules {
		var decls string
		for _, d := range r.Declarations {
			decls += d.Property + ":" + d.Value + ";"
		}
		seen[key{r.Media, decls}] = true
	}
	return len(seen)
}

// GenerateClasses is Generate over a plain class list.
func (e *Engine) GenerateClasses(classes []string, opts Options) (*Result, *common.Error) {
	return e.Generate(Input{Classes: classes}, opts)
}

// GenerateHTML is Generate over a single markup blob.
func (e *Engine) GenerateHTML(html string, opts Options) (*Result, *common.Error) {
	return e.Generate(Input{HTML: []string{html}}, opts)
}

// Catalog exposes the immutable property/modifier registry the engine was
// built with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Extract exposes the standalone extraction operation.
func (e *Engine) Extract(blobs []string, opts parser.ExtractOptions) (parser.ExtractResult, *common.Error) {
	return e.parser.Extract(blobs, opts)
}

// ClearCache purges the memoization cache.
func (e *Engine) ClearCache() {
	if e.lru != nil {
		e.lru.Clear()
	}
}

// Stats reports engine-lifetime counters.
func (e *Engine) Stats() EngineStats {
	stats := EngineStats{TotalGenerations: e.generations.Load()}
	if e.lru != nil {
		stats.CacheSize = e.lru.Len()
	}
	return stats
}

// History returns the retained error history.
func (e *Engine) History() []*common.Error {
	return e.history.Entries()
}
