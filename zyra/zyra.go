// Package zyra compiles bracket-notation utility classes like p-[2rem]
// and hover:bg-[#3b82f6] into deduplicated, optionally minified CSS.
package zyra

import (
	"sync"

	"zyracss/common"
	"zyracss/parser"
)

// Version of the generator, embedded in collaborator banners.
const Version = "1.0.0"

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

func getDefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		engine, err := New(DefaultConfig())
		if err != nil {
			// The default configuration is static; this cannot fail
			common.Fatal("failed to construct default engine: %v", err)
		}
		defaultEngine = engine
	})
	return defaultEngine
}

// Generate runs the shared default engine over input.
func Generate(input Input, opts Options) (*Result, *common.Error) {
	return getDefaultEngine().Generate(input, opts)
}

// GenerateClasses runs the shared default engine over a class list.
func GenerateClasses(classes []string, opts Options) (*Result, *common.Error) {
	return getDefaultEngine().GenerateClasses(classes, opts)
}

// GenerateHTML runs the shared default engine over one markup blob.
func GenerateHTML(html string, opts Options) (*Result, *common.Error) {
	return getDefaultEngine().GenerateHTML(html, opts)
}

// Extract runs the standalone extraction operation on the default engine.
func Extract(blobs []string, opts parser.ExtractOptions) (parser.ExtractResult, *common.Error) {
	return getDefaultEngine().Extract(blobs, opts)
}

// ClearCache purges the default engine's cache.
func ClearCache() {
	getDefaultEngine().ClearCache()
}
