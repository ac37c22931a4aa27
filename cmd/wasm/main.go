//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"syscall/js"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/indexeddb"

	"github.com/kittclouds/rolegen/internal/random"
	"github.com/kittclouds/rolegen/pkg/catalog"
	"github.com/kittclouds/rolegen/pkg/generator"
	"github.com/kittclouds/rolegen/pkg/mention"
	"github.com/kittclouds/rolegen/pkg/script"
	"github.com/kittclouds/rolegen/pkg/suggest"
)

// Version info
const Version = "0.1.0"

// Global state, replaced wholesale by loadCatalog.
var (
	roles    []catalog.Role
	rewriter *mention.Rewriter
	index    *suggest.Index
)

func main() {
	index = suggest.NewIndex(nil, "")
	println("[Rolegen] WASM Ready v" + Version)

	js.Global().Set("Rolegen", js.ValueOf(map[string]interface{}{
		"version":     js.FuncOf(getVersion),
		"loadCatalog": js.FuncOf(loadCatalog),
		"check":       js.FuncOf(check),
		"generate":    js.FuncOf(generate),
		"sample":      js.FuncOf(sample),
		"mentions":    js.FuncOf(rewriteMentions),
		// Suggestion index, optionally persisted in IndexedDB
		"initSuggest": js.FuncOf(initSuggest),
		"suggest":     js.FuncOf(suggestTerms),
		"saveSuggest": js.FuncOf(saveSuggest),
	}))

	select {}
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// loadCatalog: [catalogJSON string]
// Accepts the same layout as catalog files.
func loadCatalog(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: catalogJSON (string)")
	}
	f, err := catalog.Decode([]byte(args[0].String()), ".json")
	if err != nil {
		return errorResult(err.Error())
	}
	loaded, err := f.Resolve()
	if err != nil {
		return errorResult(err.Error())
	}

	roles = loaded
	rewriter = mention.New(roles)
	index.Build(roles)
	return successResult("loaded " + strconv.Itoa(len(roles)) + " roles")
}

type slotInfo struct {
	Slot       string   `json:"slot"`
	Candidates []string `json:"candidates"`
}

// check: [script string]
// Returns the candidates of every slot.
func check(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: script (string)")
	}
	rl, err := generator.Prepare(args[0].String(), roles)
	if err != nil {
		return errorResult(err.Error())
	}

	all := catalog.Project(roles)
	out := make([]slotInfo, len(rl.Slots))
	for i, slot := range rl.Slots {
		info := slotInfo{Slot: slot.String(), Candidates: []string{}}
		for _, c := range script.ApplyAll(all, rl.SlotFilters(i)) {
			info.Candidates = append(info.Candidates, c.Name)
		}
		out[i] = info
	}
	return jsonResult(out)
}

// generate: [script string, seed? number]
// Returns the picked roles in slot order.
func generate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1+ args: script (string), [seed (number)]")
	}
	seed, err := seedArg(args, 1)
	if err != nil {
		return errorResult(err.Error())
	}

	picked, err := generator.NewSeeded(seed).GenerateScript(args[0].String(), roles)
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(map[string]interface{}{
		"seed":  seed,
		"roles": picked,
	})
}

// sample: [script string, runs number, seed? number]
func sample(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2+ args: script (string), runs (number), [seed (number)]")
	}
	seed, err := seedArg(args, 2)
	if err != nil {
		return errorResult(err.Error())
	}

	tally, err := generator.Sample(context.Background(), args[0].String(), roles, generator.SampleOptions{
		Runs:     args[1].Int(),
		Seed:     seed,
		Parallel: 1,
	})
	if err != nil {
		return errorResult(err.Error())
	}

	failures := make(map[string]int, len(tally.Failures))
	for k, n := range tally.Failures {
		failures[k.String()] = n
	}
	return jsonResult(map[string]interface{}{
		"runs":      tally.Runs,
		"succeeded": tally.Succeeded(),
		"picks":     tally.Picks,
		"failures":  failures,
	})
}

// mentions: [text string]
func rewriteMentions(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: text (string)")
	}
	if rewriter == nil {
		return errorResult("catalog not loaded")
	}
	out, err := rewriter.Rewrite(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(map[string]string{"text": out})
}

// initSuggest binds the suggestion index to IndexedDB and loads any saved
// snapshot. Args: [] (uses the "rolegen" DB and "suggest.bin" path)
func initSuggest(this js.Value, args []js.Value) interface{} {
	fs, err := indexeddb.NewFS(context.Background(), "rolegen", indexeddb.Options{})
	if err != nil {
		return errorResult("failed to create idb fs: " + err.Error())
	}

	index = suggest.NewIndex(fs, "suggest.bin")
	if err := index.Load(); err != nil && !errors.Is(err, hackpadfs.ErrNotExist) {
		return errorResult("failed to load suggest index: " + err.Error())
	}
	if index.Len() == 0 && len(roles) > 0 {
		index.Build(roles)
	}
	return successResult("suggest index initialized")
}

// suggest: [term string, k number]
// Returns: JSON array of catalog terms
func suggestTerms(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: term (string), k (number)")
	}
	hits := index.Suggest(args[0].String(), args[1].Int())
	if hits == nil {
		hits = []string{}
	}
	return jsonResult(hits)
}

func saveSuggest(this js.Value, args []js.Value) interface{} {
	if err := index.Save(); err != nil {
		return errorResult("save failed: " + err.Error())
	}
	return successResult("saved")
}

// seedArg reads an optional seed at args[i]; a missing or zero seed draws one.
func seedArg(args []js.Value, i int) (int64, error) {
	var seed int64
	if len(args) > i && args[i].Type() == js.TypeNumber {
		seed = int64(args[i].Float())
	}
	return random.Resolve(seed)
}

// Helper: Marshal a payload
func jsonResult(v interface{}) interface{} {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return errorResult(err.Error())
	}
	return string(jsonBytes)
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
