//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/hack-pad/hackpadfs/indexeddb"
	"github.com/kittclouds/hangultok"
	"github.com/kittclouds/hangultok/internal/dictstore"
	"github.com/kittclouds/hangultok/pkg/freqvec"
	"github.com/kittclouds/hangultok/pkg/pos"
)

// Version identifies this build to the host page.
const Version = "0.1.0"

var tok *hangultok.Tokenizer
var freq *freqvec.Store

func main() {
	var err error
	tok, err = hangultok.New()
	if err != nil {
		fmt.Println("[HangulTok] FATAL: failed to build tokenizer:", err.Error())
	}

	fmt.Println("[HangulTok] WASM ready v" + Version)

	js.Global().Set("HangulTok", js.ValueOf(map[string]interface{}{
		"version":           js.FuncOf(getVersion),
		"tokenize":          js.FuncOf(tokenize),
		"addWords":          js.FuncOf(addWords),
		"rebuildDictionary": js.FuncOf(rebuildDictionary),
		"initVectors":       js.FuncOf(initVectors),
		"addRankedWord":     js.FuncOf(addRankedWord),
		"saveVectors":       js.FuncOf(saveVectors),
	}))

	select {}
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// tokenize renders text's tokens in spec.md §6's textual form.
// Args: [text string]
func tokenize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing text argument")
	}
	tokens, err := tok.Tokenize(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	return pos.Render(tokens)
}

// addWords registers a batch of words under a POS letter code.
// Args: [posLetter string, wordsJSON string]
func addWords(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("expected posLetter and words json")
	}
	letter := args[0].String()
	if len(letter) != 1 {
		return errorResult("posLetter must be a single character")
	}
	p, ok := pos.FromLetter(letter[0])
	if !ok {
		return errorResult("unknown pos letter: " + letter)
	}

	var words []string
	if err := json.Unmarshal([]byte(args[1].String()), &words); err != nil {
		return errorResult("invalid words json: " + err.Error())
	}

	if err := tok.AddWordsToDictionary(p, words); err != nil {
		return errorResult(err.Error())
	}
	return successResult(fmt.Sprintf("registered %d words", len(words)))
}

// rebuildDictionary reloads the dictionary from a persisted dictstore file,
// replacing the current Tokenizer with a freshly seeded one.
// Args: [dsn string]
func rebuildDictionary(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing dsn argument")
	}

	store, err := dictstore.Open(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	defer store.Close()

	newTok, err := hangultok.New()
	if err != nil {
		return errorResult(err.Error())
	}
	if err := newTok.LoadFromStore(store); err != nil {
		return errorResult(err.Error())
	}
	if freq != nil {
		newTok.SetFrequencyEstimator(freq)
	}
	tok = newTok
	return successResult("dictionary rebuilt")
}

// initVectors opens the IndexedDB-backed noun-frequency index, creating it
// if absent.
// Args: [] (uses the fixed "hangultok"/"freqvec.bin" path)
func initVectors(this js.Value, args []js.Value) interface{} {
	fs, err := indexeddb.NewFS(context.Background(), "hangultok", indexeddb.Options{})
	if err != nil {
		return errorResult(err.Error())
	}
	store, err := freqvec.NewStore(fs, "freqvec.bin")
	if err != nil {
		return errorResult(err.Error())
	}
	freq = store
	if tok != nil {
		tok.SetFrequencyEstimator(freq)
	}
	return successResult("vectors initialized")
}

// addRankedWord appends a word to the frequency-ranked noun index, in
// descending-commonness insertion order.
// Args: [word string]
func addRankedWord(this js.Value, args []js.Value) interface{} {
	if freq == nil {
		return errorResult("vectors not initialized")
	}
	if len(args) < 1 {
		return errorResult("missing word argument")
	}
	if err := freq.AddRanked(args[0].String()); err != nil {
		return errorResult(err.Error())
	}
	return successResult("word ranked")
}

// saveVectors persists the frequency index to IndexedDB.
func saveVectors(this js.Value, args []js.Value) interface{} {
	if freq == nil {
		return errorResult("vectors not initialized")
	}
	if err := freq.Save(); err != nil {
		return errorResult(err.Error())
	}
	return successResult("vectors saved")
}

func errorResult(msg string) interface{} {
	result := map[string]interface{}{"error": msg}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

func successResult(msg string) interface{} {
	result := map[string]interface{}{"success": msg}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
