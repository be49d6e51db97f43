// Command tokcli runs the tokenizer over stdin or a batch of files and
// prints spec.md §6-style rendered tokens, optionally seeding the in-memory
// dictionary from a dictstore file (-dict) and/or a word list (-words). It
// reads from the dictstore but never writes to it.
// Grounded on the teacher's cmd/storetest: construct dependencies, run an
// operation, print results, fmt.Println/log.Fatalf for diagnostics.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kittclouds/hangultok"
	"github.com/kittclouds/hangultok/internal/dictstore"
	"github.com/kittclouds/hangultok/pkg/pos"
)

func main() {
	dictPath := flag.String("dict", "", "path to a dictstore SQLite file to seed the dictionary from (optional)")
	wordFile := flag.String("words", "", "path to a newline-delimited word list to register as Nouns before tokenizing (optional)")
	flag.Parse()

	var opts []hangultok.Option

	tok, err := hangultok.New(opts...)
	if err != nil {
		log.Fatalf("tokcli: building tokenizer: %v", err)
	}

	if *dictPath != "" {
		store, err := dictstore.Open(*dictPath)
		if err != nil {
			log.Fatalf("tokcli: opening dictstore %q: %v", *dictPath, err)
		}
		defer store.Close()
		if err := tok.LoadFromStore(store); err != nil {
			log.Fatalf("tokcli: loading dictstore: %v", err)
		}
	}

	if *wordFile != "" {
		words, err := readLines(*wordFile)
		if err != nil {
			log.Fatalf("tokcli: reading word list %q: %v", *wordFile, err)
		}
		if err := tok.AddWordsToDictionary(pos.Noun, words); err != nil {
			log.Fatalf("tokcli: seeding words: %v", err)
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		runLines(tok, os.Stdin)
		return
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("tokcli: opening %q: %v", path, err)
		}
		runLines(tok, f)
		f.Close()
	}
}

func runLines(tok *hangultok.Tokenizer, r *os.File) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		tokens, err := tok.Tokenize(line)
		if err != nil {
			log.Fatalf("tokcli: tokenizing %q: %v", line, err)
		}
		fmt.Println(pos.Render(tokens))
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("tokcli: reading input: %v", err)
	}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if w := scanner.Text(); w != "" {
			words = append(words, w)
		}
	}
	return words, scanner.Err()
}
