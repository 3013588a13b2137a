package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	define "github.com/Sir-Bobert-II/BOR-define"
	"github.com/Sir-Bobert-II/BOR-define/pkg/parser"
	"github.com/Sir-Bobert-II/BOR-define/pkg/querier"
)

const (
	codeErrorArgs = iota + 1
	codeInternalError
)

func exitf(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

func saveWord(path string, content []byte) {
	if err := os.WriteFile(path, content, 0660); err != nil {
		exitf(codeInternalError, "can not save word to %s: %s\n",
			path,
			err.Error(),
		)
	}
}

// render returns summary of locally available response body.
func render(word string, input io.Reader) string {
	entries, err := parser.ParseEntriesJSON(input)
	if err != nil {
		return define.Message(word, fmt.Errorf("%w: %v", querier.ErrNotFound, err))
	}
	if word == "" && len(entries) > 0 && entries[0] != nil {
		word = entries[0].Word
	}
	summary, err := define.Summarize(querier.Normalize(word), entries)
	if err != nil {
		return define.Message(word, err)
	}
	return summary.String()
}

func main() {
	webWord := flag.String("w", "", "word that you want to define using the web")
	localPath := flag.String("f", "", "local json response for rendering, trailing arguments name the word")
	savePath := flag.String("s", "", "name of file where downloaded response will be saved")
	verbose := flag.Bool("v", false, "log requests to stderr")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			exitf(codeInternalError, "can not create logger: %s\n", err.Error())
		}
	}
	defer logger.Sync() // nolint:errcheck

	// trailing arguments are the word to look up, or only a label for -f
	word := *webWord
	label := strings.Join(flag.Args(), " ")
	if word == "" && *localPath == "" {
		word = label
	}
	ctx := context.Background()

	var input io.Reader
	switch {
	case word != "" && *localPath != "":
		exitf(codeErrorArgs, "both -w and -f can not be specified at the same time!\n")
	case word != "" && *savePath == "":
		service := define.Default(logger)
		defer service.Close(ctx)
		fmt.Print(service.Lookup(ctx, word))
		return
	case word != "":
		remote := querier.NewRemote(nil, nil, logger, nil)
		wordBytes, err := remote.Download(ctx, word)
		_ = remote.Close(ctx)
		if err != nil {
			exitf(codeInternalError, "%s\n", define.Message(word, err))
		}
		saveWord(*savePath, wordBytes)
		input = bytes.NewReader(wordBytes)
	case *localPath != "":
		file, err := os.Open(*localPath)
		if err != nil {
			exitf(codeErrorArgs, "can not open file %s: %s\n", *localPath, err.Error())
		}
		defer file.Close()
		input = file
		word = label
	default:
		exitf(codeErrorArgs, "you should specify either -w or -f\n")
	}

	fmt.Print(render(word, input))
}
