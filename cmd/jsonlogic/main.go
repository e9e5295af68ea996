// Command jsonlogic evaluates a JsonLogic rule against a JSON data
// document and prints the result.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jsonlogic-go/jsonlogic"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "jsonlogic: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("jsonlogic", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: jsonlogic <rule> [<data>]\n\n")
		fmt.Fprintf(os.Stderr, "Evaluate a JsonLogic rule against a JSON data document.\n")
		fmt.Fprintf(os.Stderr, "<rule> is a JSON string. <data> is a JSON string, \"-\", or\n")
		fmt.Fprintf(os.Stderr, "omitted, in which case data is read from standard input.\n\n")
		fmt.Fprintf(os.Stderr, "The result is written to standard output as JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, `  jsonlogic '{"===": [{"var": "a"}, "foo"]}' '{"a": "foo"}'`+"\n")
		fmt.Fprintf(os.Stderr, `  jsonlogic '{"===": [1, 1]}' null`+"\n")
		fmt.Fprintf(os.Stderr, `  echo '{"a": "foo"}' | jsonlogic '{"===": [{"var": "a"}, "foo"]}'`+"\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("a rule argument is required")
	}
	ruleArg := fs.Arg(0)

	dataArg := "-"
	if fs.NArg() >= 2 {
		dataArg = fs.Arg(1)
	}

	rule, err := jsonlogic.ParseJSONValue(ruleArg)
	if err != nil {
		return fmt.Errorf("parsing rule as JSON: %w", err)
	}

	var dataText string
	if dataArg != "-" {
		dataText = dataArg
	} else {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading data from stdin: %w", err)
		}
		dataText = string(raw)
	}
	data, err := jsonlogic.ParseJSONValue(dataText)
	if err != nil {
		return fmt.Errorf("parsing data as JSON: %w", err)
	}

	result, err := jsonlogic.Apply(rule, data)
	if err != nil {
		return fmt.Errorf("evaluating rule: %w", err)
	}

	out, err := jsonlogic.ToJSON(result)
	if err != nil {
		return fmt.Errorf("encoding result as JSON: %w", err)
	}
	fmt.Fprintln(stdout, string(out))
	return nil
}
