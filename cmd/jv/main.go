package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	json "github.com/oarkflow/jsonvalue"
	"github.com/oarkflow/jsonvalue/batch"
)

var CLI struct {
	Validate ValidateCmd `cmd:"" help:"Validate JSON documents without building trees."`
	Get      GetCmd      `cmd:"" help:"Evaluate an expression against one JSON document."`
	Pretty   PrettyCmd   `cmd:"" help:"Reformat one JSON document with indentation."`
}

type ValidateCmd struct {
	Files   []string `arg:"" optional:"" type:"existingfile" help:"Files to validate. Reads stdin when omitted."`
	Workers int      `short:"w" default:"4" help:"Concurrent validation workers."`
}

func (c *ValidateCmd) Run() error {
	if len(c.Files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		if errs := batch.Check([][]byte{data}, 1); errs != nil {
			return errs[0]
		}
		return nil
	}
	docs := make([][]byte, len(c.Files))
	for i, name := range c.Files {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		docs[i] = data
	}
	errs := batch.Check(docs, c.Workers)
	if errs == nil {
		return nil
	}
	for i, err := range errs {
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", c.Files[i], err)
		}
	}
	return fmt.Errorf("validation failed")
}

type GetCmd struct {
	Expr string `arg:"" help:"Expression to evaluate, e.g. 'user.age > 18'."`
	File string `arg:"" optional:"" type:"existingfile" help:"Input file. Reads stdin when omitted."`
}

func (c *GetCmd) Run() error {
	data, err := readInput(c.File)
	if err != nil {
		return err
	}
	v, err := json.Parse(data)
	if err != nil {
		return err
	}
	out, err := json.Query(v, c.Expr)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

type PrettyCmd struct {
	File   string `arg:"" optional:"" type:"existingfile" help:"Input file. Reads stdin when omitted."`
	Indent string `default:"  " help:"Indent string."`
}

func (c *PrettyCmd) Run() error {
	data, err := readInput(c.File)
	if err != nil {
		return err
	}
	v, err := json.Parse(data)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Decode(v, &doc); err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", c.Indent)
	return enc.Encode(doc)
}

func readInput(file string) ([]byte, error) {
	if file == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("jv"),
		kong.Description("Parse, validate and query JSON documents."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
