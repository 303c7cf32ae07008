package main

import (
	"bytes"
	"io"
	"os"

	skstr "github.com/pfsalab/skstr"
	"github.com/pfsalab/skstr/internal/costmodel"
	"github.com/pfsalab/skstr/internal/graphplace"
	"github.com/pfsalab/skstr/internal/pfsaio"
	"github.com/pfsalab/skstr/internal/runner"
	"github.com/projectdiscovery/gologger"
)

func main() {
	cliOpts := runner.ParseFlags()

	input := getInputReader(cliOpts.Input)
	defer closeInput(input, cliOpts.Input)

	parseOpts := pfsaio.ParseOptions{Delimiter: cliOpts.Delimiter}
	var pfsa *skstr.PFSA
	var err error
	if cliOpts.RawCorpus {
		var buf bytes.Buffer
		if _, err = io.Copy(&buf, input); err != nil {
			gologger.Fatal().Msgf("failed to read input corpus got %v", err)
		}
		pfsa, err = pfsaio.ParseCorpus(bytes.NewReader(buf.Bytes()), parseOpts, buf.Len())
	} else {
		pfsa, err = pfsaio.Parse(input, parseOpts)
	}
	if err != nil {
		gologger.Fatal().Msgf("failed to parse input pfsa got %v", err)
	}

	driver := skstr.NewDriver(pfsa, cliOpts.DomainOptions())
	driver.SetDebug(cliOpts.Debug)
	result := driver.Induce()
	result.CallString = cliOpts.CallString()

	output := getOutputWriter(cliOpts.Output)
	defer closeOutput(output, cliOpts.Output)

	if cliOpts.Graphplace {
		if err := graphplace.Write(output, result); err != nil {
			gologger.Fatal().Msgf("failed to write diagram output got %v", err)
		}
		return
	}

	writeOpts := pfsaio.WriteOptions{Verbose: cliOpts.Verbose}
	if cliOpts.Verbose {
		writeOpts.CallString = result.CallString
		writeOpts.MMLCost = func(p *skstr.PFSA) float64 {
			return costmodel.WallaceEstimator{}.Cost(p)
		}
	}
	if err := pfsaio.Write(output, result, writeOpts); err != nil {
		gologger.Fatal().Msgf("failed to write output pfsa got %v", err)
	}
}

func getInputReader(path string) io.Reader {
	if path == "" || path == "-" {
		return os.Stdin
	}
	f, err := os.Open(path)
	if err != nil {
		gologger.Fatal().Msgf("failed to open input file %v got %v", path, err)
	}
	return f
}

func closeInput(r io.Reader, path string) {
	if path == "" || path == "-" {
		return
	}
	if closer, ok := r.(io.Closer); ok {
		closer.Close()
	}
}

func getOutputWriter(path string) io.Writer {
	if path == "" || path == "-" {
		return os.Stdout
	}
	fs, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		gologger.Fatal().Msgf("failed to open output file %v got %v", path, err)
	}
	return fs
}

func closeOutput(w io.Writer, path string) {
	if path == "" || path == "-" {
		return
	}
	if closer, ok := w.(io.Closer); ok {
		closer.Close()
	}
}
