package main

import (
	"flag"
	"log"
	"os"

	"github.com/docneat/docneat-backend/cmd"
)

// Set at build time with -ldflags "-X main.apiVersion=..."
var apiVersion = "dev"

func main() {
	shouldRunServer := flag.Bool("server", false, "Run the HTTP server")
	convertPath := flag.String("convert", "", "Convert a local PDF or image and exit")
	outDir := flag.String("out", ".", "Directory receiving the exports of --convert")
	format := flag.String("format", cmd.FormatJson, "Output of --convert: json or table")
	flag.Parse()

	compiledConfig := cmd.CompiledConfig{Version: apiVersion}

	switch {
	case *convertPath != "":
		if err := cmd.RunConvert(compiledConfig, *convertPath, *outDir, *format, os.Stdout); err != nil {
			log.Fatal(err)
		}
	case *shouldRunServer:
		if err := cmd.RunServer(compiledConfig); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}
