package main

// pdf-survey extracts document metadata from a collection of PDF files, stores it in SQLite and
// reports which producers, creator tools, PDF versions and (inferred) operating systems appear.
//
// To run the program:
//
//	go run ./pdf-survey scan /path/to/collection
//	go run ./pdf-survey report
//	go run ./pdf-survey export --output survey.yaml

import "pdf-survey/internal/cli"

func main() {
	cli.Execute()
}
