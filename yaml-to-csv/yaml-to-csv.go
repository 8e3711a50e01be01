package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"pdf-survey/internal/export"
)

//
// This program reads in one or more YAML files written by "pdf-survey export" and outputs a CSV file
// with one row per surveyed PDF.
//
// The reason for generating this CSV is that it is easier to grep, or load into a spreadsheet, when
// looking for all documents from one producer or one operating system.
//

type Document = export.Document

// Main entry point.
// Processes a set of YAML files, each of which contains details about a set of Document records
// For each Document, one CSV record is created.
// Finally the accumulated CSV records are written to the specified CSV file.
//
// No deduplication or other validation or processing is performed.
//
// To run the program:
//   go run yaml-to-csv/yaml-to-csv.go --verbose --csv output-csv-file  YAML-FILE-1 [, YAML-FILE-2 [, ...]]

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose reporting")
	csvOutputFilename := flag.String("csv", "", "filepath of the output file to hold the generated CSV")

	flag.Parse()

	if *csvOutputFilename == "" {
		log.Fatal("Please supply a filespec for the output CSV")
	}

	var csvDocs [][]string

	for _, yaml_file := range flag.Args() {
		if *verbose {
			fmt.Printf("Processing YAML file: [%s]\n", yaml_file)
		}
		yaml_text, err := os.ReadFile(yaml_file)
		if err != nil {
			log.Printf("yamlFile read err for %s,  #%v ", yaml_file, err)
			continue
		}
		documentsMap, err := export.Read(yaml_text)
		if err != nil {
			log.Fatalf("Unmarshal error for %s: %v", yaml_file, err)
		}

		csvDocs = append(csvDocs, ConvertDocuments(documentsMap)...)

		if *verbose {
			fmt.Printf("Finished procesing YAML %s, having found %d docs, for a total of %d CSV records\n", yaml_file, len(documentsMap), len(csvDocs))
		}
	}
	fmt.Printf("Found %d records in total\n", len(csvDocs))

	csvFile, err := os.Create(*csvOutputFilename)
	if err != nil {
		log.Fatalf("CSV file open failed for %s, %v\n", *csvOutputFilename, err)
	}
	defer csvFile.Close()

	csvWriter := csv.NewWriter(csvFile)
	defer csvWriter.Flush()

	err = csvWriter.Write(export.CsvHeader)
	if err != nil {
		fmt.Println("Error writing header to CSV:", err)
	}

	for _, rec := range csvDocs {
		err = csvWriter.Write(rec)
		if err != nil {
			fmt.Println("Error writing record to CSV:", err)
		}
	}
}

// ConvertDocuments produces one CSV row per document, ordered by record id so that the output is stable.
func ConvertDocuments(documentsMap map[string]Document) [][]string {
	ids := make([]string, 0, len(documentsMap))
	for id := range documentsMap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, export.ConvertDocumentToCsv(id, documentsMap[id]))
	}
	return rows
}
