package pdfmetadata

import "regexp"

// Producers often name the platform in parentheses, e.g. "Acrobat Distiller 9.0.0 (Windows)".
var producerPlatform = regexp.MustCompile(`.*\((.*)\).*`)

// The PostScript printer driver shipped with Windows identifies itself as "PScript5.dll".
var windowsPrinterDriver = regexp.MustCompile(`PScript.*\.dll`)

// osRules are tried in order; the first that matches decides the operating system.
var osRules = []func(*Record) (string, bool){
	osFromProducer,
	osFromCreatorTool,
}

// InferOS makes a best guess at the operating system a PDF was produced on.
// The boolean is false when no rule matched, which is the common case.
func InferOS(r *Record) (string, bool) {
	for _, rule := range osRules {
		if label, matched := rule(r); matched {
			return label, true
		}
	}
	return "", false
}

func osFromProducer(r *Record) (string, bool) {
	if r.Producer == nil {
		return "", false
	}
	match := producerPlatform.FindStringSubmatch(*r.Producer)
	if match == nil {
		return "", false
	}
	return match[1], true
}

func osFromCreatorTool(r *Record) (string, bool) {
	if r.CreatorTool == nil || !windowsPrinterDriver.MatchString(*r.CreatorTool) {
		return "", false
	}
	return "Windows", true
}
