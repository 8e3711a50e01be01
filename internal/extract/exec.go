package extract

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pdf-survey/internal/pdfmetadata"
)

// ExecSource runs the extractor once per file and streams its standard output.
type ExecSource struct {
	Binary string
	Args   []string // placed before the file path
	log    logrus.FieldLogger
}

// NewExecSource returns a Source running "binary <path>" for each file.
func NewExecSource(binary string, log logrus.FieldLogger) *ExecSource {
	return &ExecSource{Binary: binary, log: log}
}

func (s *ExecSource) Name() string { return "exiftool" }

// Open starts the extractor for path. The returned stream is its standard output; closing it
// drains any unread output and waits for the process to exit.
func (s *ExecSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := append(append([]string{}, s.Args...), path)
	cmd := exec.CommandContext(ctx, s.Binary, args...)
	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrapf(pdfmetadata.ErrNoMetadata, "%s: %v", path, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(pdfmetadata.ErrNoMetadata, "%s: starting %s: %v", path, s.Binary, err)
	}
	return &processOutput{ReadCloser: stdout, ctx: ctx, path: path, cmd: cmd, stderr: stderr}, nil
}

func (s *ExecSource) Close() error { return nil }

type processOutput struct {
	io.ReadCloser
	ctx    context.Context
	path   string
	cmd    *exec.Cmd
	stderr *bytes.Buffer
	read   int64 // bytes of standard output seen so far
}

func (p *processOutput) Read(b []byte) (int, error) {
	n, err := p.ReadCloser.Read(b)
	p.read += int64(n)
	return n, err
}

// Close reports a non-zero exit together with whatever the process wrote to standard error.
// The error wraps pdfmetadata.ErrNoMetadata when the output cannot be trusted: the process
// was killed because ctx ended, or it failed without printing anything.
func (p *processOutput) Close() error {
	// Wait must not be called before the pipe is fully read.
	drained, _ := io.Copy(io.Discard, p.ReadCloser)
	p.read += drained
	err := p.cmd.Wait()
	if ctxErr := p.ctx.Err(); ctxErr != nil {
		return errors.Wrapf(pdfmetadata.ErrNoMetadata, "%s: extractor stopped: %v", p.path, ctxErr)
	}
	if err == nil {
		return nil
	}
	msg := strings.TrimSpace(p.stderr.String())
	if msg == "" {
		msg = err.Error()
	} else {
		msg += ": " + err.Error()
	}
	if p.read == 0 {
		return errors.Wrapf(pdfmetadata.ErrNoMetadata, "%s: %s", p.path, msg)
	}
	return errors.Errorf("%s: %s", p.path, msg)
}
