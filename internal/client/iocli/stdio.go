package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх стандартных потоков процесса.
// Ввод буферизуется один раз, чтобы несколько ReadInput подряд не теряли строки
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	stdin  *os.File
	isTerm func(fd int) bool
}

// NewStdio creates an IO bound to os.Stdin and os.Stdout
func NewStdio() *Stdio {
	return NewStdioFrom(os.Stdin, os.Stdout)
}

// NewStdioFrom creates an IO over stdin and out.
// Hidden input is used only when stdin is a terminal
func NewStdioFrom(stdin *os.File, out io.Writer) *Stdio {
	return &Stdio{
		in:     bufio.NewReader(stdin),
		out:    out,
		stdin:  stdin,
		isTerm: term.IsTerminal,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	return s.readLine()
}

// ReadPassword reads a line without echo. When stdin is not a terminal
// (pipe, file) it falls back to a plain line read
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)

	fd := int(s.stdin.Fd())
	if !s.isTerm(fd) {
		return s.readLine()
	}

	pwBytes, err := term.ReadPassword(fd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}

func (s *Stdio) readLine() (string, error) {
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimRight(input, "\r\n"), nil
}
