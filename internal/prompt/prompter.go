package prompt

import (
	"bufio"
	"io"
	"strings"
)

const (
	affirmativeShortResponseConstant = "y"
	affirmativeLongResponseConstant  = "yes"
	lineDelimiterConstant            = '\n'
)

// IOPrompter reads interactive responses from an io.Reader and echoes prompts to an io.Writer.
type IOPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOPrompter constructs a prompter from the provided reader and writer.
func NewIOPrompter(input io.Reader, output io.Writer) *IOPrompter {
	return &IOPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and interprets affirmative responses (y/yes).
func (prompter *IOPrompter) Confirm(promptMessage string) (bool, error) {
	response, readError := prompter.ReadLine(promptMessage)
	if readError != nil {
		return false, readError
	}

	switch strings.ToLower(response) {
	case affirmativeShortResponseConstant, affirmativeLongResponseConstant:
		return true, nil
	default:
		return false, nil
	}
}

// ReadLine writes the prompt and returns the trimmed response line.
func (prompter *IOPrompter) ReadLine(promptMessage string) (string, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, promptMessage); writeError != nil {
			return "", writeError
		}
	}

	response, readError := prompter.reader.ReadString(lineDelimiterConstant)
	if readError != nil {
		if readError != io.EOF || len(response) == 0 {
			return "", readError
		}
	}

	return strings.TrimSpace(response), nil
}
