package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// StageName identifies one stage of a pipeline.
type StageName = string

// StageSequence is the ordered list of stages of a pipeline. An empty sequence means no pipeline was found.
type StageSequence []StageName

var (
	// wrapper( start(
	startPattern = regexp.MustCompile(`[\w$.]+\(\s*start\(`)
	// , bypass(X) , bypass(Y) ... right after the start call.
	bypassRunPattern = regexp.MustCompile(`^[,\s]*((?:bypass\([^)]+\)[,\s]*)*)`)
	callPattern      = regexp.MustCompile(`(\w+)\(`)
	bypassPattern    = regexp.MustCompile(`bypass\(([^)]+)\)`)
)

// Extract returns the stages of the first pipeline composition found in text.
//
// The stage introduced by start is the first function called in its argument; it is left out when
// the argument holds no call. A start call with an empty or unbalanced argument is not a pipeline.
// Each bypass argument is taken verbatim, trimmed of surrounding spaces.
// Extract never fails: text without the idiom yields an empty sequence.
func Extract(text string) StageSequence {
	for _, loc := range startPattern.FindAllStringIndex(text, -1) {
		argEnd, ok := closingParen(text, loc[1])
		if !ok || argEnd == loc[1] {
			continue
		}

		stages := StageSequence{}
		if startCall := callPattern.FindStringSubmatch(text[loc[1]:argEnd]); startCall != nil {
			stages = append(stages, startCall[1])
		}
		run := bypassRunPattern.FindStringSubmatch(text[argEnd+1:])
		for _, bypass := range bypassPattern.FindAllStringSubmatch(run[1], -1) {
			stages = append(stages, strings.TrimSpace(bypass[1]))
		}

		return stages
	}

	return StageSequence{}
}

// closingParen returns the offset of the ")" closing the parenthesis opened just before from.
func closingParen(text string, from int) (int, bool) {
	depth := 0
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}

	return 0, false
}

// Index returns the position of the first stage equal to name, or -1.
func (s StageSequence) Index(name string) int {
	for i, stage := range s {
		if stage == name {
			return i
		}
	}

	return -1
}

// Lines formats the sequence for display, one "N. name" line per stage.
func (s StageSequence) Lines() []string {
	lines := make([]string, 0, len(s))
	for i, stage := range s {
		lines = append(lines, strconv.Itoa(i+1)+". "+stage)
	}

	return lines
}
