// Package callflow implements the ordering dialogue state machine: a pure
// transition function from (session, caller input) to (new session, prompt).
package callflow

import (
	"strconv"
	"strings"
)

// Spoken digits, as speech-to-text typically transcribes them.
var wordNumbers = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// Words that commonly open a free-form question.
var questionWords = map[string]bool{
	"what": true, "how": true, "when": true, "where": true, "why": true,
	"who": true, "do": true, "does": true, "can": true, "is": true, "are": true,
}

// ParseChoice resolves caller input to a menu choice: an integer, or an
// English number word from zero to ten. Returns -1 when the input is neither,
// so unresolved input falls into the retry branch of every state.
func ParseChoice(input string) int {
	s := strings.ToLower(strings.TrimSpace(input))
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if n, ok := wordNumbers[s]; ok {
		return n
	}
	return -1
}

// LooksLikeQuestion reports whether unparseable input is probably a free-form
// question rather than a bad menu choice. Used to deflect mid-order questions
// to the knowledge engine instead of dead-ending the call.
func LooksLikeQuestion(input string) bool {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return false
	}
	if strings.Contains(s, "?") {
		return true
	}
	fields := strings.Fields(s)
	if len(fields) >= 3 {
		return true
	}
	return questionWords[fields[0]]
}
