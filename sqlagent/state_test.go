package sqlagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextRelevanceRouting(t *testing.T) {
	assert.Equal(t, StateConvertToSQL, Next(StateCheckRelevance, &RunState{Relevant: true}, 3))
	assert.Equal(t, StateFunnyResponse, Next(StateCheckRelevance, &RunState{Relevant: false}, 3))
}

func TestNextConvertAlwaysExecutes(t *testing.T) {
	// Even a failed generation moves forward; the execute step fails the
	// cycle and consumes the attempt.
	run := &RunState{ErrorLog: []string{"SQL generation failed: provider down"}}
	assert.Equal(t, StateExecuteSQL, Next(StateConvertToSQL, run, 3))
}

func TestNextExecuteRouting(t *testing.T) {
	clean := &RunState{}
	assert.Equal(t, StateGenerateAnswer, Next(StateExecuteSQL, clean, 3))

	failing := &RunState{ErrorLog: []string{"boom"}, Attempts: 1}
	assert.Equal(t, StateRegenerateQuery, Next(StateExecuteSQL, failing, 3))

	exhausted := &RunState{ErrorLog: []string{"boom"}, Attempts: 3}
	assert.Equal(t, StateEndMaxAttempts, Next(StateExecuteSQL, exhausted, 3))
}

func TestNextRegenerateLoopsToConvert(t *testing.T) {
	// The halting decision is made on the execute edge, not here.
	run := &RunState{ErrorLog: []string{"boom"}, Attempts: 3}
	assert.Equal(t, StateConvertToSQL, Next(StateRegenerateQuery, run, 3))
}

func TestNextTerminalStates(t *testing.T) {
	for _, s := range []State{StateGenerateAnswer, StateFunnyResponse, StateEndMaxAttempts} {
		assert.Equal(t, StateDone, Next(s, &RunState{}, 3), s.String())
	}
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "check_relevance", StateCheckRelevance.String())
	assert.Equal(t, "end_max_attempts", StateEndMaxAttempts.String())
	assert.Equal(t, "unknown", State(99).String())
}
