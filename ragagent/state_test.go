package ragagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextRouteRagGoesToLookup(t *testing.T) {
	run := &RunState{Route: RouteRag}
	assert.Equal(t, StateRagLookup, Next(StateRoute, run))
}

func TestNextRouteEndTerminates(t *testing.T) {
	run := &RunState{Route: RouteEnd}
	assert.Equal(t, StateDone, Next(StateRoute, run))
}

func TestNextRouteAnswerWithReplyTerminates(t *testing.T) {
	run := &RunState{Route: RouteAnswer, Answered: true}
	assert.Equal(t, StateDone, Next(StateRoute, run))
}

func TestNextRouteAnswerWithoutReplyComposes(t *testing.T) {
	run := &RunState{Route: RouteAnswer}
	assert.Equal(t, StateAnswer, Next(StateRoute, run))
}

func TestNextLookupFailureSkipsJudge(t *testing.T) {
	run := &RunState{RagFailed: true}
	assert.Equal(t, StateWebLookup, Next(StateRagLookup, run))
}

func TestNextLookupSuccessIsJudged(t *testing.T) {
	run := &RunState{}
	assert.Equal(t, StateJudgeSufficiency, Next(StateRagLookup, run))
}

func TestNextSufficientContextAnswers(t *testing.T) {
	run := &RunState{Sufficient: true}
	assert.Equal(t, StateAnswer, Next(StateJudgeSufficiency, run))
}

func TestNextInsufficientContextGoesToWeb(t *testing.T) {
	run := &RunState{Sufficient: false}
	assert.Equal(t, StateWebLookup, Next(StateJudgeSufficiency, run))
}

func TestNextWebAlwaysAnswers(t *testing.T) {
	run := &RunState{WebFailed: true}
	assert.Equal(t, StateAnswer, Next(StateWebLookup, run))

	run = &RunState{}
	assert.Equal(t, StateAnswer, Next(StateWebLookup, run))
}

func TestNextAnswerTerminates(t *testing.T) {
	assert.Equal(t, StateDone, Next(StateAnswer, &RunState{}))
}
