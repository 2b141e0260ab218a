package ragagent

import (
	"github.com/shopmindai/shopmind/llm"
)

// Route is the router's verdict over the running conversation.
type Route string

const (
	RouteRag    Route = "rag"
	RouteWeb    Route = "web"
	RouteAnswer Route = "answer"
	RouteEnd    Route = "end"
)

// State identifies a node of the RAG agent state machine.
type State int

const (
	StateRoute State = iota
	StateRagLookup
	StateJudgeSufficiency
	StateWebLookup
	StateAnswer
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRoute:
		return "route"
	case StateRagLookup:
		return "rag_lookup"
	case StateJudgeSufficiency:
		return "judge_sufficiency"
	case StateWebLookup:
		return "web_lookup"
	case StateAnswer:
		return "answer"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// RunState is the mutable record of a single RAG agent run. Messages is
// append-only; citation slices are nil while their path is unused, and hold
// only sources that were actually consulted.
type RunState struct {
	Messages []llm.Message
	Route    Route

	RagContext string
	WebContext string

	RagCitations []string
	WebCitations []string

	// typed failure flags replacing the old error-prefixed context strings
	RagFailed bool
	WebFailed bool

	// decision outputs driving transitions
	Sufficient bool
	Answered   bool // a direct reply was already appended by the router
}

// Result is what the agent invocation boundary returns to callers.
type Result struct {
	Messages     []llm.Message `json:"messages"`
	RagCitations []string      `json:"rag_citations,omitempty"`
	WebCitations []string      `json:"web_citations,omitempty"`
}

// Next is the pure transition function over the run record.
func Next(s State, run *RunState) State {
	switch s {
	case StateRoute:
		switch run.Route {
		case RouteRag:
			return StateRagLookup
		case RouteAnswer:
			if run.Answered {
				return StateDone
			}
			return StateAnswer
		default: // RouteEnd short-circuits; the closing reply is already appended
			return StateDone
		}

	case StateRagLookup:
		if run.RagFailed {
			// Nothing worth judging; fall back to the web directly.
			return StateWebLookup
		}
		return StateJudgeSufficiency

	case StateJudgeSufficiency:
		if run.Sufficient {
			return StateAnswer
		}
		return StateWebLookup

	case StateWebLookup:
		return StateAnswer

	default:
		return StateDone
	}
}
