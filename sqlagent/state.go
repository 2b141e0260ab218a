package sqlagent

// State identifies a node of the SQL agent state machine.
type State int

const (
	StateCheckRelevance State = iota
	StateConvertToSQL
	StateExecuteSQL
	StateGenerateAnswer
	StateRegenerateQuery
	StateFunnyResponse
	StateEndMaxAttempts
	StateDone
)

func (s State) String() string {
	switch s {
	case StateCheckRelevance:
		return "check_relevance"
	case StateConvertToSQL:
		return "convert_to_sql"
	case StateExecuteSQL:
		return "execute_sql"
	case StateGenerateAnswer:
		return "generate_answer"
	case StateRegenerateQuery:
		return "regenerate_query"
	case StateFunnyResponse:
		return "funny_response"
	case StateEndMaxAttempts:
		return "end_max_attempts"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// RunState is the mutable record threaded through every transition of a
// single run. A run owns its RunState exclusively; nothing is shared across
// concurrent runs.
type RunState struct {
	OriginalQuestion string   // never changes after the run starts
	CurrentQuestion  string   // may be rewritten across repair cycles
	SQLQuery         string   // empty until generated
	QueryResult      string   // empty until executed; may carry an error note
	Attempts         int      // failed generate->execute cycles so far
	Relevant         bool     // set once by the relevance check
	ErrorLog         []string // append-only, latest error last
}

// Result is what the agent invocation boundary returns to callers.
type Result struct {
	SQLQuery    string   `json:"sql_query"`
	QueryResult string   `json:"query_result"`
	Errors      []string `json:"errors,omitempty"`
	Relevant    bool     `json:"relevant"`
}

// Next is the pure transition function. It inspects only the run record, so
// the topology is testable without any external service.
//
// The attempts-budget check lives here, on the ExecuteSQL edge: Attempts is
// incremented in exactly one place (the ExecuteSQL step, once per failed
// generate->execute cycle), and this edge is the only one that halts on it.
func Next(s State, run *RunState, maxAttempts int) State {
	switch s {
	case StateCheckRelevance:
		if run.Relevant {
			return StateConvertToSQL
		}
		return StateFunnyResponse

	case StateConvertToSQL:
		return StateExecuteSQL

	case StateExecuteSQL:
		if len(run.ErrorLog) == 0 {
			return StateGenerateAnswer
		}
		if run.Attempts < maxAttempts {
			return StateRegenerateQuery
		}
		return StateEndMaxAttempts

	case StateRegenerateQuery:
		return StateConvertToSQL

	default:
		// GenerateAnswer, FunnyResponse and EndMaxAttempts are terminal.
		return StateDone
	}
}
