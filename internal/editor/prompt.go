package editor

// Field identifies the value a prompt asks for
type Field string

const (
	FieldLabel    Field = "label"
	FieldWeight   Field = "weight"
	FieldCapacity Field = "capacity"
)

// Prompt is a request for a single value from the user
type Prompt struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
	Default string `json:"default"`
}

// Prompter asks the user for a value. ok is false when the user cancelled.
type Prompter interface {
	Ask(p Prompt) (value string, ok bool)
}

// PrompterFunc adapts a function to Prompter
type PrompterFunc func(Prompt) (string, bool)

// Ask calls f(p)
func (f PrompterFunc) Ask(p Prompt) (string, bool) { return f(p) }

// AnswerSheet answers prompts from a fixed map of field to value. A field
// without an answer is a cancellation. Every prompt asked is recorded.
type AnswerSheet struct {
	Answers map[Field]string
	Asked   []Prompt
}

// NewAnswerSheet creates an answer sheet
func NewAnswerSheet(answers map[Field]string) *AnswerSheet {
	if answers == nil {
		answers = make(map[Field]string)
	}
	return &AnswerSheet{Answers: answers}
}

// Ask implements Prompter
func (a *AnswerSheet) Ask(p Prompt) (string, bool) {
	a.Asked = append(a.Asked, p)
	v, ok := a.Answers[p.Field]
	return v, ok
}

// Cancel is a Prompter that cancels every prompt
var Cancel Prompter = PrompterFunc(func(Prompt) (string, bool) { return "", false })
