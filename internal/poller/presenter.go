package poller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	v1 "framecraft/internal/contracts/render/v1"
	"framecraft/internal/pkg/errors"
)

// UnknownError is shown when a failure carries nothing presentable.
const UnknownError = "An unknown error has occurred. Dispatching minions..."

var fieldMessages = map[string]string{
	"search": "Enter a subject keyword to create a video",
	"title":  "Enter a title for your image",
	"style":  "Please choose a style from the list",
}

// FieldMessage points the user at one form field.
type FieldMessage struct {
	Field   string
	Message string
}

// Failure is what the user is told when a run ends badly. Either Fields or
// Message is set.
type Failure struct {
	Fields  []FieldMessage
	Message string
}

// Describe turns err into a Failure. Rejected fields get their form hint;
// client errors from the composer keep their message; anything else is
// reported generically.
func Describe(err error) Failure {
	var e *errors.Error
	if !errors.As(err, &e) {
		return Failure{Message: UnknownError}
	}

	if details := e.Details(); e.Code == errors.CodeValidation && len(details) > 0 {
		var f Failure
		for _, d := range details {
			msg, ok := fieldMessages[d.Field]
			if !ok {
				msg = d.Message
			}
			f.Fields = append(f.Fields, FieldMessage{Field: d.Field, Message: msg})
		}
		return f
	}

	if status, _ := e.Fields["http_status"].(int); status >= 400 && status < 500 && e.Message != "" {
		return Failure{Message: e.Message}
	}
	return Failure{Message: UnknownError}
}

// Presenter shows the progress of a run.
type Presenter interface {
	Progress(status v1.Status, progress int)
	Done(job v1.Job)
	Failed(f Failure)
	SubmitEnabled(enabled bool)
}

// ConsolePresenter writes run progress as plain text.
type ConsolePresenter struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
}

func NewConsolePresenter(w io.Writer) *ConsolePresenter {
	return &ConsolePresenter{w: w, enabled: true}
}

const barWidth = 20

func (p *ConsolePresenter) Progress(status v1.Status, progress int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	filled := progress * barWidth / progressDone
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
	fmt.Fprintf(p.w, "%-20s [%s] %3d%%\n", Label(status), bar, progress)
}

func (p *ConsolePresenter) Done(job v1.Job) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "image: %s\n", job.URL)
	if len(job.Data) == 0 {
		return
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, job.Data, "", "   "); err != nil {
		fmt.Fprintf(p.w, "%s\n", job.Data)
		return
	}
	fmt.Fprintf(p.w, "%s\n", buf.Bytes())
}

func (p *ConsolePresenter) Failed(f Failure) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, fm := range f.Fields {
		fmt.Fprintf(p.w, "%s: %s\n", fm.Field, fm.Message)
	}
	if f.Message != "" {
		fmt.Fprintf(p.w, "error: %s\n", f.Message)
	}
}

func (p *ConsolePresenter) SubmitEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Enabled reports whether a new submission would be accepted.
func (p *ConsolePresenter) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}
