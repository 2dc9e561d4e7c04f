package authflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hxnx/jukebot/internal/spotify"
)

// State enumerates the flow's positions. Run returns the terminal one.
type State int

const (
	StateAwaitingLink State = iota
	StateAwaitingCode
	StateAuthenticated
	StateTimedOut
	StateAbandoned
)

const (
	// TriggerTimeout bounds the wait for the "I have a code" click.
	TriggerTimeout = 120 * time.Second
	// CodeTimeout bounds the wait for the code submission.
	CodeTimeout = 120 * time.Second

	MinCodeLength = 64
	MaxCodeLength = 512
)

var (
	ErrNoInput     = errors.New("no input provided")
	ErrInvalidCode = errors.New("authorization code has an invalid length")

	// ErrNoSubmission is how a UI reports that the code prompt window
	// expired without a submission. Any other PromptCode error is a
	// delivery failure and is reported as such, not as missing input.
	ErrNoSubmission = errors.New("no code submitted")
)

// UI is the interaction surface of the flow: present the authorization
// link, await the requester's trigger, prompt for the code. Every wait
// is bounded and identity-filtered by the implementation.
type UI interface {
	PresentLink(url string) error
	AwaitTrigger(timeout time.Duration) error
	PromptCode(timeout time.Duration) (string, error)
}

// Flow runs one authentication attempt: present link, await trigger,
// collect code, exchange it, install the resulting session. Install is
// only called after a successful exchange, so a failure anywhere leaves
// any previously installed session untouched.
type Flow struct {
	AuthURL  string
	Exchange func(ctx context.Context, code string) (*spotify.Session, error)
	Install  func(*spotify.Session)
	UI       UI
}

// Run drives the flow to a terminal state. Trigger expiry ends the flow
// silently (StateTimedOut, nil error); a missing or invalid code and a
// rejected exchange are reported through the returned error.
func (f *Flow) Run(ctx context.Context) (State, error) {
	if err := f.UI.PresentLink(f.AuthURL); err != nil {
		return StateAwaitingLink, err
	}

	if err := f.UI.AwaitTrigger(TriggerTimeout); err != nil {
		return StateTimedOut, nil
	}

	code, err := f.UI.PromptCode(CodeTimeout)
	if err != nil {
		if errors.Is(err, ErrNoSubmission) {
			return StateAbandoned, ErrNoInput
		}
		return StateAwaitingCode, fmt.Errorf("code prompt failed: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return StateAbandoned, ErrNoInput
	}
	if len(code) < MinCodeLength || len(code) > MaxCodeLength {
		return StateAbandoned, ErrInvalidCode
	}

	sess, err := f.Exchange(ctx, code)
	if err != nil {
		return StateAwaitingCode, fmt.Errorf("failed to authenticate: %w", err)
	}

	f.Install(sess)
	return StateAuthenticated, nil
}
