package wizard

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/terminal"
)

// Option is one labeled choice in a Select prompt.
type Option struct {
	Label string
	Value string
}

// UI is the set of prompts the configuration wizard needs.
type UI interface {
	Select(title string, options []Option, current *string) error
	Confirm(title string, value *bool) error
	Input(title string, value *string) error
	SecretInput(title string, value *string) error
	Note(title string, body string) error
}

// HuhUI renders prompts with charmbracelet/huh on stderr.
type HuhUI struct {
	isTerminal func() bool
	// interrupted is set by the key filter when Ctrl+C ends the current form.
	interrupted bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI returns a HuhUI guarded by terminal.IsInteractive.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return errors.New(messages.WizardRequiresTerminal)
	}
	return nil
}

// keyMap binds Esc to back and Ctrl+C to exit for every field kind.
// Both abort the form; runForm tells them apart through ui.interrupted.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	back := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", messages.WizardHintBack))
	exit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", messages.WizardHintExit))
	km.Select.Prev, km.Select.Next = back, exit
	km.Confirm.Prev, km.Confirm.Next = back, exit
	km.Input.Prev, km.Input.Next = back, exit
	km.Note.Prev, km.Note.Next = back, exit

	// Esc is taken by Quit, so Select filtering could never be cleared.
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	return km
}

// hintField keeps the back and exit hints visible. huh disables Prev on the
// first field and Next on the last, and every wizard form has one field.
type hintField struct {
	huh.Field
	km *huh.KeyMap
}

func newHintField(field huh.Field) huh.Field {
	return &hintField{Field: field, km: keyMap()}
}

// Update keeps the wrapper in the group's field list.
func (f *hintField) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := f.Field.Update(msg)
	if field, ok := model.(huh.Field); ok {
		f.Field = field
	}
	return f, cmd
}

// WithPosition applies positional state and then restores the hint bindings.
func (f *hintField) WithPosition(p huh.FieldPosition) huh.Field {
	f.Field.WithPosition(p)
	f.WithKeyMap(f.km)
	return f
}

// filter records Ctrl+C key presses and turns interrupts into a clean quit
// so the renderer clears the form before the program exits.
func (ui *HuhUI) filter() func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
			ui.interrupted = true
		}
		if _, ok := msg.(tea.InterruptMsg); ok {
			return tea.QuitMsg{}
		}
		return msg
	}
}

// runForm runs a single-field form. Esc yields ErrBack and Ctrl+C yields ErrCancelled.
func (ui *HuhUI) runForm(field huh.Field) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}

	ui.interrupted = false
	form := huh.NewForm(huh.NewGroup(newHintField(field)))
	form.WithKeyMap(keyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithReportFocus(),
		tea.WithFilter(ui.filter()),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		if ui.interrupted {
			return ErrCancelled
		}
		return ErrBack
	}
	if err != nil {
		return fmt.Errorf(messages.WizardPromptFailedFmt, err)
	}
	return nil
}

// Select renders a single-choice prompt storing the chosen Option.Value.
func (ui *HuhUI) Select(title string, options []Option, current *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, o.Value)
	}
	return ui.runForm(huh.NewSelect[string]().Title(title).Options(opts...).Value(current))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewConfirm().Title(title).Value(value))
}

// Input renders a single-line text prompt.
func (ui *HuhUI) Input(title string, value *string) error {
	return ui.runForm(huh.NewInput().Title(title).Value(value))
}

// SecretInput renders a masked text prompt.
func (ui *HuhUI) SecretInput(title string, value *string) error {
	return ui.runForm(huh.NewInput().Title(title).Value(value).EchoMode(huh.EchoModePassword))
}

// Note renders an informational screen.
func (ui *HuhUI) Note(title string, body string) error {
	return ui.runForm(huh.NewNote().Title(title).Description(body))
}
