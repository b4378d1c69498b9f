package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/rolodex/internal/contact"
)

// formMode distinguishes the add form from the update form.
type formMode int

const (
	formAdd formMode = iota
	formUpdate
)

// Form field indices, in display order.
const (
	fieldName = iota
	fieldPhone
	fieldEmail
	fieldAddress
	fieldGroup
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Phone", "Email", "Address", "Group"}

// backToMenuMsg returns the dashboard to the main menu.
type backToMenuMsg struct{}

// duplicateNameMsg signals the add form hit an existing contact name.
type duplicateNameMsg struct {
	Key string
}

// formState manages the add/update field stack with inline validation.
// Add-time validation blocks field advance; update-time validation only
// warns, since the book skips invalid changes and keeps prior values.
type formState struct {
	mode     formMode
	key      string         // stored key when updating
	current  contact.Record // current values when updating
	inputs   [fieldCount]textinput.Model
	focus    int
	fieldErr string
	warning  string
	findKey  func(name string) (string, bool)
}

// newAddForm builds an empty add form. initial pre-fills values, used when
// redirecting a duplicate add into an update and back.
func newAddForm(defaultGroup string, initial contact.Input, findKey func(string) (string, bool)) formState {
	fs := formState{mode: formAdd, findKey: findKey}
	fs.buildInputs()
	fs.inputs[fieldName].SetValue(initial.Name)
	fs.inputs[fieldPhone].SetValue(initial.Phone)
	fs.inputs[fieldEmail].SetValue(initial.Email)
	fs.inputs[fieldAddress].SetValue(initial.Address)
	fs.inputs[fieldGroup].SetValue(initial.Group)
	fs.inputs[fieldGroup].Placeholder = defaultGroup
	fs.inputs[fieldName].Focus()
	return fs
}

// newUpdateForm builds a form over an existing record. Blank fields keep
// the current value, so every placeholder shows what "keep" means.
func newUpdateForm(rec contact.Record, initial contact.Input) formState {
	fs := formState{mode: formUpdate, key: rec.Name, current: rec}
	fs.buildInputs()
	fs.inputs[fieldPhone].SetValue(initial.Phone)
	fs.inputs[fieldEmail].SetValue(initial.Email)
	fs.inputs[fieldAddress].SetValue(initial.Address)
	fs.inputs[fieldGroup].SetValue(initial.Group)

	fs.inputs[fieldPhone].Placeholder = rec.Phone
	if rec.Email != nil {
		fs.inputs[fieldEmail].Placeholder = *rec.Email
	}
	if rec.Address != nil {
		fs.inputs[fieldAddress].Placeholder = *rec.Address
	}
	fs.inputs[fieldGroup].Placeholder = rec.Group

	fs.focus = fieldPhone
	fs.inputs[fieldPhone].Focus()
	return fs
}

func (fs *formState) buildInputs() {
	for i := range fs.inputs {
		ti := textinput.New()
		ti.Prompt = "  "
		ti.CharLimit = 128
		fs.inputs[i] = ti
	}
	fs.inputs[fieldPhone].Placeholder = "10-11 digits"
	fs.inputs[fieldEmail].Placeholder = "optional"
	fs.inputs[fieldAddress].Placeholder = "optional"
}

// firstField is where focus starts; updates never edit the name.
func (fs formState) firstField() int {
	if fs.mode == formUpdate {
		return fieldPhone
	}
	return fieldName
}

// Update processes messages for the form.
func (fs formState) Update(msg tea.Msg) (formState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return fs.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return fs, func() tea.Msg { return backToMenuMsg{} }

	case "enter":
		return fs.accept()

	case "tab", "down":
		return fs.move(1), nil

	case "shift+tab", "up":
		return fs.move(-1), nil
	}

	return fs.updateFocused(msg)
}

func (fs formState) updateFocused(msg tea.Msg) (formState, tea.Cmd) {
	var cmd tea.Cmd
	fs.inputs[fs.focus], cmd = fs.inputs[fs.focus].Update(msg)
	return fs, cmd
}

// move shifts focus without validating, wrapping within the editable range.
func (fs formState) move(delta int) formState {
	first := fs.firstField()
	fs.inputs[fs.focus].Blur()
	fs.focus += delta
	if fs.focus < first {
		fs.focus = fieldCount - 1
	}
	if fs.focus >= fieldCount {
		fs.focus = first
	}
	fs.inputs[fs.focus].Focus()
	fs.fieldErr = ""
	return fs
}

// accept validates the focused field, advances, and submits from the last one.
func (fs formState) accept() (formState, tea.Cmd) {
	fs.fieldErr = ""
	fs.warning = ""

	value := strings.TrimSpace(fs.inputs[fs.focus].Value())
	switch fs.focus {
	case fieldName:
		if value == "" {
			fs.fieldErr = "Name cannot be empty."
			return fs, nil
		}
		if key, exists := fs.findKey(value); exists {
			fs.fieldErr = fmt.Sprintf("Contact %q already exists.", key)
			return fs, func() tea.Msg { return duplicateNameMsg{Key: key} }
		}

	case fieldPhone:
		if value == "" && fs.mode == formAdd {
			fs.fieldErr = "Phone is required."
			return fs, nil
		}
		if value != "" {
			if _, ok := contact.ValidatePhone(value); !ok {
				if fs.mode == formAdd {
					fs.fieldErr = "Invalid phone number! Please enter 10-11 digits."
					return fs, nil
				}
				fs.warning = "Invalid phone number, old value will be kept."
			}
		}

	case fieldEmail:
		if value != "" && !contact.ValidateEmail(value) {
			if fs.mode == formAdd {
				fs.fieldErr = "Invalid email format!"
				return fs, nil
			}
			fs.warning = "Invalid email format, old value will be kept."
		}
	}

	if fs.focus == fieldCount-1 {
		return fs, fs.submitCmd()
	}
	return fs.move(1), nil
}

func (fs formState) submitCmd() tea.Cmd {
	if fs.mode == formUpdate {
		key := fs.key
		changes := contact.Changes{
			Phone:   strings.TrimSpace(fs.inputs[fieldPhone].Value()),
			Email:   strings.TrimSpace(fs.inputs[fieldEmail].Value()),
			Address: strings.TrimSpace(fs.inputs[fieldAddress].Value()),
			Group:   strings.TrimSpace(fs.inputs[fieldGroup].Value()),
		}
		return func() tea.Msg {
			return updateSubmitMsg{Key: key, Changes: changes}
		}
	}

	input := contact.Input{
		Name:    strings.TrimSpace(fs.inputs[fieldName].Value()),
		Phone:   strings.TrimSpace(fs.inputs[fieldPhone].Value()),
		Email:   strings.TrimSpace(fs.inputs[fieldEmail].Value()),
		Address: strings.TrimSpace(fs.inputs[fieldAddress].Value()),
		Group:   strings.TrimSpace(fs.inputs[fieldGroup].Value()),
	}
	return func() tea.Msg {
		return addSubmitMsg{Input: input}
	}
}

// values snapshots the form as a contact.Input, used when redirecting a
// duplicate add into the update flow.
func (fs formState) values() contact.Input {
	return contact.Input{
		Name:    strings.TrimSpace(fs.inputs[fieldName].Value()),
		Phone:   strings.TrimSpace(fs.inputs[fieldPhone].Value()),
		Email:   strings.TrimSpace(fs.inputs[fieldEmail].Value()),
		Address: strings.TrimSpace(fs.inputs[fieldAddress].Value()),
		Group:   strings.TrimSpace(fs.inputs[fieldGroup].Value()),
	}
}

// View renders the field stack with any validation message.
func (fs formState) View() string {
	var b strings.Builder

	if fs.mode == formUpdate {
		b.WriteString(TitleStyle().Render("UPDATE: " + fs.key))
		b.WriteString("\n(leave a field blank to keep the current value)\n\n")
		fmt.Fprintf(&b, "%-8s  %s\n", "Name", fs.key)
	} else {
		b.WriteString(TitleStyle().Render("ADD NEW CONTACT"))
		b.WriteString("\n\n")
	}

	for i := fs.firstField(); i < fieldCount; i++ {
		marker := "  "
		if i == fs.focus {
			marker = CursorMarker
		}
		fmt.Fprintf(&b, "%s%-8s%s\n", marker, fieldLabels[i], fs.inputs[i].View())
	}

	if fs.fieldErr != "" {
		b.WriteString("\n" + ErrorStyle().Render(fs.fieldErr) + "\n")
	}
	if fs.warning != "" {
		b.WriteString("\n" + WarningStyle().Render(fs.warning) + "\n")
	}
	return b.String()
}
