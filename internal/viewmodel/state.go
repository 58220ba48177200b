// Package viewmodel holds the client-side state of the admin list views.
package viewmodel

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
)

func (p Phase) String() string {
	if p == PhaseReady {
		return "ready"
	}
	return "loading"
}

type DialogState int

const (
	Idle DialogState = iota
	Editing
	Saving
	SaveFailed
)

func (s DialogState) String() string {
	switch s {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case SaveFailed:
		return "saving-failed"
	}
	return "idle"
}

// Dialog tracks one modal: which record it targets and where it is in the
// edit cycle.
type Dialog struct {
	State    DialogState
	TargetID string
}

func (d Dialog) Open() bool { return d.State != Idle }

// canSubmit is true when a save may be sent: the dialog is being edited or
// the previous save failed.
func (d Dialog) canSubmit() bool { return d.State == Editing || d.State == SaveFailed }
